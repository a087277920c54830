package repository

import (
	"context"

	"algooee/internal/model"
	"algooee/pkg/utils"

	"gorm.io/gorm"
)

type PredictionHistoryRepository interface {
	Create(ctx context.Context, history *model.PredictionHistory, opts ...utils.DBOption) error
	Get(ctx context.Context, param model.GetPredictionHistoryParam, opts ...utils.DBOption) ([]model.PredictionHistory, error)
}

type predictionHistoryRepository struct {
	db *gorm.DB
}

func NewPredictionHistoryRepository(db *gorm.DB) PredictionHistoryRepository {
	return &predictionHistoryRepository{db: db}
}

func (r *predictionHistoryRepository) Create(ctx context.Context, history *model.PredictionHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(history).Error
}

func (r *predictionHistoryRepository) Get(ctx context.Context, param model.GetPredictionHistoryParam, opts ...utils.DBOption) ([]model.PredictionHistory, error) {
	opts = append(opts, utils.WithOrder("created_at DESC"), utils.WithLimit(param.Limit))
	if param.ISIN != "" {
		opts = append(opts, utils.WithWhere("isin = ?", param.ISIN))
	}

	var histories []model.PredictionHistory
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

// noopPredictionHistoryRepository is used when no database is configured.
type noopPredictionHistoryRepository struct{}

func NewNoopPredictionHistoryRepository() PredictionHistoryRepository {
	return noopPredictionHistoryRepository{}
}

func (noopPredictionHistoryRepository) Create(context.Context, *model.PredictionHistory, ...utils.DBOption) error {
	return nil
}

func (noopPredictionHistoryRepository) Get(context.Context, model.GetPredictionHistoryParam, ...utils.DBOption) ([]model.PredictionHistory, error) {
	return []model.PredictionHistory{}, nil
}
