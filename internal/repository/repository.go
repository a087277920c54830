package repository

import (
	"algooee/config"
	"algooee/pkg/cache"
	"algooee/pkg/logger"
	"algooee/pkg/utils"

	"gorm.io/gorm"
)

type Repository struct {
	CandleRepo            CandleRepository
	StockRepo             StockRepository
	PredictionHistoryRepo PredictionHistoryRepository
}

// NewRepository wires the repositories. db may be nil, in which case
// prediction history is not persisted.
func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger, dates utils.DateProvider) *Repository {
	historyRepo := NewNoopPredictionHistoryRepository()
	if db != nil {
		historyRepo = NewPredictionHistoryRepository(db)
	}

	return &Repository{
		CandleRepo:            NewUpstoxRepository(cfg, log, inmemoryCache, dates),
		StockRepo:             NewStockRepository(),
		PredictionHistoryRepo: historyRepo,
	}
}
