package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"algooee/config"
	"algooee/internal/dto"
	"algooee/internal/model"
	"algooee/internal/predictor"
	"algooee/internal/repository"
	"algooee/pkg/logger"
	"algooee/pkg/utils"
)

var (
	ErrNotConfigured = repository.ErrNotConfigured
	ErrNoCandles     = errors.New("no data found for the given ISIN and date range")
)

type PredictionService interface {
	Configured() bool
	Predict(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error)
	HistoricalCandles(ctx context.Context, req dto.PredictionRequest) (*dto.HistoricalCandleResponse, error)
	History(ctx context.Context, param dto.GetPredictionHistoryParam) (*dto.PredictionHistoryResponse, error)
}

type predictionService struct {
	cfg         *config.Config
	log         *logger.Logger
	candleRepo  repository.CandleRepository
	historyRepo repository.PredictionHistoryRepository
	stockRepo   repository.StockRepository
	predictor   *predictor.Predictor
	dates       utils.DateProvider
}

func NewPredictionService(
	cfg *config.Config,
	log *logger.Logger,
	candleRepo repository.CandleRepository,
	historyRepo repository.PredictionHistoryRepository,
	stockRepo repository.StockRepository,
	p *predictor.Predictor,
	dates utils.DateProvider,
) PredictionService {
	return &predictionService{
		cfg:         cfg,
		log:         log,
		candleRepo:  candleRepo,
		historyRepo: historyRepo,
		stockRepo:   stockRepo,
		predictor:   p,
		dates:       dates,
	}
}

func (s *predictionService) Configured() bool {
	return s.candleRepo.Configured()
}

func (s *predictionService) withDefaults(req dto.PredictionRequest) dto.PredictionRequest {
	req.ApplyDefaults(
		utils.StringOr(s.cfg.Predict.DefaultStartDate, dto.DefaultStartDate),
		utils.StringOr(s.cfg.Predict.DefaultInterval, dto.IntervalDay),
		s.dates.Today(),
	)
	return req
}

func (s *predictionService) fetchCandles(ctx context.Context, req dto.PredictionRequest) ([]dto.Candle, error) {
	return s.candleRepo.GetHistoricalCandles(ctx, dto.GetCandlesParam{
		ISIN:      req.ISIN,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Interval:  req.Interval,
		Count:     req.Count,
	})
}

func (s *predictionService) HistoricalCandles(ctx context.Context, req dto.PredictionRequest) (*dto.HistoricalCandleResponse, error) {
	req = s.withDefaults(req)

	candles, err := s.fetchCandles(ctx, req)
	if err != nil {
		return nil, err
	}
	if candles == nil {
		candles = []dto.Candle{}
	}

	return &dto.HistoricalCandleResponse{
		ISIN:      req.ISIN,
		Data:      candles,
		Timestamp: req.EndDate,
	}, nil
}

func (s *predictionService) Predict(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error) {
	req = s.withDefaults(req)

	candles, err := s.fetchCandles(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, ErrNoCandles
	}

	result, err := s.predictor.Predict(candles)
	if err != nil {
		return nil, err
	}

	resp := &dto.PredictionResponse{
		ISIN:          req.ISIN,
		PredictedHigh: predictor.Round(result.PredictedHigh, 2),
		Confidence:    result.Confidence,
	}

	s.saveHistory(ctx, req, resp, result, len(candles))
	return resp, nil
}

// saveHistory is best effort; a failing store never fails the prediction.
func (s *predictionService) saveHistory(ctx context.Context, req dto.PredictionRequest, resp *dto.PredictionResponse, result *predictor.Result, candleCount int) {
	features, err := json.Marshal(result.Features)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to encode prediction features", logger.ErrorField(err))
	}

	history := &model.PredictionHistory{
		ISIN:          resp.ISIN,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Interval:      req.Interval,
		PredictedHigh: resp.PredictedHigh,
		Confidence:    resp.Confidence,
		CandleCount:   candleCount,
		Features:      features,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		s.log.ErrorContext(ctx, "Failed to store prediction history",
			logger.ErrorField(err),
			logger.StringField("isin", resp.ISIN),
		)
	}
}

func (s *predictionService) History(ctx context.Context, param dto.GetPredictionHistoryParam) (*dto.PredictionHistoryResponse, error) {
	if param.Limit == 0 {
		param.Limit = 50
	}
	histories, err := s.historyRepo.Get(ctx, model.GetPredictionHistoryParam{ISIN: param.ISIN, Limit: param.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction history: %w", err)
	}

	items := make([]dto.PredictionHistoryItem, 0, len(histories))
	for _, h := range histories {
		// ISINs outside the reference list keep an empty name.
		stock, _ := s.stockRepo.FindByISIN(ctx, h.ISIN)
		items = append(items, dto.PredictionHistoryItem{
			ID:            h.ID,
			ISIN:          h.ISIN,
			Name:          stock.Name,
			StartDate:     h.StartDate,
			EndDate:       h.EndDate,
			Interval:      h.Interval,
			PredictedHigh: h.PredictedHigh,
			Confidence:    h.Confidence,
			CandleCount:   h.CandleCount,
			CreatedAt:     h.CreatedAt,
		})
	}
	return &dto.PredictionHistoryResponse{Predictions: items}, nil
}
