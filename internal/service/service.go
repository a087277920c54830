package service

import (
	"algooee/config"
	"algooee/internal/predictor"
	"algooee/internal/repository"
	"algooee/pkg/logger"
	"algooee/pkg/utils"

	"github.com/go-kit/kit/metrics"
)

type Service struct {
	PredictionService PredictionService
	SchedulerService  SchedulerService
	StockRepo         repository.StockRepository
}

type Metrics struct {
	RequestCount    metrics.Counter
	RequestDuration metrics.Histogram
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	dates utils.DateProvider,
	m Metrics,
) *Service {
	var predictionService PredictionService
	predictionService = NewPredictionService(
		cfg,
		log,
		repo.CandleRepo,
		repo.PredictionHistoryRepo,
		repo.StockRepo,
		predictor.New(cfg.Predict.MinCandles),
		dates,
	)
	predictionService = NewLoggingMiddleware(log, predictionService)
	predictionService = NewInstrumentingMiddleware(m.RequestCount, m.RequestDuration, predictionService)

	return &Service{
		PredictionService: predictionService,
		SchedulerService:  NewSchedulerService(cfg, log, predictionService),
		StockRepo:         repo.StockRepo,
	}
}
