package service

import (
	"context"
	"time"

	"algooee/internal/dto"
	"algooee/pkg/logger"

	"go.uber.org/zap"
)

// loggingMiddleware wraps PredictionService and logs every call.
type loggingMiddleware struct {
	log *logger.Logger
	svc PredictionService
}

func NewLoggingMiddleware(log *logger.Logger, svc PredictionService) PredictionService {
	return &loggingMiddleware{log: log, svc: svc}
}

func (m *loggingMiddleware) Configured() bool {
	return m.svc.Configured()
}

func (m *loggingMiddleware) Predict(ctx context.Context, req dto.PredictionRequest) (resp *dto.PredictionResponse, err error) {
	defer func(begin time.Time) {
		fields := []zap.Field{
			logger.StringField("method", "Predict"),
			logger.StringField("isin", req.ISIN),
			logger.DurationField("elapsed", time.Since(begin)),
		}
		if err != nil {
			m.log.WarnContext(ctx, "Prediction failed", append(fields, logger.ErrorField(err))...)
			return
		}
		m.log.InfoContext(ctx, "Prediction completed", append(fields,
			logger.FloatField("predicted_high", resp.PredictedHigh),
			logger.FloatField("confidence", resp.Confidence),
		)...)
	}(time.Now())
	return m.svc.Predict(ctx, req)
}

func (m *loggingMiddleware) HistoricalCandles(ctx context.Context, req dto.PredictionRequest) (resp *dto.HistoricalCandleResponse, err error) {
	defer func(begin time.Time) {
		fields := []zap.Field{
			logger.StringField("method", "HistoricalCandles"),
			logger.StringField("isin", req.ISIN),
			logger.DurationField("elapsed", time.Since(begin)),
		}
		if err != nil {
			m.log.WarnContext(ctx, "Fetching candles failed", append(fields, logger.ErrorField(err))...)
			return
		}
		m.log.DebugContext(ctx, "Fetched candles", append(fields, logger.IntField("count", len(resp.Data)))...)
	}(time.Now())
	return m.svc.HistoricalCandles(ctx, req)
}

func (m *loggingMiddleware) History(ctx context.Context, param dto.GetPredictionHistoryParam) (*dto.PredictionHistoryResponse, error) {
	return m.svc.History(ctx, param)
}
