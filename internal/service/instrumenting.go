package service

import (
	"context"
	"strconv"
	"time"

	"algooee/internal/dto"

	"github.com/go-kit/kit/metrics"
)

// instrumentingMiddleware wraps PredictionService and records request metrics.
type instrumentingMiddleware struct {
	reqCount    metrics.Counter
	reqDuration metrics.Histogram
	svc         PredictionService
}

func NewInstrumentingMiddleware(reqCount metrics.Counter, reqDuration metrics.Histogram, svc PredictionService) PredictionService {
	return &instrumentingMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		svc:         svc,
	}
}

func (m *instrumentingMiddleware) Configured() bool {
	return m.svc.Configured()
}

func (m *instrumentingMiddleware) Predict(ctx context.Context, req dto.PredictionRequest) (resp *dto.PredictionResponse, err error) {
	defer func(begin time.Time) { m.record("Predict", begin, err) }(time.Now())
	return m.svc.Predict(ctx, req)
}

func (m *instrumentingMiddleware) HistoricalCandles(ctx context.Context, req dto.PredictionRequest) (resp *dto.HistoricalCandleResponse, err error) {
	defer func(begin time.Time) { m.record("HistoricalCandles", begin, err) }(time.Now())
	return m.svc.HistoricalCandles(ctx, req)
}

func (m *instrumentingMiddleware) History(ctx context.Context, param dto.GetPredictionHistoryParam) (resp *dto.PredictionHistoryResponse, err error) {
	defer func(begin time.Time) { m.record("History", begin, err) }(time.Now())
	return m.svc.History(ctx, param)
}

func (m *instrumentingMiddleware) record(method string, begin time.Time, err error) {
	labels := []string{
		"method", method,
		"error", strconv.FormatBool(err != nil),
	}
	m.reqCount.With(labels...).Add(1)
	m.reqDuration.With(labels...).Observe(time.Since(begin).Seconds())
}
