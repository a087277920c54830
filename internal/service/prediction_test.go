package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"algooee/config"
	"algooee/internal/dto"
	"algooee/internal/model"
	"algooee/internal/predictor"
	"algooee/internal/repository"
	"algooee/pkg/logger"
	"algooee/pkg/utils"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandleRepo struct {
	mu         sync.Mutex
	configured bool
	candles    []dto.Candle
	err        error
	params     []dto.GetCandlesParam
}

func (f *fakeCandleRepo) Configured() bool { return f.configured }

func (f *fakeCandleRepo) GetHistoricalCandles(_ context.Context, param dto.GetCandlesParam) ([]dto.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, param)
	return f.candles, f.err
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	created   []model.PredictionHistory
	createErr error
}

func (f *fakeHistoryRepo) Create(_ context.Context, h *model.PredictionHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	h.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *h)
	return nil
}

func (f *fakeHistoryRepo) Get(_ context.Context, param model.GetPredictionHistoryParam, _ ...utils.DBOption) ([]model.PredictionHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PredictionHistory
	for _, h := range f.created {
		if param.ISIN == "" || h.ISIN == param.ISIN {
			out = append(out, h)
		}
	}
	return out, nil
}

func trend(n int) []dto.Candle {
	candles := make([]dto.Candle, n)
	for i := range candles {
		base := 1000 + 2*float64(i)
		candles[i] = dto.Candle{
			Timestamp: fmt.Sprintf("2025-02-%02dT00:00:00+05:30", i+1),
			Open:      base - 3,
			High:      base,
			Low:       base - 6,
			Close:     base - 1,
			Volume:    10000,
		}
	}
	return candles
}

var testToday = utils.FixedDateProvider{Date: time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)}

func newTestPredictionService(candles *fakeCandleRepo, history *fakeHistoryRepo) PredictionService {
	cfg := &config.Config{Predict: config.Predict{DefaultStartDate: "2025-01-01", DefaultInterval: "day", MinCandles: 10}}
	svc := NewPredictionService(cfg, logger.NewNop(), candles, history, repository.NewStockRepository(), predictor.New(cfg.Predict.MinCandles), testToday)
	svc = NewLoggingMiddleware(logger.NewNop(), svc)
	return NewInstrumentingMiddleware(discard.NewCounter(), discard.NewHistogram(), svc)
}

func TestPredictionService_Predict(t *testing.T) {
	candles := &fakeCandleRepo{configured: true, candles: trend(30)}
	history := &fakeHistoryRepo{}
	svc := newTestPredictionService(candles, history)

	resp, err := svc.Predict(context.Background(), dto.PredictionRequest{ISIN: "ine002a01018"})
	require.NoError(t, err)

	assert.Equal(t, "INE002A01018", resp.ISIN)
	assert.InDelta(t, 1060.0, resp.PredictedHigh, 0.1)
	assert.Equal(t, 1.0, resp.Confidence)

	require.Len(t, candles.params, 1)
	assert.Equal(t, dto.GetCandlesParam{
		ISIN:      "INE002A01018",
		StartDate: "2025-01-01",
		EndDate:   "2026-10-18",
		Interval:  "day",
		Count:     1,
	}, candles.params[0])

	require.Len(t, history.created, 1)
	assert.Equal(t, 30, history.created[0].CandleCount)
	assert.Equal(t, resp.PredictedHigh, history.created[0].PredictedHigh)
	assert.Contains(t, string(history.created[0].Features), `"sma3_high"`)
}

func TestPredictionService_PredictErrors(t *testing.T) {
	repoErr := errors.New("upstream down")
	tests := []struct {
		name    string
		repo    *fakeCandleRepo
		wantErr error
	}{
		{name: "no candles", repo: &fakeCandleRepo{configured: true}, wantErr: ErrNoCandles},
		{name: "too few candles", repo: &fakeCandleRepo{configured: true, candles: trend(4)}, wantErr: predictor.ErrInsufficientData},
		{name: "repository error", repo: &fakeCandleRepo{configured: true, err: repoErr}, wantErr: repoErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestPredictionService(tt.repo, &fakeHistoryRepo{})
			_, err := svc.Predict(context.Background(), dto.PredictionRequest{ISIN: "INE002A01018"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPredictionService_HistoryFailureDoesNotFailPrediction(t *testing.T) {
	svc := newTestPredictionService(
		&fakeCandleRepo{configured: true, candles: trend(20)},
		&fakeHistoryRepo{createErr: errors.New("db down")},
	)
	_, err := svc.Predict(context.Background(), dto.PredictionRequest{ISIN: "INE002A01018"})
	assert.NoError(t, err)
}

func TestPredictionService_HistoricalCandles(t *testing.T) {
	svc := newTestPredictionService(&fakeCandleRepo{configured: true, candles: trend(3)}, &fakeHistoryRepo{})

	resp, err := svc.HistoricalCandles(context.Background(), dto.PredictionRequest{ISIN: "INE002A01018", EndDate: "2025-02-03"})
	require.NoError(t, err)
	assert.Equal(t, "INE002A01018", resp.ISIN)
	assert.Equal(t, "2025-02-03", resp.Timestamp)
	assert.Len(t, resp.Data, 3)

	empty := newTestPredictionService(&fakeCandleRepo{configured: true}, &fakeHistoryRepo{})
	resp, err = empty.HistoricalCandles(context.Background(), dto.PredictionRequest{ISIN: "INE002A01018"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
}

func TestPredictionService_History(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := newTestPredictionService(&fakeCandleRepo{configured: true, candles: trend(20)}, history)

	for _, isin := range []string{"INE002A01018", "INE467B01029", "INE002A01018"} {
		_, err := svc.Predict(context.Background(), dto.PredictionRequest{ISIN: isin})
		require.NoError(t, err)
	}

	resp, err := svc.History(context.Background(), dto.GetPredictionHistoryParam{ISIN: "INE002A01018"})
	require.NoError(t, err)
	require.Len(t, resp.Predictions, 2)
	assert.Equal(t, "Reliance Industries", resp.Predictions[0].Name)

	_, err = svc.Predict(context.Background(), dto.PredictionRequest{ISIN: "IN0000000001"})
	require.NoError(t, err)
	resp, err = svc.History(context.Background(), dto.GetPredictionHistoryParam{ISIN: "IN0000000001"})
	require.NoError(t, err)
	require.Len(t, resp.Predictions, 1)
	assert.Empty(t, resp.Predictions[0].Name)
}
