package service

import (
	"context"
	"testing"

	"algooee/config"
	"algooee/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerService_RunWatchlist(t *testing.T) {
	candles := &fakeCandleRepo{configured: true, candles: trend(20)}
	history := &fakeHistoryRepo{}
	predictionService := newTestPredictionService(candles, history)

	cfg := &config.Config{Scheduler: config.Scheduler{
		CronExpression: "@daily",
		Watchlist:      []string{"INE002A01018", "INE467B01029", "INE009A01021"},
		MaxConcurrency: 2,
	}}
	scheduler := NewSchedulerService(cfg, logger.NewNop(), predictionService)

	require.NoError(t, scheduler.RunWatchlist(context.Background()))
	assert.Len(t, history.created, 3)
	assert.Len(t, candles.params, 3)
}

func TestSchedulerService_RunWatchlistNotConfigured(t *testing.T) {
	predictionService := newTestPredictionService(&fakeCandleRepo{}, &fakeHistoryRepo{})
	scheduler := NewSchedulerService(&config.Config{}, logger.NewNop(), predictionService)

	assert.ErrorIs(t, scheduler.RunWatchlist(context.Background()), ErrNotConfigured)
}

func TestSchedulerService_StartRejectsBadCron(t *testing.T) {
	predictionService := newTestPredictionService(&fakeCandleRepo{configured: true}, &fakeHistoryRepo{})
	cfg := &config.Config{Scheduler: config.Scheduler{CronExpression: "not a cron"}}
	scheduler := NewSchedulerService(cfg, logger.NewNop(), predictionService)

	assert.Error(t, scheduler.Start())
}
