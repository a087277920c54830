package service

import (
	"context"
	"fmt"
	"time"

	"algooee/config"
	"algooee/internal/dto"
	"algooee/pkg/logger"
	"algooee/pkg/utils"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// SchedulerService runs predictions for the configured watchlist on a cron schedule.
type SchedulerService interface {
	Start() error
	Stop(ctx context.Context)
	RunWatchlist(ctx context.Context) error
}

type schedulerService struct {
	cfg               *config.Config
	log               *logger.Logger
	cron              *cron.Cron
	predictionService PredictionService
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, predictionService PredictionService) SchedulerService {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cfg:               cfg,
		log:               log,
		cron:              cron.New(cron.WithParser(parser)),
		predictionService: predictionService,
	}
}

func (s *schedulerService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		timeout := s.cfg.Scheduler.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.RunWatchlist(ctx); err != nil {
			s.log.Error("Watchlist run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cfg.Scheduler.CronExpression, err)
	}

	s.log.Info("Starting watchlist scheduler",
		logger.StringField("cron_expression", s.cfg.Scheduler.CronExpression),
		logger.IntField("watchlist_size", len(s.cfg.Scheduler.Watchlist)),
	)
	s.cron.Start()
	return nil
}

// Stop waits for a running watchlist pass to finish or for ctx to expire.
func (s *schedulerService) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Watchlist scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Timeout while stopping watchlist scheduler")
	}
}

// RunWatchlist predicts every watchlist ISIN with the default window.
// A failing ISIN is logged and does not stop the others.
func (s *schedulerService) RunWatchlist(ctx context.Context) error {
	if !s.predictionService.Configured() {
		return ErrNotConfigured
	}

	limit := s.cfg.Scheduler.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, isin := range s.cfg.Scheduler.Watchlist {
		if !utils.ShouldContinue(gctx, s.log) {
			break
		}
		isin := isin
		g.Go(func() error {
			resp, err := s.predictionService.Predict(gctx, dto.PredictionRequest{ISIN: isin})
			if err != nil {
				s.log.WarnContext(gctx, "Watchlist prediction failed",
					logger.StringField("isin", isin),
					logger.ErrorField(err),
				)
				return nil
			}
			s.log.InfoContext(gctx, "Watchlist prediction",
				logger.StringField("isin", resp.ISIN),
				logger.FloatField("predicted_high", resp.PredictedHigh),
				logger.FloatField("confidence", resp.Confidence),
			)
			return nil
		})
	}
	return g.Wait()
}
