package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algooee/internal/delivery/http"
	"algooee/internal/repository"
	"algooee/internal/service"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the prediction API server",
	Run:   Start,
}

var methodError = []string{"method", "error"}

func newServiceMetrics(namespace, subsystem string) service.Metrics {
	return service.Metrics{
		RequestCount: kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_count",
			Help:      "Number of prediction service requests.",
		}, methodError),
		RequestDuration: kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of prediction service requests in seconds.",
		}, methodError),
	}
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.Gorm(), appDep.log, appDep.dates)

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.dates,
		newServiceMetrics(appDep.cfg.API.MetricsNamespace, appDep.cfg.API.MetricsSubsystem),
	)
	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg, appDep.echo, appDep.validator, services, appDep.dates)

	if appDep.cfg.Scheduler.Enabled {
		if err := services.SchedulerService.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	if appDep.cfg.Scheduler.Enabled {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		services.SchedulerService.Stop(stopCtx)
		cancel()
	}

	if err := apiServer.Stop(); err != nil {
		log.Printf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
