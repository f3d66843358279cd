package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forwarding/cmd"
	httpin "forwarding/internal/adapters/in/http"
	"forwarding/internal/adapters/out/kafka"
	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/jobs"
	"forwarding/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; the environment always wins.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(configs.LogLevel)
	defer func() { _ = log.Sync() }()

	if err = run(configs, log); err != nil {
		log.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(configs cmd.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	thresholds, err := configs.Thresholds()
	if err != nil {
		return err
	}

	notifier := kafka.NewNotifier(configs.KafkaBrokersSlice(), configs.KafkaNotificationsTopic, log)
	defer func() {
		if closeErr := notifier.Close(); closeErr != nil {
			log.Error("failed to close notifier", zap.Error(closeErr))
		}
	}()

	app, err := cmd.NewCompositionRoot(configs, gormDB, thresholds, notifier, log)
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(
		app.CreateReleaseExpiredReservationsCommandHandler(),
		app.CreateFlagOverdueItemsCommandHandler(),
		jobs.Schedules{
			ReservationExpiry: configs.ReservationExpirySchedule,
			OverdueItems:      configs.OverdueItemsSchedule,
		},
		log,
	)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	httpin.NewServer(
		app.CreateGetStorageUtilizationQueryHandler(),
		app.CreateGetLocationPathQueryHandler(),
		app.CreateGetUrgentItemsQueryHandler(),
		nil,
	).Register(e)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("ops server listening", zap.String("port", configs.HTTPPort))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
