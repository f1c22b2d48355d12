package main

import (
	"context"
	"log/slog"
	"os"

	"pool-booking/cmd/bootstrap"
	"pool-booking/cmd/bootstrap/components"
	"pool-booking/internal/infra/outbox"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	_ = godotenv.Load()
}

func runRelay(lc fx.Lifecycle, relay *outbox.Relay, cfg config.Config, logger *slog.Logger, shutdowner fx.Shutdowner) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting outbox relay",
				"exchange", cfg.Broker.Exchange,
				"poll_interval", cfg.Broker.PollInterval.String(),
				"batch_size", cfg.Broker.BatchSize)
			go func() {
				defer close(done)
				if err := relay.Run(ctx); err != nil {
					logger.Error("outbox relay stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("stopping outbox relay")
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.WorkerConfigModule,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		components.PersistenceModule,
		fx.Provide(clock.NewRealClock),
		components.OutboxModule,
		fx.Invoke(runRelay),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("relay failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("relay failed to stop cleanly", "error", err)
	}
}
