package components

import (
	"context"
	"log/slog"

	"pool-booking/internal/infra/messaging"
	"pool-booking/internal/infra/outbox"
	"pool-booking/internal/infra/repository"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/config"
	"pool-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.NotificationWriteQueries)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(outbox.JobStore)),
		),
		fx.Annotate(
			NewPublisher,
			fx.As(new(outbox.Publisher)),
		),
		NewRelay,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*messaging.Publisher, error) {
	pub, err := messaging.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

func NewRelay(uow shared.UnitOfWork, store outbox.JobStore, pub outbox.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(uow, store, pub, clk, cfg.Broker, logger)
}
