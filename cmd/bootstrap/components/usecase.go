package components

import (
	"log/slog"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/config"
	"pool-booking/internal/usecase/commands"
	"pool-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewAvailabilityEngine,
	func(clk clock.Clock, logger *slog.Logger) *lifecycle.Controller {
		return lifecycle.NewController(clk, logger)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewAvailabilityEngine(cfg config.Config) (*availability.Engine, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}
	return availability.NewEngine(loc), nil
}
