package bootstrap

import (
	"pool-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// WorkerConfigModule loads configuration without the HTTP server section.
var WorkerConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadWorkerConfig,
	),
)
