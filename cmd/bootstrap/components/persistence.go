package components

import (
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/infra/readstore"
	"pool-booking/internal/infra/uow"
	"pool-booking/internal/usecase/queries"
	"pool-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingReadQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Asset
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AssetReadQueries)),
		),
		fx.Annotate(
			readstore.NewAssetReadStore,
			fx.As(new(queries.AssetReadStore)),
		),
	),
)

// Write-side repositories are bound per transaction inside the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *pgsql.Queries {
	return pgsql.New()
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
