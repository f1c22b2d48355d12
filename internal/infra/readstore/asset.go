package readstore

import (
	"context"

	"pool-booking/internal/infra"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/pkg/pgconv"
	"pool-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AssetReadQueries interface {
	GetAssetByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Assets, error)
	ListPoolAssets(ctx context.Context, db pgsql.DBTX) ([]pgsql.Assets, error)
	GetEmployeeByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Employees, error)
}

type AssetReadStore struct {
	queries AssetReadQueries
	db      db.DBTX
}

func NewAssetReadStore(queries AssetReadQueries, db db.DBTX) *AssetReadStore {
	return &AssetReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AssetReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AssetView, error) {
	row, err := r.queries.GetAssetByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("asset not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find asset by ID", err)
	}

	return rowToAssetView(row), nil
}

func (r *AssetReadStore) ListPool(ctx context.Context) ([]*queries.AssetView, error) {
	rows, err := r.queries.ListPoolAssets(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pool assets", err)
	}

	result := make([]*queries.AssetView, len(rows))
	for i, row := range rows {
		result[i] = rowToAssetView(row)
	}

	return result, nil
}

// EmployeeName returns the display name of an employee, or KindNotFound.
func (r *AssetReadStore) EmployeeName(ctx context.Context, id uuid.UUID) (string, error) {
	row, err := r.queries.GetEmployeeByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("employee not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to find employee by ID", err)
	}

	return row.Name, nil
}

func rowToAssetView(row pgsql.Assets) *queries.AssetView {
	return &queries.AssetView{
		ID:           row.ID,
		Name:         row.Name,
		IsPoolDevice: row.IsPoolDevice,
		Status:       row.Status,
	}
}
