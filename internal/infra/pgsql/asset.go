package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const assetColumns = `id, name, is_pool_device, status, created_at, updated_at`

func scanAsset(row pgx.Row, a *Assets) error {
	return row.Scan(&a.ID, &a.Name, &a.IsPoolDevice, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

const getAssetByID = `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

func (q *Queries) GetAssetByID(ctx context.Context, db DBTX, id uuid.UUID) (Assets, error) {
	var a Assets
	err := scanAsset(db.QueryRow(ctx, getAssetByID, id), &a)
	return a, err
}

const listPoolAssets = `SELECT ` + assetColumns + ` FROM assets WHERE is_pool_device ORDER BY name, id`

func (q *Queries) ListPoolAssets(ctx context.Context, db DBTX) ([]Assets, error) {
	rows, err := db.Query(ctx, listPoolAssets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Assets
	for rows.Next() {
		var a Assets
		if err := scanAsset(rows, &a); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const getEmployeeByID = `SELECT id, name, email, created_at FROM employees WHERE id = $1`

func (q *Queries) GetEmployeeByID(ctx context.Context, db DBTX, id uuid.UUID) (Employees, error) {
	var e Employees
	err := db.QueryRow(ctx, getEmployeeByID, id).Scan(&e.ID, &e.Name, &e.Email, &e.CreatedAt)
	return e, err
}
