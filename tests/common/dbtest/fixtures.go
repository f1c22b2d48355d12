//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Names of the rows SeedReferenceData inserts.
const (
	SeedPoolAssetName     = "Pool Laptop 01"
	SeedAssignedAssetName = "Assigned Laptop 07"
	SeedEmployeeName      = "Default Employee"
)

func CreateTestAsset(t *testing.T, db DBLike, name string, isPoolDevice bool) uuid.UUID {
	t.Helper()

	assetID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO assets (id, name, is_pool_device, status) VALUES ($1, $2, $3, 'pool')",
		assetID, name, isPoolDevice)
	require.NoError(t, err)

	return assetID
}

func CreateTestEmployee(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	employeeID := uuid.New()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	_, err := db.Exec(context.Background(),
		"INSERT INTO employees (id, name, email) VALUES ($1, $2, $3)",
		employeeID, name, email)
	require.NoError(t, err)

	return employeeID
}

// CreateTestBooking inserts a booking row directly, bypassing the overlap checks of the API.
func CreateTestBooking(t *testing.T, db DBLike, assetID, employeeID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	now := time.Now()
	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (id, asset_id, employee_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		bookingID, assetID, employeeID, start, end, status, now)
	require.NoError(t, err)

	return bookingID
}

// LookupID returns the id of the seeded row with the given name.
func LookupID(t *testing.T, db DBLike, table, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM "+table+" WHERE name = $1 LIMIT 1", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO assets (id, name, is_pool_device, status) VALUES
		    (gen_random_uuid(), $1, true, 'pool'),
		    (gen_random_uuid(), $2, false, 'assigned')`,
		SeedPoolAssetName, SeedAssignedAssetName)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO employees (id, name, email) VALUES
		    (gen_random_uuid(), $1, 'default.employee@example.com')`,
		SeedEmployeeName)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
