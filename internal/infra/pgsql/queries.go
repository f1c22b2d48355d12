// Package pgsql holds the hand-written SQL used by the repositories and
// read stores. Every method takes the DBTX to run on so the same Queries
// value serves pool connections and transactions alike.
package pgsql

import (
	"pool-booking/internal/infra/db"
)

type DBTX = db.DBTX

type Queries struct{}

func New() *Queries {
	return &Queries{}
}
