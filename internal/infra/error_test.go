//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"pool-booking/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "plain error is a db failure", err: errors.New("boom"), want: infra.KindDBFailure},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "exclusion violation is a conflict", err: &pgconn.PgError{Code: "23P01"}, want: infra.KindConflict},
		{name: "lib/pq exclusion violation is a conflict", err: &pq.Error{Code: "23P01"}, want: infra.KindConflict},
		{name: "lib/pq unique violation", err: &pq.Error{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "explicit kind wins", err: &pgconn.PgError{Code: "23505"}, kind: []infra.RepositoryErrorKind{infra.KindNotFound}, want: infra.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := infra.WrapRepoErr("op", tt.err, tt.kind...)

			assert.True(t, infra.IsKind(got, tt.want), "got %v", got)
			assert.Contains(t, got.Error(), "op")
		})
	}
}

func TestWrapRepoErr_KeepsCause(t *testing.T) {
	cause := &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}

	got := infra.WrapRepoErr("insert booking", cause)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(got, &pgErr))
	assert.Equal(t, "bookings_no_overlap", pgErr.ConstraintName)
}
