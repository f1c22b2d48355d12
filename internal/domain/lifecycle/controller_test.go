//go:build unit

package lifecycle_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/errs"
	"pool-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func newController(t *testing.T) (*lifecycle.Controller, *clock.MockClock, *bytes.Buffer) {
	t.Helper()
	clk := clock.NewMockClock(now)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return lifecycle.NewController(clk, logger), clk, &logs
}

func TestCreate(t *testing.T) {
	asset := uuid.New()

	t.Run("future start is reserved", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		res, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(24 * time.Hour), End: now.Add(32 * time.Hour),
			Purpose: " workshop ",
		}, nil)
		require.NoError(t, err)

		b := res.Booking
		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusReserved, b.Status())
		assert.Equal(t, "workshop", b.Purpose().String())
		assert.Equal(t, now, b.CreatedAt())
		assert.Equal(t, booking.EventCreate, res.Transition.Event)
		assert.Nil(t, res.Transition.From)
		assert.Nil(t, b.ReturnInfo())
	})

	t.Run("started booking is active", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		res, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now, End: now.Add(time.Hour),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusActive, res.Booking.Status())
	})

	t.Run("caller-chosen initial status wins", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		res, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
			Initial: booking.StatusActive,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusActive, res.Booking.Status())
	})

	t.Run("conflict rejected", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		existing := builder.NewBookingBuilder().WithAsset(asset).
			WithRange(now.Add(time.Hour), now.Add(9*time.Hour)).MustBuildDomain()

		_, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(4 * time.Hour), End: now.Add(10 * time.Hour),
		}, []*booking.Booking{existing})

		require.Error(t, err)
		assert.True(t, errs.Is(err, booking.ErrSchedulingConflict))
		var conflict *booking.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, existing.ID(), conflict.Conflicts[0].ID())
	})

	t.Run("adjacent booking allowed", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		existing := builder.NewBookingBuilder().WithAsset(asset).
			WithRange(now.Add(time.Hour), now.Add(9*time.Hour)).MustBuildDomain()

		_, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(9 * time.Hour), End: now.Add(10 * time.Hour),
		}, []*booking.Booking{existing})
		assert.NoError(t, err)
	})

	t.Run("invalid range rejected", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		_, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(2 * time.Hour), End: now.Add(time.Hour),
		}, nil)
		assert.True(t, errs.Is(err, booking.ErrInvalidRange))
	})

	t.Run("terminal initial status rejected", func(t *testing.T) {
		ctrl, _, _ := newController(t)
		_, err := ctrl.Create(lifecycle.CreateParams{
			AssetID: asset, EmployeeID: uuid.New(),
			Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
			Initial: booking.StatusCompleted,
		}, nil)
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
	})
}

func TestReturnRecordsAuditTrail(t *testing.T) {
	ctrl, clk, _ := newController(t)

	created, err := ctrl.Create(lifecycle.CreateParams{
		AssetID: uuid.New(), EmployeeID: uuid.New(),
		Start: now.Add(time.Hour), End: now.Add(48 * time.Hour),
	}, nil)
	require.NoError(t, err)
	b1 := created.Booking

	clk.Add(time.Hour)
	activated, err := ctrl.Activate(b1)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusActive, activated.Booking.Status())

	clk.Add(5 * time.Hour)
	comments := "screen cracked"
	returned, err := ctrl.Return(b1, booking.ConditionDamaged, &comments)
	require.NoError(t, err)

	assert.Equal(t, booking.StatusCompleted, b1.Status())
	require.NotNil(t, b1.ReturnInfo())
	assert.True(t, b1.ReturnInfo().Returned)
	assert.Equal(t, booking.ConditionDamaged, b1.ReturnInfo().Condition)
	assert.Equal(t, "screen cracked", *b1.ReturnInfo().Comments)
	assert.Equal(t, clk.Now(), b1.ReturnInfo().ReturnedAt)
	assert.Equal(t, booking.EventReturn, returned.Transition.Event)
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	for _, status := range []booking.Status{booking.StatusCompleted, booking.StatusCanceled} {
		t.Run(status.String(), func(t *testing.T) {
			ctrl, _, _ := newController(t)
			b := builder.NewBookingBuilder().WithStatus(status).MustBuildDomain()

			_, err := ctrl.Activate(b)
			assert.True(t, errs.Is(err, booking.ErrInvalidTransition))
			_, err = ctrl.Cancel(b)
			assert.True(t, errs.Is(err, booking.ErrInvalidTransition))
			_, err = ctrl.Return(b, booking.ConditionGood, nil)
			assert.True(t, errs.Is(err, booking.ErrInvalidTransition))

			assert.Equal(t, status, b.Status())
		})
	}
}

func TestReturnOnlyFromActive(t *testing.T) {
	ctrl, _, _ := newController(t)
	b := builder.NewBookingBuilder().MustBuildDomain()

	_, err := ctrl.Return(b, booking.ConditionGood, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, booking.ErrInvalidTransition))
	var te *booking.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, booking.StatusReserved, te.From)
	assert.Equal(t, booking.EventReturn, te.Event)
}

func TestCancel(t *testing.T) {
	t.Run("reserved cancel is quiet", func(t *testing.T) {
		ctrl, _, logs := newController(t)
		b := builder.NewBookingBuilder().MustBuildDomain()

		res, err := ctrl.Cancel(b)
		require.NoError(t, err)
		assert.False(t, res.ReturnSkipped)
		assert.Equal(t, booking.StatusCanceled, b.Status())
		assert.Empty(t, logs.String())
	})

	t.Run("active cancel warns", func(t *testing.T) {
		ctrl, _, logs := newController(t)
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()

		res, err := ctrl.Cancel(b)
		require.NoError(t, err)
		assert.True(t, res.ReturnSkipped)
		assert.Nil(t, b.ReturnInfo())
		assert.Contains(t, logs.String(), "without return condition")
		assert.Contains(t, logs.String(), b.ID().String())
	})
}

func TestActivateIfDue(t *testing.T) {
	ctrl, clk, _ := newController(t)
	b := builder.NewBookingBuilder().WithRange(now.Add(time.Hour), now.Add(3*time.Hour)).MustBuildDomain()

	_, activated, err := ctrl.ActivateIfDue(b)
	require.NoError(t, err)
	assert.False(t, activated)
	assert.Equal(t, booking.StatusReserved, b.Status())

	clk.Set(now.Add(time.Hour))
	res, activated, err := ctrl.ActivateIfDue(b)
	require.NoError(t, err)
	assert.True(t, activated)
	assert.Equal(t, booking.StatusActive, res.Booking.Status())

	_, activated, err = ctrl.ActivateIfDue(b)
	require.NoError(t, err)
	assert.False(t, activated)
}
