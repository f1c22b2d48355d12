//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/pkg/errs"
	"pool-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionCase struct {
	name  string
	from  booking.Status
	act   func(b *booking.Booking) (booking.Transition, error)
	want  booking.Status
	errIs error
}

func activate(b *booking.Booking) (booking.Transition, error) { return b.Activate(at(1)) }
func cancel(b *booking.Booking) (booking.Transition, error)   { return b.Cancel(at(1)) }
func giveBack(b *booking.Booking) (booking.Transition, error) {
	return b.Return(at(1), booking.ConditionGood, nil)
}

func TestBookingTransitions(t *testing.T) {
	cases := []transitionCase{
		{name: "reserved activate OK", from: booking.StatusReserved, act: activate, want: booking.StatusActive},
		{name: "reserved cancel OK", from: booking.StatusReserved, act: cancel, want: booking.StatusCanceled},
		{name: "reserved return NG", from: booking.StatusReserved, act: giveBack, errIs: booking.ErrInvalidTransition},
		{name: "active cancel OK", from: booking.StatusActive, act: cancel, want: booking.StatusCanceled},
		{name: "active return OK", from: booking.StatusActive, act: giveBack, want: booking.StatusCompleted},
		{name: "active activate NG", from: booking.StatusActive, act: activate, errIs: booking.ErrInvalidTransition},
		{name: "completed activate NG", from: booking.StatusCompleted, act: activate, errIs: booking.ErrInvalidTransition},
		{name: "completed cancel NG", from: booking.StatusCompleted, act: cancel, errIs: booking.ErrInvalidTransition},
		{name: "completed return NG", from: booking.StatusCompleted, act: giveBack, errIs: booking.ErrInvalidTransition},
		{name: "canceled activate NG", from: booking.StatusCanceled, act: activate, errIs: booking.ErrInvalidTransition},
		{name: "canceled cancel NG", from: booking.StatusCanceled, act: cancel, errIs: booking.ErrInvalidTransition},
		{name: "canceled return NG", from: booking.StatusCanceled, act: giveBack, errIs: booking.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().WithStatus(tc.from).MustBuildDomain()

			tr, err := tc.act(b)
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs), "got %v", err)
				assert.Equal(t, tc.from, b.Status(), "failed transition must not change status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.Status())
			assert.Equal(t, tc.want, tr.To)
			require.NotNil(t, tr.From)
			assert.Equal(t, tc.from, *tr.From)
			assert.Equal(t, at(1), b.UpdatedAt())
		})
	}
}

func TestBookingReturn(t *testing.T) {
	t.Run("records return info", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		comments := "  screen cracked "

		tr, err := b.Return(at(4), booking.ConditionDamaged, &comments)
		require.NoError(t, err)

		want := &booking.ReturnInfo{
			Returned:   true,
			ReturnedAt: at(4),
			Condition:  booking.ConditionDamaged,
			Comments:   strPtr("screen cracked"),
		}
		if diff := cmp.Diff(want, b.ReturnInfo()); diff != "" {
			t.Errorf("ReturnInfo mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.Equal(t, "damaged", tr.Detail["condition"])
	})

	t.Run("blank comments are dropped", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		blank := "   "
		_, err := b.Return(at(4), booking.ConditionGood, &blank)
		require.NoError(t, err)
		assert.Nil(t, b.ReturnInfo().Comments)
	})

	t.Run("unknown condition NG", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		_, err := b.Return(at(4), booking.Condition("scratched"), nil)
		assert.True(t, errs.Is(err, booking.ErrInvalidCondition))
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Nil(t, b.ReturnInfo())
	})

	t.Run("comments limit counts characters", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		atLimit := strings.Repeat("ä", booking.MaxCommentsLength)
		_, err := b.Return(at(4), booking.ConditionGood, &atLimit)
		require.NoError(t, err)
		assert.Equal(t, atLimit, *b.ReturnInfo().Comments)
	})

	t.Run("comments over limit NG", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		tooLong := strings.Repeat("ä", booking.MaxCommentsLength+1)
		_, err := b.Return(at(4), booking.ConditionGood, &tooLong)
		assert.True(t, errs.Is(err, booking.ErrCommentsTooLong))
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Nil(t, b.ReturnInfo())
	})

	t.Run("terminal state wins over bad condition", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCompleted, booking.StatusCanceled, booking.StatusReserved} {
			b := builder.NewBookingBuilder().WithStatus(status).MustBuildDomain()
			_, err := b.Return(at(4), booking.Condition("scratched"), nil)
			assert.True(t, errs.Is(err, booking.ErrInvalidTransition), "status %s: got %v", status, err)
			assert.False(t, errs.Is(err, booking.ErrInvalidCondition))
		}
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("reserved cancel writes no return info", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		tr, err := b.Cancel(at(1))
		require.NoError(t, err)
		assert.Nil(t, b.ReturnInfo())
		assert.Nil(t, tr.Detail)
	})

	t.Run("active cancel flags skipped return", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusActive).MustBuildDomain()
		tr, err := b.Cancel(at(1))
		require.NoError(t, err)
		assert.Nil(t, b.ReturnInfo())
		assert.Equal(t, true, tr.Detail["returnSkipped"])
	})
}

func TestReconstructBookingInvariants(t *testing.T) {
	t.Run("returned but not completed NG", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ReturnInfo = &booking.ReturnInfo{Returned: true, ReturnedAt: at(2), Condition: booking.ConditionGood}
			b.Status = booking.StatusActive
		}).BuildDomain()
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
	})

	t.Run("canceled with return info NG", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ReturnInfo = &booking.ReturnInfo{Returned: false}
			b.Status = booking.StatusCanceled
		}).BuildDomain()
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
	})

	t.Run("unknown status NG", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithStatus("pending").BuildDomain()
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
	})
}

func TestBookingOccupancy(t *testing.T) {
	start, end := at(0), at(48)

	tests := []struct {
		name    string
		build   *builder.BookingBuilder
		wantOK  bool
		wantEnd time.Time
	}{
		{name: "reserved occupies full range", build: builder.NewBookingBuilder(), wantOK: true, wantEnd: end},
		{name: "canceled occupies nothing", build: builder.NewBookingBuilder().WithStatus(booking.StatusCanceled), wantOK: false},
		{name: "early return truncates", build: builder.NewBookingBuilder().Returned(at(10), booking.ConditionGood), wantOK: true, wantEnd: at(10)},
		{name: "late return keeps end", build: builder.NewBookingBuilder().Returned(at(60), booking.ConditionGood), wantOK: true, wantEnd: end},
		{name: "returned before start occupies nothing", build: builder.NewBookingBuilder().Returned(at(-1), booking.ConditionGood), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build.WithRange(start, end).MustBuildDomain()
			occ, ok := b.Occupancy()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, start, occ.Start())
				assert.Equal(t, tt.wantEnd, occ.End())
			}
		})
	}
}

func TestNewBookingRejectsTerminalInitialStatus(t *testing.T) {
	period, err := booking.NewTimeRange(at(0), at(1))
	require.NoError(t, err)

	for _, s := range []booking.Status{booking.StatusCompleted, booking.StatusCanceled} {
		_, err := booking.NewBooking(uuid.New(), uuid.New(), period, booking.NewPurpose(""), s, at(-1))
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus), "status %s", s)
	}
}

func strPtr(s string) *string { return &s }
