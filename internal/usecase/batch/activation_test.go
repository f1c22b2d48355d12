//go:build unit

package batch_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/usecase/batch"
	"pool-booking/internal/usecase/commands"
	"pool-booking/tests/common/builder"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type enqueuedJob struct {
	Kind    string
	Topic   string
	Payload []byte
}

// memActivationStore keeps bookings in memory; a failed WithinTx discards
// the changes of that call.
type memActivationStore struct {
	bookings  map[uuid.UUID]*booking.Booking
	order     []uuid.UUID
	events    []booking.Transition
	jobs      []enqueuedJob
	locked    []uuid.UUID
	failOn    map[uuid.UUID]error
	changedBy func(id uuid.UUID) bool
	afterList func()
}

func newMemActivationStore() *memActivationStore {
	return &memActivationStore{
		bookings: map[uuid.UUID]*booking.Booking{},
		failOn:   map[uuid.UUID]error{},
	}
}

func (m *memActivationStore) add(b *booking.Booking) {
	m.bookings[b.ID()] = b
	m.order = append(m.order, b.ID())
}

func (m *memActivationStore) ListDueReserved(_ context.Context, now time.Time, limit int) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, id := range m.order {
		b := m.bookings[id]
		if b.IsDue(now) && len(out) < limit {
			out = append(out, clone(b))
		}
	}
	if m.afterList != nil {
		m.afterList()
	}
	return out, nil
}

func (m *memActivationStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx batch.ActivationTx) error) error {
	tx := &memActivationTx{store: m, staged: map[uuid.UUID]*booking.Booking{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, b := range tx.staged {
		m.bookings[id] = b
	}
	m.events = append(m.events, tx.events...)
	m.jobs = append(m.jobs, tx.jobs...)
	return nil
}

// clone keeps fn's mutations away from the committed copy.
func clone(b *booking.Booking) *booking.Booking {
	var ri *booking.ReturnInfo
	if b.ReturnInfo() != nil {
		v := *b.ReturnInfo()
		ri = &v
	}
	c, err := booking.ReconstructBooking(
		b.ID(), b.AssetID(), b.EmployeeID(),
		b.Period(), b.Purpose(), b.Status(), ri,
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

type memActivationTx struct {
	store  *memActivationStore
	staged map[uuid.UUID]*booking.Booking
	events []booking.Transition
	jobs   []enqueuedJob
}

func (t *memActivationTx) LockAsset(_ context.Context, assetID uuid.UUID) error {
	t.store.locked = append(t.store.locked, assetID)
	return nil
}

func (t *memActivationTx) BookingForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := t.store.failOn[id]; err != nil {
		return nil, err
	}
	b, ok := t.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return clone(b), nil
}

func (t *memActivationTx) UpdateStatus(_ context.Context, b *booking.Booking, expected booking.Status) error {
	stored := t.store.bookings[b.ID()]
	if stored.Status() != expected || (t.store.changedBy != nil && t.store.changedBy(b.ID())) {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	t.staged[b.ID()] = b
	return nil
}

func (t *memActivationTx) AppendEvent(_ context.Context, _ uuid.UUID, tr booking.Transition) error {
	t.events = append(t.events, tr)
	return nil
}

func (t *memActivationTx) EnqueueJob(_ context.Context, kind, topic string, payload []byte, _ time.Time) error {
	t.jobs = append(t.jobs, enqueuedJob{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

type recordingNotifier struct {
	success []*sfn.SendTaskSuccessInput
	failure []*sfn.SendTaskFailureInput
	err     error
}

func (n *recordingNotifier) SendTaskSuccess(_ context.Context, in *sfn.SendTaskSuccessInput, _ ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error) {
	n.success = append(n.success, in)
	return &sfn.SendTaskSuccessOutput{}, n.err
}

func (n *recordingNotifier) SendTaskFailure(_ context.Context, in *sfn.SendTaskFailureInput, _ ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error) {
	n.failure = append(n.failure, in)
	return &sfn.SendTaskFailureOutput{}, n.err
}

type ActivationServiceTestSuite struct {
	suite.Suite
	clock    *clock.MockClock
	store    *memActivationStore
	notifier *recordingNotifier
	monday   time.Time
}

func (s *ActivationServiceTestSuite) SetupTest() {
	s.monday = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.monday.Add(30 * time.Minute))
	s.store = newMemActivationStore()
	s.notifier = &recordingNotifier{}
}

func TestActivationServiceSuite(t *testing.T) {
	suite.Run(t, new(ActivationServiceTestSuite))
}

func (s *ActivationServiceTestSuite) service(token string) *batch.ActivationService {
	return batch.NewActivationService(
		s.store,
		lifecycle.NewController(s.clock, nil),
		s.clock,
		s.notifier,
		batch.ActivationOptions{TaskToken: token},
		nil,
	)
}

func (s *ActivationServiceTestSuite) reserved(start time.Time) *booking.Booking {
	b := builder.NewBookingBuilder().WithRange(start, start.Add(4*time.Hour)).MustBuildDomain()
	s.store.add(b)
	return b
}

func (s *ActivationServiceTestSuite) TestActivateDue_ActivatesStartedReservations() {
	due := s.reserved(s.monday)
	future := s.reserved(s.monday.Add(24 * time.Hour))

	report, err := s.service("").ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Require().Len(report.Activated, 1)
	s.Equal(due.ID(), report.Activated[0].BookingID)
	s.Equal(s.clock.Now(), report.Activated[0].ActivatedAt)
	s.Equal(booking.StatusActive, s.store.bookings[due.ID()].Status())
	s.Equal(booking.StatusReserved, s.store.bookings[future.ID()].Status())
	s.Equal([]uuid.UUID{due.AssetID()}, s.store.locked)

	s.Require().Len(s.store.events, 1)
	s.Equal(booking.EventActivate, s.store.events[0].Event)

	s.Require().Len(s.store.jobs, 1)
	s.Equal(commands.NotificationKindBookingEvent, s.store.jobs[0].Kind)
	s.Equal(commands.TopicBookingActivated, s.store.jobs[0].Topic)
	var payload commands.BookingEventPayload
	s.Require().NoError(json.Unmarshal(s.store.jobs[0].Payload, &payload))
	s.Equal(due.ID(), payload.BookingID)
	s.Equal("active", payload.To)
}

func (s *ActivationServiceTestSuite) TestActivateDue_StartExactlyNowIsDue() {
	s.clock.Set(s.monday)
	b := s.reserved(s.monday)

	report, err := s.service("").ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Require().Len(report.Activated, 1)
	s.Equal(b.ID(), report.Activated[0].BookingID)
}

func (s *ActivationServiceTestSuite) TestActivateDue_SkipsBookingCanceledMeanwhile() {
	b := s.reserved(s.monday)
	canceled := clone(b)
	_, err := canceled.Cancel(s.monday)
	s.Require().NoError(err)
	// The listing sees it reserved; the locked re-read sees it canceled.
	s.store.afterList = func() { s.store.bookings[b.ID()] = canceled }

	report, err := s.service("").ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Empty(report.Activated)
	s.Equal(1, report.Skipped)
	s.Empty(s.store.events)
	s.Equal(booking.StatusCanceled, s.store.bookings[b.ID()].Status())
}

func (s *ActivationServiceTestSuite) TestActivateDue_OneFailureDoesNotStopBatch() {
	broken := s.reserved(s.monday)
	ok := s.reserved(s.monday.Add(10 * time.Minute))
	s.store.failOn[broken.ID()] = errors.New("connection reset")

	report, err := s.service("").ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, report.Failed)
	s.Require().Len(report.Activated, 1)
	s.Equal(ok.ID(), report.Activated[0].BookingID)
	s.Equal(booking.StatusReserved, s.store.bookings[broken.ID()].Status())
}

func (s *ActivationServiceTestSuite) TestActivateDue_ConcurrentChangeCountsAsFailure() {
	b := s.reserved(s.monday)
	s.store.changedBy = func(id uuid.UUID) bool { return id == b.ID() }

	report, err := s.service("").ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, report.Failed)
	s.Empty(report.Activated)
	s.Empty(s.store.jobs)
}

func (s *ActivationServiceTestSuite) TestRun_SendsTaskSuccessWithReport() {
	b := s.reserved(s.monday)

	err := s.service("token-1").Run(context.Background())

	s.Require().NoError(err)
	s.Require().Len(s.notifier.success, 1)
	s.Equal("token-1", aws.ToString(s.notifier.success[0].TaskToken))

	var report batch.ActivationReport
	s.Require().NoError(json.Unmarshal([]byte(aws.ToString(s.notifier.success[0].Output)), &report))
	s.Require().Len(report.Activated, 1)
	s.Equal(b.ID(), report.Activated[0].BookingID)
}

func (s *ActivationServiceTestSuite) TestRun_WithoutTokenSkipsCallback() {
	s.reserved(s.monday)

	err := s.service("").Run(context.Background())

	s.Require().NoError(err)
	s.Empty(s.notifier.success)
}

func (s *ActivationServiceTestSuite) TestRun_CallbackErrorFailsRun() {
	s.notifier.err = errors.New("task timed out")

	err := s.service("token-1").Run(context.Background())

	s.Require().Error(err)
	s.Contains(err.Error(), "send task success")
}

func (s *ActivationServiceTestSuite) TestReportFailure() {
	err := s.service("token-1").ReportFailure(context.Background(), errors.New("db down"))

	s.Require().NoError(err)
	s.Require().Len(s.notifier.failure, 1)
	s.Equal("db down", aws.ToString(s.notifier.failure[0].Cause))
}
