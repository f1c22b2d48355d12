//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the Postgres unit of work. Each
// Within call works on a copy that is only kept when fn succeeds.
type memStore struct {
	mu sync.Mutex

	assets       map[uuid.UUID]*shared.AssetSnapshot
	employees    map[uuid.UUID]*shared.EmployeeSnapshot
	bookings     map[uuid.UUID]*booking.Booking
	events       []recordedEvent
	jobs         []recordedJob
	idempotency  map[uuid.UUID]*shared.IdempotencyRecord
	lockedAssets []uuid.UUID
	now          func() time.Time
}

type recordedEvent struct {
	BookingID  uuid.UUID
	Transition booking.Transition
}

type recordedJob struct {
	Kind    string
	Topic   string
	Payload []byte
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		assets:      map[uuid.UUID]*shared.AssetSnapshot{},
		employees:   map[uuid.UUID]*shared.EmployeeSnapshot{},
		bookings:    map[uuid.UUID]*booking.Booking{},
		idempotency: map[uuid.UUID]*shared.IdempotencyRecord{},
		now:         now,
	}
}

func (s *memStore) addPoolAsset() uuid.UUID {
	id := uuid.New()
	s.assets[id] = &shared.AssetSnapshot{ID: id, Name: "Pool Laptop", IsPoolDevice: true, Status: "pool"}
	return id
}

func (s *memStore) addEmployee() uuid.UUID {
	id := uuid.New()
	s.employees[id] = &shared.EmployeeSnapshot{ID: id, Name: "Employee"}
	return id
}

func (s *memStore) put(b *booking.Booking) {
	s.bookings[b.ID()] = b
}

func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, bookings: map[uuid.UUID]*booking.Booking{}, idem: map[uuid.UUID]*shared.IdempotencyRecord{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, b := range tx.bookings {
		s.bookings[id] = b
	}
	for k, r := range tx.idem {
		s.idempotency[k] = r
	}
	s.events = append(s.events, tx.events...)
	s.jobs = append(s.jobs, tx.jobs...)
	s.lockedAssets = append(s.lockedAssets, tx.locked...)
	return nil
}

func (s *memStore) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *memStore) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *memStore) CommandReads() shared.CommandReads {
	return &memTx{store: s}
}

type memTx struct {
	store    *memStore
	bookings map[uuid.UUID]*booking.Booking
	idem     map[uuid.UUID]*shared.IdempotencyRecord
	events   []recordedEvent
	jobs     []recordedJob
	locked   []uuid.UUID
}

func (t *memTx) Bookings() shared.BookingRepository           { return t }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return (*memIdem)(t) }
func (t *memTx) Notifications() shared.NotificationRepository { return t }
func (t *memTx) Reads() shared.CommandReads                   { return t }
func (t *memTx) DB() db.DBTX                                  { return nil }

func (t *memTx) booking(id uuid.UUID) (*booking.Booking, bool) {
	if b, ok := t.bookings[id]; ok {
		return b, true
	}
	b, ok := t.store.bookings[id]
	return b, ok
}

// BookingRepository

func (t *memTx) LockAsset(_ context.Context, _ db.DBTX, assetID uuid.UUID) error {
	t.locked = append(t.locked, assetID)
	return nil
}

func (t *memTx) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	t.bookings[b.ID()] = b
	return nil
}

func (t *memTx) Update(_ context.Context, _ db.DBTX, b *booking.Booking, _ booking.Status) error {
	t.bookings[b.ID()] = b
	return nil
}

func (t *memTx) AppendEvent(_ context.Context, _ db.DBTX, bookingID uuid.UUID, tr booking.Transition) error {
	t.events = append(t.events, recordedEvent{BookingID: bookingID, Transition: tr})
	return nil
}

// NotificationRepository

func (t *memTx) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, _ time.Time) error {
	t.jobs = append(t.jobs, recordedJob{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

// CommandReads

func (t *memTx) AssetByID(_ context.Context, id uuid.UUID) (*shared.AssetSnapshot, error) {
	a, ok := t.store.assets[id]
	if !ok {
		return nil, infra.WrapRepoErr("asset not found", nil, infra.KindNotFound)
	}
	return a, nil
}

func (t *memTx) EmployeeByID(_ context.Context, id uuid.UUID) (*shared.EmployeeSnapshot, error) {
	e, ok := t.store.employees[id]
	if !ok {
		return nil, infra.WrapRepoErr("employee not found", nil, infra.KindNotFound)
	}
	return e, nil
}

func (t *memTx) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := t.booking(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (t *memTx) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return t.BookingByID(ctx, id)
}

func (t *memTx) HoldingBookings(_ context.Context, assetID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range t.store.bookings {
		if b.AssetID() != assetID || !b.Status().Holds() {
			continue
		}
		if b.Period().Start().Before(to) && from.Before(b.Period().End()) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period().Start().Before(out[j].Period().Start()) })
	return out, nil
}

func (t *memTx) IdempotencyByKey(_ context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	r, ok := t.idem[key]
	if !ok {
		r, ok = t.store.idempotency[key]
	}
	if !ok || t.store.now().After(r.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return r, nil
}

type memIdem memTx

func (m *memIdem) TryInsert(_ context.Context, _ db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	if _, ok := m.store.idempotency[key]; ok {
		return false, nil
	}
	m.idem[key] = &shared.IdempotencyRecord{
		Key: key, Endpoint: endpoint, RequestHash: requestHash,
		Status: shared.IdempotencyStatusProcessing, ExpiresAt: expiresAt,
	}
	return true, nil
}

func (m *memIdem) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key uuid.UUID, _ string, resultBookingID uuid.UUID) error {
	r := *m.idem[key]
	r.Status = shared.IdempotencyStatusCompleted
	r.ResultBookingID = &resultBookingID
	m.idem[key] = &r
	return nil
}

func (m *memIdem) ClaimExpired(_ context.Context, _ db.DBTX, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	r, ok := m.store.idempotency[key]
	if !ok || !m.store.now().After(r.ExpiresAt) {
		return false, nil
	}
	m.idem[key] = &shared.IdempotencyRecord{
		Key: key, Endpoint: r.Endpoint, RequestHash: requestHash,
		Status: shared.IdempotencyStatusProcessing, ExpiresAt: expiresAt,
	}
	return true, nil
}
