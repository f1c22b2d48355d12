//go:build e2e

package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/infra/batchstore"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/outbox"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/infra/repository"
	"pool-booking/internal/infra/uow"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/usecase/batch"
	"pool-booking/internal/usecase/commands"
	"pool-booking/tests/common/dbtest"
	"pool-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type WorkerSuite struct {
	e2e.SharedSuite
	sqlxDB *sqlx.DB
}

func (s *WorkerSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	sqlxDB, cleanup, err := db.OpenSQLX(s.Config.DB, false)
	s.Require().NoError(err)
	s.T().Cleanup(cleanup)
	s.sqlxDB = sqlxDB
}

func TestWorkerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(WorkerSuite))
}

type publishedMessage struct {
	key  string
	id   uuid.UUID
	body []byte
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []publishedMessage
}

func (p *recordingPublisher) Publish(_ context.Context, key string, id uuid.UUID, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, publishedMessage{key: key, id: id, body: body})
	return nil
}

func (s *WorkerSuite) bookingStatus(id uuid.UUID) string {
	var status string
	err := s.DB.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", id).Scan(&status)
	s.Require().NoError(err)
	return status
}

func (s *WorkerSuite) TestActivationAndRelay() {
	now := time.Now().UTC().Truncate(time.Second)

	s.Run("activates started reservations and publishes their events", func() {
		clk := clock.NewMockClock(now)
		assetID := dbtest.CreateTestAsset(s.T(), s.DB, "Pool Laptop 42", true)
		employeeID := dbtest.CreateTestEmployee(s.T(), s.DB, "Batch Employee")

		started := dbtest.CreateTestBooking(s.T(), s.DB, assetID, employeeID, now.Add(-time.Hour), now.Add(7*time.Hour), "reserved")
		future := dbtest.CreateTestBooking(s.T(), s.DB, assetID, employeeID, now.Add(24*time.Hour), now.Add(32*time.Hour), "reserved")

		svc := batch.NewActivationService(
			batchstore.NewBookingStore(s.sqlxDB, false),
			lifecycle.NewController(clk, nil),
			clk,
			nil,
			batch.ActivationOptions{},
			nil,
		)

		report, err := svc.ActivateDue(context.Background())
		s.Require().NoError(err)
		s.Require().Len(report.Activated, 1)
		s.Equal(started, report.Activated[0].BookingID)
		s.Zero(report.Failed)
		s.Equal("active", s.bookingStatus(started))
		s.Equal("reserved", s.bookingStatus(future))

		var events int
		err = s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM booking_events WHERE booking_id = $1 AND event = 'activate'", started).Scan(&events)
		s.Require().NoError(err)
		s.Equal(1, events)

		pub := &recordingPublisher{}
		relay := outbox.NewRelay(
			uow.NewPostgresUoW(s.DB, pgsql.New(), clk),
			repository.NewNotificationRepository(pgsql.New(), s.DB),
			pub,
			clk,
			s.Config.Broker,
			nil,
		)

		stats, err := relay.DrainOnce(context.Background())
		s.Require().NoError(err)
		s.Equal(1, stats.Sent)
		s.Require().Len(pub.msgs, 1)
		s.Equal(commands.TopicBookingActivated, pub.msgs[0].key)
		s.Contains(string(pub.msgs[0].body), started.String())

		var status string
		err = s.DB.QueryRow(context.Background(),
			"SELECT status FROM notification_jobs WHERE id = $1", pub.msgs[0].id).Scan(&status)
		s.Require().NoError(err)
		s.Equal("sent", status)

		stats, err = relay.DrainOnce(context.Background())
		s.Require().NoError(err)
		s.Zero(stats.Sent)
	})

	s.Run("a second run finds nothing to activate", func() {
		clk := clock.NewMockClock(now)
		assetID := dbtest.LookupID(s.T(), s.DB, "assets", dbtest.SeedPoolAssetName)
		employeeID := dbtest.LookupID(s.T(), s.DB, "employees", dbtest.SeedEmployeeName)
		id := dbtest.CreateTestBooking(s.T(), s.DB, assetID, employeeID, now.Add(-2*time.Hour), now.Add(time.Hour), "reserved")

		svc := batch.NewActivationService(
			batchstore.NewBookingStore(s.sqlxDB, false),
			lifecycle.NewController(clk, nil),
			clk,
			nil,
			batch.ActivationOptions{BatchSize: 10},
			nil,
		)

		first, err := svc.ActivateDue(context.Background())
		s.Require().NoError(err)
		s.Len(first.Activated, 1)

		second, err := svc.ActivateDue(context.Background())
		s.Require().NoError(err)
		s.Empty(second.Activated)
		s.Equal("active", s.bookingStatus(id))
	})

	s.Run("Run without a task token completes locally", func() {
		clk := clock.NewMockClock(now)
		svc := batch.NewActivationService(
			batchstore.NewBookingStore(s.sqlxDB, false),
			lifecycle.NewController(clk, nil),
			clk,
			nil,
			batch.ActivationOptions{},
			nil,
		)
		s.NoError(svc.Run(context.Background()))
	})
}
