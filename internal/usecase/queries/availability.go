package queries

import (
	"context"
	"time"

	"pool-booking/internal/domain/asset"
	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/mock_availability.go -package=queriesmock

type AssetReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AssetView, error)
	ListPool(ctx context.Context) ([]*AssetView, error)
}

// AvailabilityQueries answers calendar questions. All answers are derived
// from stored bookings on every call.
type AvailabilityQueries interface {
	AssetBookings(ctx context.Context, assetID uuid.UUID) ([]*BookingView, error)
	BookingsOnDate(ctx context.Context, assetID uuid.UUID, day availability.Day) ([]*BookingView, error)
	AssetDay(ctx context.Context, assetID uuid.UUID, day availability.Day) (*AssetDayView, error)
	Conflicts(ctx context.Context, assetID uuid.UUID, start, end time.Time) (*ConflictHintView, error)
	FleetDay(ctx context.Context, day availability.Day) (*FleetDayView, error)
	FleetMonth(ctx context.Context, year int, month time.Month) (*FleetMonthView, error)
}

type availabilityQueriesImpl struct {
	bookings BookingReadStore
	assets   AssetReadStore
	engine   *availability.Engine
}

func NewAvailabilityQueries(bookings BookingReadStore, assets AssetReadStore, engine *availability.Engine) AvailabilityQueries {
	return &availabilityQueriesImpl{
		bookings: bookings,
		assets:   assets,
		engine:   engine,
	}
}

func (q *availabilityQueriesImpl) AssetBookings(ctx context.Context, assetID uuid.UUID) ([]*BookingView, error) {
	if _, err := q.findAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return q.bookings.ListAllByAsset(ctx, assetID)
}

func (q *availabilityQueriesImpl) BookingsOnDate(ctx context.Context, assetID uuid.UUID, day availability.Day) ([]*BookingView, error) {
	views, domain, err := q.assetBookings(ctx, assetID, day, day)
	if err != nil {
		return nil, err
	}

	onDay := q.engine.BookingsForAssetOnDate(assetID, day, domain)
	out := make([]*BookingView, 0, len(onDay))
	for _, b := range onDay {
		out = append(out, views[b.ID()])
	}
	return out, nil
}

func (q *availabilityQueriesImpl) AssetDay(ctx context.Context, assetID uuid.UUID, day availability.Day) (*AssetDayView, error) {
	views, domain, err := q.assetBookings(ctx, assetID, day, day)
	if err != nil {
		return nil, err
	}

	onDay := q.engine.BookingsForAssetOnDate(assetID, day, domain)
	result := &AssetDayView{
		AssetID:  assetID,
		Date:     day.String(),
		Status:   q.engine.AssetStatusOnDate(assetID, day, domain).String(),
		Bookings: make([]*BookingView, 0, len(onDay)),
	}
	for _, b := range onDay {
		result.Bookings = append(result.Bookings, views[b.ID()])
	}
	return result, nil
}

func (q *availabilityQueriesImpl) Conflicts(ctx context.Context, assetID uuid.UUID, start, end time.Time) (*ConflictHintView, error) {
	proposed, err := booking.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := q.findAsset(ctx, assetID); err != nil {
		return nil, err
	}

	rows, err := q.bookings.ListByAsset(ctx, assetID, start, end)
	if err != nil {
		return nil, err
	}
	views, domain, err := indexViews(rows)
	if err != nil {
		return nil, err
	}

	conflicts := availability.Conflicts(assetID, proposed, domain)
	result := &ConflictHintView{
		AssetID:   assetID,
		Start:     start,
		End:       end,
		Conflicts: make([]*BookingView, 0, len(conflicts)),
	}
	for _, b := range conflicts {
		result.Conflicts = append(result.Conflicts, views[b.ID()])
	}
	return result, nil
}

func (q *availabilityQueriesImpl) FleetDay(ctx context.Context, day availability.Day) (*FleetDayView, error) {
	summaries, fleet, err := q.fleet(ctx, []availability.Day{day})
	if err != nil {
		return nil, err
	}
	return toFleetDayView(summaries[0], fleet, true), nil
}

func (q *availabilityQueriesImpl) FleetMonth(ctx context.Context, year int, month time.Month) (*FleetMonthView, error) {
	days, err := availability.DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}

	summaries, fleet, err := q.fleet(ctx, days)
	if err != nil {
		return nil, err
	}

	result := &FleetMonthView{
		Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Days:  make([]*FleetDayView, len(summaries)),
	}
	for i, s := range summaries {
		result.Days[i] = toFleetDayView(s, fleet, false)
	}
	return result, nil
}

func (q *availabilityQueriesImpl) fleet(ctx context.Context, days []availability.Day) ([]availability.DaySummary, []*AssetView, error) {
	fleet, err := q.assets.ListPool(ctx)
	if err != nil {
		return nil, nil, err
	}

	from, to := q.window(days[0], days[len(days)-1])
	bookings, err := q.bookings.ListOccupying(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, len(fleet))
	for i, a := range fleet {
		ids[i] = a.ID
	}
	return q.engine.AggregateMonth(ids, days, bookings), fleet, nil
}

func (q *availabilityQueriesImpl) assetBookings(ctx context.Context, assetID uuid.UUID, first, last availability.Day) (map[uuid.UUID]*BookingView, []*booking.Booking, error) {
	if _, err := q.findAsset(ctx, assetID); err != nil {
		return nil, nil, err
	}

	from, to := q.window(first, last)
	rows, err := q.bookings.ListByAsset(ctx, assetID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return indexViews(rows)
}

func (q *availabilityQueriesImpl) findAsset(ctx context.Context, assetID uuid.UUID) (*AssetView, error) {
	a, err := q.assets.FindByID(ctx, assetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, asset.ErrAssetNotFound)
		}
		return nil, err
	}
	return a, nil
}

// window is the half-open instant range covering first..last in the engine's zone.
func (q *availabilityQueriesImpl) window(first, last availability.Day) (time.Time, time.Time) {
	from, _ := first.Bounds(q.engine.Location())
	to, _ := last.AddDays(1).Bounds(q.engine.Location())
	return from, to
}

func indexViews(rows []*BookingView) (map[uuid.UUID]*BookingView, []*booking.Booking, error) {
	views := make(map[uuid.UUID]*BookingView, len(rows))
	domain := make([]*booking.Booking, 0, len(rows))
	for _, v := range rows {
		b, err := toDomain(v)
		if err != nil {
			return nil, nil, errs.Wrapf(err, "booking %s", v.ID)
		}
		views[v.ID] = v
		domain = append(domain, b)
	}
	return views, domain, nil
}

func toFleetDayView(s availability.DaySummary, fleet []*AssetView, withAssets bool) *FleetDayView {
	view := &FleetDayView{
		Date:         s.Day.String(),
		Status:       s.Bucket.String(),
		BookedCount:  s.BookedCount,
		PartialCount: s.PartialCount,
		FleetSize:    len(fleet),
	}
	if !withAssets {
		return view
	}

	view.Assets = make([]*FleetAssetStatusView, len(s.Assets))
	for i, a := range s.Assets {
		view.Assets[i] = &FleetAssetStatusView{
			AssetID:   a.AssetID,
			AssetName: fleet[i].Name,
			Status:    a.Status.String(),
		}
	}
	return view
}
