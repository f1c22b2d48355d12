package commands

import (
	"encoding/json"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/domain/lifecycle"

	"github.com/google/uuid"
)

const NotificationKindBookingEvent = "booking_event"

// Outbox topics, also used as AMQP routing keys.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingActivated = "booking.activated"
	TopicBookingCanceled  = "booking.canceled"
	TopicBookingReturned  = "booking.returned"
)

var topicByEvent = map[booking.Event]string{
	booking.EventCreate:   TopicBookingCreated,
	booking.EventActivate: TopicBookingActivated,
	booking.EventCancel:   TopicBookingCanceled,
	booking.EventReturn:   TopicBookingReturned,
}

// BookingEventPayload is the JSON body published for every lifecycle step.
type BookingEventPayload struct {
	Type          string    `json:"type"`
	BookingID     uuid.UUID `json:"bookingId"`
	AssetID       uuid.UUID `json:"assetId"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	From          *string   `json:"from,omitempty"`
	To            string    `json:"to"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	OccurredAt    time.Time `json:"occurredAt"`
	ReturnSkipped bool      `json:"returnSkipped,omitempty"`
	Condition     string    `json:"condition,omitempty"`
}

func NewBookingEventPayload(res *lifecycle.Result) (string, []byte, error) {
	b := res.Booking
	tr := res.Transition
	topic := topicByEvent[tr.Event]

	payload := BookingEventPayload{
		Type:          topic,
		BookingID:     b.ID(),
		AssetID:       b.AssetID(),
		EmployeeID:    b.EmployeeID(),
		To:            tr.To.String(),
		StartDate:     b.Period().Start(),
		EndDate:       b.Period().End(),
		OccurredAt:    tr.OccurredAt,
		ReturnSkipped: res.ReturnSkipped,
	}
	if tr.From != nil {
		from := tr.From.String()
		payload.From = &from
	}
	if ri := b.ReturnInfo(); ri != nil && tr.Event == booking.EventReturn {
		payload.Condition = ri.Condition.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}
	return topic, body, nil
}
