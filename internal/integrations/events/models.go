package events

import "time"

// Типы событий жизненного цикла бронирования
const (
	TypeBookingCreated      = "booking.created"
	TypeParticipantJoined   = "booking.participant_joined"
	TypeParticipantRejected = "booking.participant_rejected"
	TypeBookingConfirmed    = "booking.confirmed"
	TypeBookingCancelled    = "booking.cancelled"
	TypeBookingRescheduled  = "booking.rescheduled"
)

// Event событие жизненного цикла бронирования
type Event struct {
	ID         string    `json:"id"` // UUID события
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	TenantID   int64     `json:"tenant_id"`
	BookingID  int64     `json:"booking_id"`
	ResourceID int64     `json:"resource_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`

	Actor           string `json:"actor,omitempty"`
	ParticipantID   int64  `json:"participant_id,omitempty"`
	ParticipantKind string `json:"participant_kind,omitempty"`
}

// ErrorResponse модель ошибки от стока событий
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
