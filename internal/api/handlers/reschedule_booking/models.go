package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStart string  `json:"newStart"`         // RFC 3339
	NewEnd   *string `json:"newEnd,omitempty"` // RFC 3339; по умолчанию длительность сохраняется
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID  int64  `json:"bookingId"`
	TenantID   int64  `json:"tenantId"`
	ResourceID int64  `json:"resourceId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
	IsGroup    bool   `json:"isGroup"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, identity middleware.Identity) (*rescheduleBooking.Request, error) {
	newStart, err := time.Parse(time.RFC3339, r.NewStart)
	if err != nil {
		return nil, err
	}

	var newEnd *time.Time
	if r.NewEnd != nil {
		parsed, err := time.Parse(time.RFC3339, *r.NewEnd)
		if err != nil {
			return nil, err
		}
		newEnd = &parsed
	}

	return &rescheduleBooking.Request{
		BookingID:   bookingID,
		NewStart:    newStart,
		NewEnd:      newEnd,
		Participant: identity.Ref(),
		Actor:       identity.Actor(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:  resp.BookingID,
		TenantID:   resp.TenantID,
		ResourceID: resp.ResourceID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
		Status:     resp.Status,
		IsGroup:    resp.IsGroup,
	}
}
