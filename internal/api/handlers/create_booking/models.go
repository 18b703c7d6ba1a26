package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID int64   `json:"resourceId"`
	Start      string  `json:"start"`         // RFC 3339, например "2026-06-08T10:00:00Z"
	End        *string `json:"end,omitempty"` // RFC 3339; по умолчанию start + длительность слота
	Notes      *string `json:"notes,omitempty"`
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

	ParticipationID     int64   `json:"participationId"`
	ParticipationStatus string  `json:"participationStatus"`
	ParticipationReason *string `json:"participationReason,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity middleware.Identity) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if r.End != nil {
		parsed, err := time.Parse(time.RFC3339, *r.End)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	return &createBooking.Request{
		ResourceID:  r.ResourceID,
		Start:       start,
		End:         end,
		Participant: identity.Ref(),
		Actor:       identity.Actor(),
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:           resp.BookingID,
		TenantID:            resp.TenantID,
		ResourceID:          resp.ResourceID,
		Start:               resp.Start.Format(time.RFC3339),
		End:                 resp.End.Format(time.RFC3339),
		Status:              resp.Status,
		IsGroup:             resp.IsGroup,
		ParticipationID:     resp.ParticipationID,
		ParticipationStatus: resp.ParticipationStatus,
		ParticipationReason: resp.ParticipationReason,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
