package cancel_booking

import (
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(identity middleware.Identity) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Actor:       identity.Actor(),
		Participant: identity.Ref(),
		Reason:      r.Reason,
	}
}
