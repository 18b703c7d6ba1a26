package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ConfirmBookingRequest запрос на подтверждение бронирования
type ConfirmBookingRequest struct {
	Actor domain.Actor `json:"actor"`
}

// CancelBookingRequest запрос на отмену бронирования
// Для группового ресурса клиент отменяет только своё участие,
// администратор - бронирование целиком
type CancelBookingRequest struct {
	Actor       domain.Actor          `json:"actor"`
	Participant domain.ParticipantRef `json:"participant"`
	Reason      *string               `json:"reason,omitempty"`
}

// GetParticipantBookingsRequest запрос истории бронирований участника
type GetParticipantBookingsRequest struct {
	Participant domain.ParticipantRef `json:"participant"`
	Status      *string               `json:"status,omitempty"`
}

// Response модели

// ParticipationResponse участие в бронировании
type ParticipationResponse struct {
	ID              int64   `json:"id"`
	ParticipantID   int64   `json:"participantId"`
	ParticipantKind string  `json:"participantKind"`
	Status          string  `json:"status"`
	Reason          *string `json:"reason,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantId"`
	ResourceID int64     `json:"resourceId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	IsGroup    bool      `json:"isGroup"`
	Reason     *string   `json:"reason,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Participants []ParticipationResponse `json:"participants,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, participations []*domain.Participation) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		TenantID:   b.TenantID,
		ResourceID: b.ResourceID,
		Start:      b.Start,
		End:        b.End,
		Status:     string(b.Status),
		IsGroup:    b.IsGroup,
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	if len(participations) > 0 {
		resp.Participants = make([]ParticipationResponse, 0, len(participations))
		for _, p := range participations {
			resp.Participants = append(resp.Participants, FromDomainParticipation(p))
		}
	}

	return resp
}

// FromDomainParticipation конвертирует участие в DTO
func FromDomainParticipation(p *domain.Participation) ParticipationResponse {
	return ParticipationResponse{
		ID:              p.ID,
		ParticipantID:   p.ParticipantID,
		ParticipantKind: p.ParticipantKind,
		Status:          string(p.Status),
		Reason:          p.Reason,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
// Участия в списочном ответе не раскрываются
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, nil); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
