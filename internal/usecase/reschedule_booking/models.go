package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID   int64                 // ID бронирования
	NewStart    time.Time             // Новое начало интервала
	NewEnd      *time.Time            // Новый конец; nil - длительность сохраняется
	Participant domain.ParticipantRef // Кто переносит
	Actor       domain.Actor          // client или admin
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	BookingID  int64     // ID бронирования
	TenantID   int64     // ID тенанта
	ResourceID int64     // ID ресурса
	Start      time.Time // Новое начало интервала
	End        time.Time // Новый конец интервала (не включается)
	Status     string    // Статус не меняется при переносе
	IsGroup    bool      // Групповое бронирование
}

func buildResponse(booking *domain.Booking) *Response {
	return &Response{
		BookingID:  booking.ID,
		TenantID:   booking.TenantID,
		ResourceID: booking.ResourceID,
		Start:      booking.Start,
		End:        booking.End,
		Status:     string(booking.Status),
		IsGroup:    booking.IsGroup,
	}
}
