package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID  int64                 // ID ресурса
	Start       time.Time             // Начало слота
	End         *time.Time            // Конец слота; nil - начало + длительность из политики
	Participant domain.ParticipantRef // Кто бронирует
	Actor       domain.Actor          // client или admin
	Notes       *string               // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием или участием
// Для группового ресурса бронирование может быть существующим агрегатом,
// к которому добавилось участие
type Response struct {
	BookingID  int64     // ID бронирования
	TenantID   int64     // ID тенанта
	ResourceID int64     // ID ресурса
	Start      time.Time // Начало интервала
	End        time.Time // Конец интервала (не включается)
	Status     string    // Статус бронирования
	IsGroup    bool      // Групповое бронирование

	ParticipationID     int64   // ID участия заявителя
	ParticipationStatus string  // Статус участия: rejected при переполнении группы
	ParticipationReason *string // Причина отклонения участия

	CreatedAt time.Time // Время создания бронирования
	UpdatedAt time.Time // Время обновления бронирования
}

func buildResponse(booking *domain.Booking, participation *domain.Participation) *Response {
	return &Response{
		BookingID:           booking.ID,
		TenantID:            booking.TenantID,
		ResourceID:          booking.ResourceID,
		Start:               booking.Start,
		End:                 booking.End,
		Status:              string(booking.Status),
		IsGroup:             booking.IsGroup,
		ParticipationID:     participation.ID,
		ParticipationStatus: string(participation.Status),
		ParticipationReason: participation.Reason,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}
}
