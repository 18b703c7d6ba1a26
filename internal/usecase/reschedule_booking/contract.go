package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error)
	GetParticipations(ctx context.Context, bookingID int64) ([]*domain.Participation, error)
	UpdateWindow(ctx context.Context, id int64, start, end time.Time) error
}

// ResourceService интерфейс сервиса разрешения конфигурации ресурса
type ResourceService interface {
	GetResolved(ctx context.Context, resourceID int64) (*domain.ResolvedResource, error)
}

// AvailabilityService интерфейс сервиса проверки доступности
type AvailabilityService interface {
	IsTimeRangeAvailable(ctx context.Context, resource *domain.ResolvedResource, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// EventPublisher интерфейс отправки событий жизненного цикла во внешний сток
type EventPublisher interface {
	BookingRescheduled(ctx context.Context, booking *domain.Booking, actor domain.Actor) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
