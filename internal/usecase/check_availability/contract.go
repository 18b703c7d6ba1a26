package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ResourceService интерфейс сервиса ресурсов
type ResourceService interface {
	GetResolved(ctx context.Context, resourceID int64) (*domain.ResolvedResource, error)
}

// AvailabilityService интерфейс сервиса проверки доступности
type AvailabilityService interface {
	// IsTimeRangeAvailable проверяет расписание и занятость интервала [start, end)
	IsTimeRangeAvailable(ctx context.Context, resource *domain.ResolvedResource, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
