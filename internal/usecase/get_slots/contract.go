package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ResourceService интерфейс сервиса ресурсов
type ResourceService interface {
	// GetResolved возвращает ресурс с эффективной политикой и расписанием
	GetResolved(ctx context.Context, resourceID int64) (*domain.ResolvedResource, error)
}

// SlotsService интерфейс сервиса генерации слотов
type SlotsService interface {
	GenerateSlotsForDate(ctx context.Context, resource *domain.ResolvedResource, date time.Time) ([]domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
