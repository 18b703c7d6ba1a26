package get_next_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ResourceService интерфейс сервиса ресурсов
type ResourceService interface {
	GetResolved(ctx context.Context, resourceID int64) (*domain.ResolvedResource, error)
}

// SlotsService интерфейс сервиса генерации слотов
type SlotsService interface {
	GetNextAvailableSlots(ctx context.Context, resource *domain.ResolvedResource, from time.Time, count int, onlyToday bool) ([]domain.Slot, error)
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
