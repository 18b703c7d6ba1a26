package resources

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	GetResourceType(ctx context.Context, id int64) (*domain.ResourceType, error)
	GetTimetable(ctx context.Context, id int64) (*domain.Timetable, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
