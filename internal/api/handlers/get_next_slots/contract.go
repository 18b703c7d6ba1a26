package get_next_slots

import (
	"context"

	getNextSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_next_slots"
)

type GetNextSlotsUseCase interface {
	Execute(ctx context.Context, req *getNextSlots.Request) (*getNextSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
