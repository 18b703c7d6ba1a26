package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
)

// UseCase use case для получения свободных слотов ресурса на дату
type UseCase struct {
	resources ResourceService
	slots     SlotsService
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resources ResourceService, slots SlotsService, logger Logger) *UseCase {
	return &UseCase{
		resources: resources,
		slots:     slots,
		logger:    logger,
	}
}

// Execute выполняет use case получения слотов на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resource, err := uc.resources.GetResolved(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourcesService.ErrResourceNotFound) {
			uc.logger.Warn("GetSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		if errors.Is(err, resourcesService.ErrInvalidPolicy) {
			uc.logger.Error("GetSlots: invalid policy for resource id=%d: %v", req.ResourceID, err)
			return nil, err
		}
		uc.logger.Error("GetSlots: failed to resolve resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
	}

	slots, err := uc.slots.GenerateSlotsForDate(ctx, resource, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to generate slots for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetSlots: generated %d slots for resource=%d, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID:      resource.Resource.ID,
		TenantID:        resource.Resource.TenantID,
		Date:            req.Date,
		Strategy:        resource.Policy.Strategy,
		DurationMinutes: resource.Policy.SlotDurationMinutes,
		Slots:           slots,
	}, nil
}
