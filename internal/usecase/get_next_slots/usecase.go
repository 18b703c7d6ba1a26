package get_next_slots

import (
	"context"
	"errors"
	"fmt"

	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	slotsService "github.com/m04kA/SMC-ScheduleService/internal/service/slots"
)

// UseCase use case для получения ближайших свободных слотов ресурса
type UseCase struct {
	resources    ResourceService
	slots        SlotsService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resources ResourceService, slots SlotsService, logger Logger) *UseCase {
	return &UseCase{
		resources:    resources,
		slots:        slots,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения ближайших слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	if req.Count < 0 {
		return nil, fmt.Errorf("%w: count cannot be negative", ErrInvalidInput)
	}

	count := req.Count
	if count == 0 {
		count = DefaultCount
	}

	from := req.From
	if from.IsZero() {
		from = uc.timeProvider.Now()
	}

	resource, err := uc.resources.GetResolved(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourcesService.ErrResourceNotFound) {
			uc.logger.Warn("GetNextSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		if errors.Is(err, resourcesService.ErrInvalidPolicy) {
			uc.logger.Error("GetNextSlots: invalid policy for resource id=%d: %v", req.ResourceID, err)
			return nil, err
		}
		uc.logger.Error("GetNextSlots: failed to resolve resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
	}

	slots, err := uc.slots.GetNextAvailableSlots(ctx, resource, from, count, req.OnlyToday)
	if err != nil {
		if errors.Is(err, slotsService.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetNextSlots: failed to scan slots for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to scan slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetNextSlots: found %d slots for resource=%d, only_today=%t",
		len(slots), req.ResourceID, req.OnlyToday)

	return &Response{
		ResourceID:      resource.Resource.ID,
		TenantID:        resource.Resource.TenantID,
		From:            from,
		DurationMinutes: resource.Policy.SlotDurationMinutes,
		Slots:           slots,
	}, nil
}
