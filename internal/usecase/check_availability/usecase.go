package check_availability

import (
	"context"
	"errors"
	"fmt"

	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
)

// UseCase use case для проверки доступности произвольного интервала
type UseCase struct {
	resources    ResourceService
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resources ResourceService, availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		resources:    resources,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	resource, err := uc.resources.GetResolved(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourcesService.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		if errors.Is(err, resourcesService.ErrInvalidPolicy) {
			uc.logger.Error("CheckAvailability: invalid policy for resource id=%d: %v", req.ResourceID, err)
			return nil, err
		}
		uc.logger.Error("CheckAvailability: failed to resolve resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
	}

	available, err := uc.availability.IsTimeRangeAvailable(ctx, resource, req.Start, req.End, nil)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidTimeRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CheckAvailability: failed to check resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: resource=%d, available=%t", req.ResourceID, available)

	return &Response{
		ResourceID: req.ResourceID,
		Start:      req.Start,
		End:        req.End,
		Available:  available,
	}, nil
}
