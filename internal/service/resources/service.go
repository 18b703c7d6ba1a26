package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/resource"
)

// Service сервис разрешения эффективной конфигурации ресурса
// Собирает ресурс, его тип, итоговую политику и расписание в один объект
type Service struct {
	repo   ResourceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(repo ResourceRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetResolved возвращает ресурс с эффективной политикой и расписанием
// Политика: override ресурса поверх default_policy типа (глубокое слияние)
// Расписание: расписание ресурса, иначе расписание типа, иначе nil
func (s *Service) GetResolved(ctx context.Context, resourceID int64) (*domain.ResolvedResource, error) {
	resource, err := s.repo.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResolved: resource id=%d not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResolved: failed to get resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetResolved - repository error: %v", ErrInternal, err)
	}

	resourceType, err := s.repo.GetResourceType(ctx, resource.ResourceTypeID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceTypeNotFound) {
			// ресурс без типа конфигурируется только собственным override
			s.logger.Warn("GetResolved: resource type id=%d of resource id=%d not found",
				resource.ResourceTypeID, resourceID)
			resourceType = nil
		} else {
			s.logger.Error("GetResolved: failed to get resource type id=%d: %v", resource.ResourceTypeID, err)
			return nil, fmt.Errorf("%w: GetResolved - repository error: %v", ErrInternal, err)
		}
	}

	policy, err := domain.NewPolicy(domain.MergedPolicyMap(resourceType, resource))
	if err != nil {
		s.logger.Error("GetResolved: invalid policy for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: resource id=%d: %v", ErrInvalidPolicy, resourceID, err)
	}

	timetable, err := s.effectiveTimetable(ctx, resource, resourceType)
	if err != nil {
		return nil, err
	}

	return &domain.ResolvedResource{
		Resource:  resource,
		Policy:    policy,
		Timetable: timetable,
	}, nil
}

// effectiveTimetable загружает расписание ресурса, при его отсутствии - расписание типа
func (s *Service) effectiveTimetable(ctx context.Context, resource *domain.Resource, resourceType *domain.ResourceType) (*domain.Timetable, error) {
	timetableID := resource.TimetableID
	if timetableID == nil && resourceType != nil {
		timetableID = resourceType.TimetableID
	}
	if timetableID == nil {
		return nil, nil
	}

	timetable, err := s.repo.GetTimetable(ctx, *timetableID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrTimetableNotFound) {
			s.logger.Warn("effectiveTimetable: timetable id=%d not found, resource id=%d treated as closed",
				*timetableID, resource.ID)
			return nil, nil
		}
		s.logger.Error("effectiveTimetable: failed to get timetable id=%d: %v", *timetableID, err)
		return nil, fmt.Errorf("%w: effectiveTimetable - repository error: %v", ErrInternal, err)
	}

	return timetable, nil
}
