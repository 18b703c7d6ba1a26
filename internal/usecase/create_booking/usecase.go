package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// UseCase use case для создания бронирования
// Точное совпадение интервала с живым групповым бронированием превращает
// создание в присоединение к группе
type UseCase struct {
	bookingRepo  BookingRepository
	resources    ResourceService
	availability AvailabilityService
	slots        SlotsService
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resources ResourceService,
	availability AvailabilityService,
	slots SlotsService,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resources:    resources,
		availability: availability,
		slots:        slots,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeJoined
	outcomeRejected
)

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%d, start=%s, participant=%d/%s, actor=%s",
		req.ResourceID, req.Start.Format(time.RFC3339), req.Participant.ID, req.Participant.Kind, req.Actor)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var booking *domain.Booking
	var participation *domain.Participation
	var result outcome

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Разрешаем эффективную политику и расписание ресурса
		resource, err := uc.resources.GetResolved(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourcesService.ErrResourceNotFound) {
				uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
				return ErrResourceNotFound
			}
			if errors.Is(err, resourcesService.ErrInvalidPolicy) {
				uc.logger.Warn("CreateBooking: resource id=%d has invalid policy: %v", req.ResourceID, err)
				return err
			}
			uc.logger.Error("CreateBooking: failed to resolve resource id=%d: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
		}

		end := req.Start.Add(time.Duration(resource.Policy.SlotDurationMinutes) * time.Minute)
		if req.End != nil {
			end = *req.End
		}

		// 3.2. Проверки времени для клиентских заявок
		if req.Actor != domain.ActorAdmin {
			if err := validateStartTime(req.Start, now, resource.Policy); err != nil {
				uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
				return err
			}
		}

		// 3.3. Живое бронирование ровно на этом интервале превращает
		// создание в присоединение (FOR UPDATE внутри транзакции)
		existing, err := uc.bookingRepo.FindActiveByWindow(txCtx, req.ResourceID, req.Start, end)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to find booking by window: %v", err)
			return fmt.Errorf("%w: failed to find booking by window: %v", ErrInternal, err)
		}

		if existing != nil && existing.IsGroup {
			booking = existing
			participation, result, err = uc.joinGroup(txCtx, resource, existing, req)
			return err
		}

		if existing != nil && req.Actor != domain.ActorAdmin {
			uc.logger.Warn("CreateBooking: slot [%s, %s) of resource=%d already taken",
				req.Start.Format(time.RFC3339), end.Format(time.RFC3339), req.ResourceID)
			return ErrSlotNotAvailable
		}

		// 3.4. На ресурсе с жесткой стратегией клиентская заявка должна
		// попадать в сетку слотов
		if req.Actor != domain.ActorAdmin && resource.Policy.IsFixedStrategy() {
			aligned, err := uc.slots.AlignsWithSlotGrid(resource, req.Start)
			if err != nil {
				uc.logger.Error("CreateBooking: slot grid check failed: %v", err)
				return fmt.Errorf("%w: slot grid check failed: %v", ErrInternal, err)
			}
			if !aligned {
				uc.logger.Warn("CreateBooking: start=%s of resource=%d is off the slot grid",
					req.Start.Format(time.RFC3339), req.ResourceID)
				return ErrSlotNotAvailable
			}
		}

		// 3.5. Проверка расписания и пересечений; администратор её обходит
		// и может создать сосуществующее бронирование
		if req.Actor != domain.ActorAdmin {
			available, err := uc.availability.IsTimeRangeAvailable(txCtx, resource, req.Start, end, nil)
			if err != nil {
				uc.logger.Error("CreateBooking: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
			if !available {
				uc.logger.Warn("CreateBooking: slot [%s, %s) of resource=%d not available",
					req.Start.Format(time.RFC3339), end.Format(time.RFC3339), req.ResourceID)
				return ErrSlotNotAvailable
			}
		}

		booking, participation, err = uc.createBooking(txCtx, resource, req, end)
		result = outcomeCreated
		return err
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure for resource=%d: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.publish(ctx, result, booking, participation)

	uc.logger.Info("CreateBooking: booking id=%d participation id=%d status=%s",
		booking.ID, participation.ID, participation.Status)
	return buildResponse(booking, participation), nil
}

// createBooking создает новое бронирование с зеркальным участием заявителя
func (uc *UseCase) createBooking(ctx context.Context, resource *domain.ResolvedResource, req *Request, end time.Time) (*domain.Booking, *domain.Participation, error) {
	status := initialStatus(resource.Policy, req.Actor)

	booking := &domain.Booking{
		TenantID:   resource.Resource.TenantID,
		ResourceID: req.ResourceID,
		Start:      req.Start,
		End:        end,
		Status:     status,
		IsGroup:    resource.Policy.IsGroupResource(),
		Reason:     req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	participation, err := uc.bookingRepo.CreateParticipation(ctx, &domain.Participation{
		BookingID:       created.ID,
		ParticipantID:   req.Participant.ID,
		ParticipantKind: req.Participant.Kind,
		Status:          status,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create participation: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to create participation: %v", ErrInternal, err)
	}

	return created, participation, nil
}

// joinGroup присоединяет участника к существующему групповому бронированию
// Переполнение группы фиксируется отклонённым участием, а не ошибкой:
// заявка и причина отказа сохраняются в истории
func (uc *UseCase) joinGroup(ctx context.Context, resource *domain.ResolvedResource, booking *domain.Booking, req *Request) (*domain.Participation, outcome, error) {
	participations, err := uc.bookingRepo.GetParticipations(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get participations of booking id=%d: %v", booking.ID, err)
		return nil, 0, fmt.Errorf("%w: failed to get participations: %v", ErrInternal, err)
	}

	if existing := domain.FindParticipation(participations, req.Participant); existing != nil && existing.IsActive() {
		uc.logger.Warn("CreateBooking: participant=%d/%s already holds a seat in booking id=%d",
			req.Participant.ID, req.Participant.Kind, booking.ID)
		return nil, 0, ErrAlreadyParticipating
	}

	activeCount := domain.CountActiveParticipations(participations)
	if resource.Policy.MaxParticipants != nil && activeCount >= *resource.Policy.MaxParticipants {
		reason := fmt.Sprintf("capacity exceeded: %d/%d seats taken", activeCount, *resource.Policy.MaxParticipants)
		rejected, err := uc.bookingRepo.CreateParticipation(ctx, &domain.Participation{
			BookingID:       booking.ID,
			ParticipantID:   req.Participant.ID,
			ParticipantKind: req.Participant.Kind,
			Status:          domain.StatusRejected,
			Reason:          &reason,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create rejected participation: %v", err)
			return nil, 0, fmt.Errorf("%w: failed to create participation: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: booking id=%d full, participant=%d/%s rejected",
			booking.ID, req.Participant.ID, req.Participant.Kind)
		return rejected, outcomeRejected, nil
	}

	// Статус участия зеркалит бронирование: присоединение к уже подтверждённой
	// группе не требует повторного подтверждения. Администратор подтверждён всегда
	status := booking.Status
	if req.Actor == domain.ActorAdmin {
		status = domain.StatusConfirmed
	}

	participation, err := uc.bookingRepo.CreateParticipation(ctx, &domain.Participation{
		BookingID:       booking.ID,
		ParticipantID:   req.Participant.ID,
		ParticipantKind: req.Participant.Kind,
		Status:          status,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create participation: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to create participation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: participant=%d/%s joined booking id=%d (%d/%v seats)",
		req.Participant.ID, req.Participant.Kind, booking.ID, activeCount+1, resource.Policy.MaxParticipants)
	return participation, outcomeJoined, nil
}

func (uc *UseCase) publish(ctx context.Context, result outcome, booking *domain.Booking, participation *domain.Participation) {
	if uc.events == nil {
		return
	}

	var err error
	switch result {
	case outcomeCreated:
		err = uc.events.BookingCreated(ctx, booking, participation)
	case outcomeJoined:
		err = uc.events.ParticipantJoined(ctx, booking, participation)
	case outcomeRejected:
		err = uc.events.ParticipantRejected(ctx, booking, participation)
	}
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
