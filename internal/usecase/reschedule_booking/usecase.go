package reschedule_booking

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

// UseCase use case для переноса бронирования на новый интервал
// Клиент переносит только собственные одиночные бронирования в пределах окна
// переноса; администратор переносит любые без проверок доступности
type UseCase struct {
	bookingRepo  BookingRepository
	resources    ResourceService
	availability AvailabilityService
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
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resources:    resources,
		availability: availability,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, newStart=%s, actor=%s",
		req.BookingID, req.NewStart.Format(time.RFC3339), req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var booking *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.getForUpdate(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			uc.logger.Warn("RescheduleBooking: booking id=%d is terminal, status=%s", booking.ID, booking.Status)
			return ErrInvalidTransition
		}

		resource, err := uc.resources.GetResolved(txCtx, booking.ResourceID)
		if err != nil {
			if errors.Is(err, resourcesService.ErrResourceNotFound) {
				uc.logger.Warn("RescheduleBooking: resource id=%d not found", booking.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to resolve resource id=%d: %v", booking.ResourceID, err)
			return fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
		}

		// без явного нового конца длительность интервала сохраняется
		newEnd := req.NewStart.Add(booking.End.Sub(booking.Start))
		if req.NewEnd != nil {
			newEnd = *req.NewEnd
		}

		if req.Actor != domain.ActorAdmin {
			if err := uc.checkClientReschedule(txCtx, booking, resource, req, now); err != nil {
				return err
			}

			available, err := uc.availability.IsTimeRangeAvailable(txCtx, resource, req.NewStart, newEnd, &booking.ID)
			if err != nil {
				uc.logger.Error("RescheduleBooking: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
			if !available {
				uc.logger.Warn("RescheduleBooking: slot [%s, %s) of resource=%d not available",
					req.NewStart.Format(time.RFC3339), newEnd.Format(time.RFC3339), booking.ResourceID)
				return ErrSlotNotAvailable
			}
		}

		if err := uc.bookingRepo.UpdateWindow(txCtx, booking.ID, req.NewStart, newEnd); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update window of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update window: %v", ErrInternal, err)
		}

		booking.Start = req.NewStart
		booking.End = newEnd
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleBooking: serialization failure for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.publish(ctx, booking, req.Actor)

	uc.logger.Info("RescheduleBooking: booking id=%d moved to [%s, %s)",
		booking.ID, booking.Start.Format(time.RFC3339), booking.End.Format(time.RFC3339))
	return buildResponse(booking), nil
}

// checkClientReschedule проверяет клиентские ограничения переноса:
// групповые бронирования, владение бронированием, окно переноса и
// минимальный интервал предварительной записи для нового начала
func (uc *UseCase) checkClientReschedule(ctx context.Context, booking *domain.Booking, resource *domain.ResolvedResource, req *Request, now time.Time) error {
	if booking.IsGroup {
		uc.logger.Warn("RescheduleBooking: client attempted to reschedule group booking id=%d", booking.ID)
		return ErrGroupRescheduleForbidden
	}

	participations, err := uc.bookingRepo.GetParticipations(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get participations of booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to get participations: %v", ErrInternal, err)
	}

	participation := domain.FindParticipation(participations, req.Participant)
	if participation == nil || !participation.IsActive() {
		uc.logger.Warn("RescheduleBooking: participant=%d/%s does not hold booking id=%d",
			req.Participant.ID, req.Participant.Kind, booking.ID)
		return ErrForbidden
	}

	if !resource.Policy.CanReschedule(booking.Start, now) {
		uc.logger.Warn("RescheduleBooking: window expired for booking id=%d", booking.ID)
		return ErrRescheduleWindowExpired
	}

	if !req.NewStart.After(now) {
		return fmt.Errorf("%w: new start must be in the future", ErrInvalidInput)
	}

	if resource.Policy.MinAdvanceMinutes > 0 {
		minStart := now.Add(time.Duration(resource.Policy.MinAdvanceMinutes) * time.Minute)
		if req.NewStart.Before(minStart) {
			return fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrTooLateToBook, resource.Policy.MinAdvanceMinutes)
		}
	}

	return nil
}

func (uc *UseCase) getForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID, true)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}
	if req.NewEnd != nil && !req.NewEnd.After(req.NewStart) {
		return fmt.Errorf("%w: newEnd must be after newStart", ErrInvalidInput)
	}
	if !req.Actor.IsValid() {
		return fmt.Errorf("%w: unknown actor", ErrInvalidInput)
	}
	if req.Actor == domain.ActorClient && req.Participant.ID <= 0 {
		return fmt.Errorf("%w: participant id must be positive", ErrInvalidInput)
	}
	return nil
}

func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking, actor domain.Actor) {
	if uc.events == nil {
		return
	}
	if err := uc.events.BookingRescheduled(ctx, booking, actor); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
