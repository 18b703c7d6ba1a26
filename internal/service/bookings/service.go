package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// Service сервис жизненного цикла бронирований: подтверждение, отмена, чтение
// Все мутации выполняются в сериализуемой транзакции с блокировкой строк
type Service struct {
	bookingRepo  BookingRepository
	resources    ResourceService
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resources ResourceService,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resources:    resources,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm подтверждает бронирование в статусе pending
// Ожидающие участия подтверждаются вместе с бронированием
// Любой другой исходный статус - недопустимый переход
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by actor=%s", bookingID, req.Actor)

	if !req.Actor.IsValid() {
		return nil, fmt.Errorf("%w: unknown actor", ErrInvalidInput)
	}

	var booking *domain.Booking
	var participations []*domain.Participation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.Status != domain.StatusPending {
			s.logger.Warn("Confirm: booking id=%d has status=%s, only pending can be confirmed",
				bookingID, booking.Status)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusConfirmed); err != nil {
			s.logger.Error("Confirm: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusConfirmed

		participations, err = s.bookingRepo.GetParticipations(txCtx, bookingID)
		if err != nil {
			s.logger.Error("Confirm: failed to get participations of booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		for _, p := range participations {
			if p.Status != domain.StatusPending {
				continue
			}
			if err := s.bookingRepo.UpdateParticipationStatus(txCtx, p.ID, domain.StatusConfirmed, nil); err != nil {
				s.logger.Error("Confirm: failed to update participation id=%d: %v", p.ID, err)
				return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
			}
			p.Status = domain.StatusConfirmed
		}

		return nil
	})
	if err != nil {
		return nil, s.mapTxError(err)
	}

	s.publishConfirmed(ctx, booking)

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return models.FromDomainBooking(booking, participations), nil
}

// Cancel отменяет бронирование или участие в нем
// Клиент группового бронирования отменяет только своё участие, агрегат
// закрывается когда не остаётся активных участий
// Администратор отменяет бронирование целиком вместе со всеми участиями
// Для клиента действует окно отмены из политики ресурса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%s participant=%d/%s",
		bookingID, req.Actor, req.Participant.ID, req.Participant.Kind)

	if !req.Actor.IsValid() {
		return nil, fmt.Errorf("%w: unknown actor", ErrInvalidInput)
	}

	var booking *domain.Booking
	var participations []*domain.Participation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			s.logger.Warn("Cancel: booking id=%d already terminal, status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		}

		if req.Actor == domain.ActorClient {
			if err := s.checkCancellationWindow(txCtx, booking); err != nil {
				return err
			}
		}

		participations, err = s.bookingRepo.GetParticipations(txCtx, bookingID)
		if err != nil {
			s.logger.Error("Cancel: failed to get participations of booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if booking.IsGroup && req.Actor == domain.ActorClient {
			return s.cancelOwnParticipation(txCtx, booking, participations, req)
		}
		return s.cancelWholeBooking(txCtx, booking, participations, req)
	})
	if err != nil {
		return nil, s.mapTxError(err)
	}

	if booking.IsTerminal() {
		s.publishCancelled(ctx, booking, req.Actor)
	}

	s.logger.Info("Cancel: booking id=%d now has status=%s", bookingID, booking.Status)
	return models.FromDomainBooking(booking, participations), nil
}

// GetByID получает бронирование с участиями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	participations, err := s.bookingRepo.GetParticipations(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get participations of booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, participations), nil
}

// GetParticipantBookings получает историю бронирований участника
// Опционально фильтрует по статусу бронирования
func (s *Service) GetParticipantBookings(ctx context.Context, req *models.GetParticipantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetParticipantBookings: fetching bookings for participant=%d/%s, status=%v",
		req.Participant.ID, req.Participant.Kind, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetParticipantBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByParticipant(ctx, req.Participant, domainStatus)
	if err != nil {
		s.logger.Error("GetParticipantBookings: repository error for participant=%d/%s: %v",
			req.Participant.ID, req.Participant.Kind, err)
		return nil, fmt.Errorf("%w: GetParticipantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetParticipantBookings: fetched %d bookings for participant=%d/%s",
		len(bookings), req.Participant.ID, req.Participant.Kind)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

func (s *Service) getForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID, true)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkCancellationWindow проверяет окно отмены из политики ресурса
// nil в политике - отмена без ограничений, 0 - запрещена, N - дедлайн за N минут
func (s *Service) checkCancellationWindow(ctx context.Context, booking *domain.Booking) error {
	resource, err := s.resources.GetResolved(ctx, booking.ResourceID)
	if err != nil {
		if errors.Is(err, resourcesService.ErrResourceNotFound) {
			s.logger.Warn("checkCancellationWindow: resource id=%d not found", booking.ResourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkCancellationWindow: failed to resolve resource id=%d: %v", booking.ResourceID, err)
		return fmt.Errorf("%w: checkCancellationWindow - resource error: %v", ErrInternal, err)
	}

	if !resource.Policy.CanCancel(booking.Start, s.timeProvider.Now()) {
		s.logger.Warn("checkCancellationWindow: window expired for booking id=%d", booking.ID)
		return ErrCancellationWindowExpired
	}
	return nil
}

// cancelOwnParticipation отменяет участие клиента в групповом бронировании
// Агрегат переводится в отменённые, когда активных участий не остаётся
func (s *Service) cancelOwnParticipation(ctx context.Context, booking *domain.Booking, participations []*domain.Participation, req *models.CancelBookingRequest) error {
	participation := domain.FindParticipation(participations, req.Participant)
	if participation == nil || !participation.IsActive() {
		s.logger.Warn("Cancel: participant=%d/%s has no active participation in booking id=%d",
			req.Participant.ID, req.Participant.Kind, booking.ID)
		return ErrParticipationNotFound
	}

	cancelStatus := req.Actor.CancellationStatus()
	if err := s.bookingRepo.UpdateParticipationStatus(ctx, participation.ID, cancelStatus, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to update participation id=%d: %v", participation.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	participation.Status = cancelStatus
	participation.Reason = req.Reason

	if domain.CountActiveParticipations(participations) > 0 {
		return nil
	}

	// последний участник вышел, слот освобождается
	if err := s.bookingRepo.Cancel(ctx, booking.ID, cancelStatus, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	booking.Status = cancelStatus
	booking.Reason = req.Reason
	return nil
}

// cancelWholeBooking отменяет бронирование целиком вместе с активными участиями
func (s *Service) cancelWholeBooking(ctx context.Context, booking *domain.Booking, participations []*domain.Participation, req *models.CancelBookingRequest) error {
	cancelStatus := req.Actor.CancellationStatus()

	if err := s.bookingRepo.Cancel(ctx, booking.ID, cancelStatus, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	booking.Status = cancelStatus
	booking.Reason = req.Reason

	for _, p := range participations {
		if !p.IsActive() {
			continue
		}
		if err := s.bookingRepo.UpdateParticipationStatus(ctx, p.ID, cancelStatus, req.Reason); err != nil {
			s.logger.Error("Cancel: failed to update participation id=%d: %v", p.ID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		p.Status = cancelStatus
		p.Reason = req.Reason
	}

	return nil
}

func (s *Service) mapTxError(err error) error {
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func (s *Service) publishConfirmed(ctx context.Context, booking *domain.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.BookingConfirmed(ctx, booking); err != nil {
		s.logger.Warn("publishConfirmed: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}

func (s *Service) publishCancelled(ctx context.Context, booking *domain.Booking, actor domain.Actor) {
	if s.events == nil {
		return
	}
	if err := s.events.BookingCancelled(ctx, booking, actor); err != nil {
		s.logger.Warn("publishCancelled: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
