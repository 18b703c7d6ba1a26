package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.End != nil && !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if req.Participant.ID <= 0 {
		return fmt.Errorf("%w: participant id must be positive", ErrInvalidInput)
	}

	if req.Participant.Kind == "" {
		return fmt.Errorf("%w: participant kind is required", ErrInvalidInput)
	}

	if !req.Actor.IsValid() {
		return fmt.Errorf("%w: unknown actor", ErrInvalidInput)
	}

	return nil
}

// validateStartTime проверяет, что начало в будущем и соблюден минимальный
// интервал предварительной записи. Администратор эти проверки обходит
func validateStartTime(start, now time.Time, policy *domain.Policy) error {
	if !start.After(now) {
		return fmt.Errorf("%w: start must be in the future", ErrInvalidInput)
	}

	if policy.MinAdvanceMinutes > 0 {
		minStart := now.Add(time.Duration(policy.MinAdvanceMinutes) * time.Minute)
		if start.Before(minStart) {
			return fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrTooLateToBook, policy.MinAdvanceMinutes)
		}
	}

	return nil
}

// initialStatus вычисляет статус нового бронирования или участия
// Подтверждение требуется только для клиентских заявок
func initialStatus(policy *domain.Policy, actor domain.Actor) domain.BookingStatus {
	if policy.RequiresConfirmation && actor != domain.ActorAdmin {
		return domain.StatusPending
	}
	return domain.StatusConfirmed
}
