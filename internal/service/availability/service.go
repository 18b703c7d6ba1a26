package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Service сервис проверки доступности интервалов времени
// Все интервалы полуоткрытые [start, end): касание границ конфликтом не считается
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// IsRangeAvailable проверяет отсутствие активных бронирований, пересекающих [start, end)
// excludeBookingID исключает бронирование из проверки (перенос самого себя)
func (s *Service) IsRangeAvailable(ctx context.Context, resourceID int64, start, end time.Time, excludeBookingID *int64) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidTimeRange
	}

	overlapping, err := s.bookingRepo.GetActiveOverlapping(ctx, resourceID, start, end, excludeBookingID)
	if err != nil {
		s.logger.Error("IsRangeAvailable: failed to get overlapping bookings for resource=%d: %v", resourceID, err)
		return false, fmt.Errorf("%w: IsRangeAvailable - repository error: %v", ErrInternal, err)
	}

	return len(overlapping) == 0, nil
}

// FitsSchedule проверяет, что интервал [start, end) лежит внутри рабочих часов
// дня начала и не пересекает ни один перерыв
// Ресурс без расписания закрыт всегда
func (s *Service) FitsSchedule(resource *domain.ResolvedResource, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidTimeRange
	}

	day := resource.ResolveDay(start)
	if day == nil {
		return false, nil
	}

	workStart, workEnd, err := day.WorkingWindow(start)
	if err != nil {
		return false, fmt.Errorf("%w: FitsSchedule - working window: %v", ErrInternal, err)
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	breaks, err := day.BreakWindows(start)
	if err != nil {
		return false, fmt.Errorf("%w: FitsSchedule - break windows: %v", ErrInternal, err)
	}

	requested := domain.Window{Start: start, End: end}
	for _, br := range breaks {
		if requested.Overlaps(br) {
			return false, nil
		}
	}

	return true, nil
}

// IsTimeRangeAvailable полная проверка доступности: расписание + активные бронирования
func (s *Service) IsTimeRangeAvailable(ctx context.Context, resource *domain.ResolvedResource, start, end time.Time, excludeBookingID *int64) (bool, error) {
	fits, err := s.FitsSchedule(resource, start, end)
	if err != nil || !fits {
		return false, err
	}

	return s.IsRangeAvailable(ctx, resource.Resource.ID, start, end, excludeBookingID)
}
