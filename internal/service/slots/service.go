package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Service сервис генерации слотов по эффективной политике и расписанию ресурса
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GenerateSlotsForDate возвращает свободные слоты ресурса на календарную дату
// Генерация идемпотентна: слоты вычисляются на лету и нигде не хранятся
// Закрытый день (праздник, выходной, нет расписания) дает пустой список
func (s *Service) GenerateSlotsForDate(ctx context.Context, resource *domain.ResolvedResource, date time.Time) ([]domain.Slot, error) {
	day := resource.ResolveDay(date)
	if day == nil {
		return []domain.Slot{}, nil
	}

	workStart, workEnd, err := day.WorkingWindow(date)
	if err != nil {
		s.logger.Error("GenerateSlotsForDate: resource=%d invalid working window: %v", resource.Resource.ID, err)
		return nil, fmt.Errorf("%w: GenerateSlotsForDate - working window: %v", ErrInternal, err)
	}

	breaks, err := day.BreakWindows(date)
	if err != nil {
		s.logger.Error("GenerateSlotsForDate: resource=%d invalid breaks: %v", resource.Resource.ID, err)
		return nil, fmt.Errorf("%w: GenerateSlotsForDate - break windows: %v", ErrInternal, err)
	}

	bookings, err := s.activeWindows(ctx, resource.Resource.ID, workStart, workEnd)
	if err != nil {
		return nil, err
	}

	generator := generatorFor(resource.Policy)
	return generator.generate(workStart, workEnd, breaks, bookings, resource.Policy.SlotDurationMinutes), nil
}

// GetNextAvailableSlots возвращает ближайшие count свободных слотов начиная с from
// Слоты первого дня, начинающиеся раньше from, отбрасываются
// onlyToday ограничивает поиск датой from, иначе просматривается до года вперед
func (s *Service) GetNextAvailableSlots(ctx context.Context, resource *domain.ResolvedResource, from time.Time, count int, onlyToday bool) ([]domain.Slot, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrInvalidInput)
	}

	maxDays := domain.MaxScanDays
	if onlyToday {
		maxDays = 1
	}

	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	result := make([]domain.Slot, 0, count)

	for day := 0; day < maxDays && len(result) < count; day++ {
		slots, err := s.GenerateSlotsForDate(ctx, resource, date.AddDate(0, 0, day))
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			if slot.Start.Before(from) {
				continue
			}
			result = append(result, slot)
			if len(result) == count {
				break
			}
		}
	}

	return result, nil
}

// AlignsWithSlotGrid проверяет, что start совпадает с началом слота жесткой
// сетки на свою дату. Занятость не учитывается: бронирования занимают слоты
// сетки, не сдвигая её, поэтому выровненное начало остаётся выровненным
func (s *Service) AlignsWithSlotGrid(resource *domain.ResolvedResource, start time.Time) (bool, error) {
	day := resource.ResolveDay(start)
	if day == nil {
		return false, nil
	}

	workStart, workEnd, err := day.WorkingWindow(start)
	if err != nil {
		s.logger.Error("AlignsWithSlotGrid: resource=%d invalid working window: %v", resource.Resource.ID, err)
		return false, fmt.Errorf("%w: AlignsWithSlotGrid - working window: %v", ErrInternal, err)
	}

	breaks, err := day.BreakWindows(start)
	if err != nil {
		s.logger.Error("AlignsWithSlotGrid: resource=%d invalid breaks: %v", resource.Resource.ID, err)
		return false, fmt.Errorf("%w: AlignsWithSlotGrid - break windows: %v", ErrInternal, err)
	}

	grid := fixedGenerator{}.generate(workStart, workEnd, breaks, nil, resource.Policy.SlotDurationMinutes)
	for _, slot := range grid {
		if slot.Start.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) activeWindows(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.Window, error) {
	bookings, err := s.bookingRepo.GetActiveOverlapping(ctx, resourceID, from, to, nil)
	if err != nil {
		s.logger.Error("activeWindows: failed to get bookings for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: activeWindows - repository error: %v", ErrInternal, err)
	}

	windows := make([]domain.Window, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, domain.Window{Start: b.Start, End: b.End})
	}
	return windows, nil
}
