package slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// slotGenerator порождает свободные слоты внутри рабочего окна одного дня
type slotGenerator interface {
	generate(workStart, workEnd time.Time, breaks, bookings []domain.Window, durationMinutes int) []domain.Slot
}

// fixedGenerator строит жесткую сетку слотов от начала рабочего дня
// Слот, пересекающий перерыв, не выдается, сетка продолжается от конца перерыва
// Слот, пересекающий активное бронирование, пропускается без сдвига сетки
type fixedGenerator struct{}

func (fixedGenerator) generate(workStart, workEnd time.Time, breaks, bookings []domain.Window, durationMinutes int) []domain.Slot {
	duration := time.Duration(durationMinutes) * time.Minute
	result := make([]domain.Slot, 0)

	cursor := workStart
	for {
		candidate := domain.Window{Start: cursor, End: cursor.Add(duration)}
		if candidate.End.After(workEnd) {
			break
		}

		if br, blocked := firstOverlap(candidate, breaks); blocked {
			cursor = br.End
			continue
		}

		if _, occupied := firstOverlap(candidate, bookings); !occupied {
			result = append(result, domain.Slot{
				Start:           candidate.Start,
				End:             candidate.End,
				DurationMinutes: durationMinutes,
			})
		}
		cursor = candidate.End
	}

	return result
}

// dynamicGenerator вычитает из рабочего окна бронирования, затем перерывы,
// и в каждом оставшемся свободном периоде укладывает слоты вплотную друг к другу
// Сетка каждого периода начинается с его начала, поэтому слоты прижимаются
// к границам существующих бронирований без простоев
type dynamicGenerator struct{}

func (dynamicGenerator) generate(workStart, workEnd time.Time, breaks, bookings []domain.Window, durationMinutes int) []domain.Slot {
	duration := time.Duration(durationMinutes) * time.Minute

	periods := []domain.Window{{Start: workStart, End: workEnd}}
	periods = subtractWindows(periods, bookings)
	periods = subtractWindows(periods, breaks)

	result := make([]domain.Slot, 0)
	for _, period := range periods {
		cursor := period.Start
		for !cursor.Add(duration).After(period.End) {
			result = append(result, domain.Slot{
				Start:           cursor,
				End:             cursor.Add(duration),
				DurationMinutes: durationMinutes,
			})
			cursor = cursor.Add(duration)
		}
	}

	return result
}

// firstOverlap возвращает первое окно из blocks, пересекающее candidate
func firstOverlap(candidate domain.Window, blocks []domain.Window) (domain.Window, bool) {
	for _, block := range blocks {
		if candidate.Overlaps(block) {
			return block, true
		}
	}
	return domain.Window{}, false
}

// subtractWindows вычитает каждое окно blocks из каждого периода periods
// Результат сохраняет порядок и не содержит пустых периодов
func subtractWindows(periods, blocks []domain.Window) []domain.Window {
	for _, block := range blocks {
		next := make([]domain.Window, 0, len(periods))
		for _, period := range periods {
			if !period.Overlaps(block) {
				next = append(next, period)
				continue
			}
			if block.Start.After(period.Start) {
				next = append(next, domain.Window{Start: period.Start, End: block.Start})
			}
			if block.End.Before(period.End) {
				next = append(next, domain.Window{Start: block.End, End: period.End})
			}
		}
		periods = next
	}
	return periods
}

func generatorFor(policy *domain.Policy) slotGenerator {
	if policy.IsDynamicStrategy() {
		return dynamicGenerator{}
	}
	return fixedGenerator{}
}
