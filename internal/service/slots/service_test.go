package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveOverlapping(_ context.Context, resourceID int64, from, to time.Time, _ *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ResourceID == resourceID && b.IsActive() && b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-06-08 - понедельник
func at(day, hour, min int) time.Time {
	return time.Date(2026, 6, day, hour, min, 0, 0, time.UTC)
}

func mondayResource(strategy domain.SlotStrategy, durationMinutes int) *domain.ResolvedResource {
	return &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 1, TenantID: 1},
		Policy:   &domain.Policy{SlotDurationMinutes: durationMinutes, Strategy: strategy},
		Timetable: &domain.Timetable{
			Kind: domain.TimetableStatic,
			Schedule: domain.Schedule{
				Days: map[string]domain.DayPattern{
					"monday": {
						WorkingHours: &domain.TimeRange{Start: "09:00", End: "12:00"},
						Breaks:       []domain.TimeRange{{Start: "10:00", End: "10:30"}},
					},
					"tuesday": {
						WorkingHours: &domain.TimeRange{Start: "09:00", End: "10:00"},
					},
				},
			},
		},
	}
}

func slotStarts(slots []domain.Slot) []time.Time {
	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func TestGenerateSlotsForDate_FixedGrid(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)

	slots, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)

	// сетка возобновляется с конца перерыва, слот 11:30-12:00 касается
	// конца рабочего дня и потому допустим
	assert.Equal(t, []time.Time{
		at(8, 9, 0),
		at(8, 9, 30),
		at(8, 10, 30),
		at(8, 11, 0),
		at(8, 11, 30),
	}, slotStarts(slots))

	for _, slot := range slots {
		assert.Equal(t, 30, slot.DurationMinutes)
		assert.Equal(t, slot.Start.Add(30*time.Minute), slot.End)
	}
}

func TestGenerateSlotsForDate_FixedSkipsOccupiedWithoutShifting(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, ResourceID: 1, Start: at(8, 9, 30), End: at(8, 10, 0), Status: domain.StatusConfirmed},
	}}
	svc := NewService(repo, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)

	slots, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)

	// 09:30 занят и выпадает, остальная сетка не сдвигается
	assert.Equal(t, []time.Time{
		at(8, 9, 0),
		at(8, 10, 30),
		at(8, 11, 0),
		at(8, 11, 30),
	}, slotStarts(slots))
}

func TestGenerateSlotsForDate_DynamicCarvesAroundBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, ResourceID: 1, Start: at(8, 9, 15), End: at(8, 9, 45), Status: domain.StatusPending},
	}}
	svc := NewService(repo, nopLogger{})
	resource := mondayResource(domain.StrategyDynamic, 30)

	slots, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)

	// свободные периоды: [09:00-09:15), [09:45-10:00), [10:30-12:00)
	// первые два короче слота и выпадают, в последнем слоты идут вплотную
	assert.Equal(t, []time.Time{
		at(8, 10, 30),
		at(8, 11, 0),
		at(8, 11, 30),
	}, slotStarts(slots))
}

func TestGenerateSlotsForDate_ClosedDay(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)

	// 2026-06-07 - воскресенье
	slots, err := svc.GenerateSlotsForDate(context.Background(), resource, at(7, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsForDate_NoTimetable(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 1},
		Policy:   &domain.Policy{SlotDurationMinutes: 30, Strategy: domain.StrategyFixed},
	}

	slots, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsForDate_Idempotent(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)

	first, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)
	second, err := svc.GenerateSlotsForDate(context.Background(), resource, at(8, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAlignsWithSlotGrid(t *testing.T) {
	// занятые слоты остаются в сетке, поэтому бронирования не учитываются
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, ResourceID: 1, Start: at(8, 9, 0), End: at(8, 9, 30), Status: domain.StatusConfirmed},
	}}
	svc := NewService(repo, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{name: "grid start", start: at(8, 9, 0), want: true},
		{name: "first slot after break", start: at(8, 10, 30), want: true},
		{name: "off grid", start: at(8, 9, 10), want: false},
		{name: "inside break", start: at(8, 10, 0), want: false},
		{name: "closed day", start: at(7, 9, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.AlignsWithSlotGrid(resource, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetNextAvailableSlots(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := mondayResource(domain.StrategyFixed, 30)
	ctx := context.Background()

	t.Run("skips earlier slots of the first day", func(t *testing.T) {
		slots, err := svc.GetNextAvailableSlots(ctx, resource, at(8, 10, 45), 3, false)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			at(8, 11, 0),
			at(8, 11, 30),
			at(9, 9, 0), // вторник, следующий рабочий день
		}, slotStarts(slots))
	})

	t.Run("slot starting exactly at from is included", func(t *testing.T) {
		slots, err := svc.GetNextAvailableSlots(ctx, resource, at(8, 11, 0), 1, false)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, at(8, 11, 0), slots[0].Start)
	})

	t.Run("onlyToday stops at midnight", func(t *testing.T) {
		slots, err := svc.GetNextAvailableSlots(ctx, resource, at(8, 11, 15), 5, true)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(8, 11, 30)}, slotStarts(slots))
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := svc.GetNextAvailableSlots(ctx, resource, at(8, 0, 0), 0, false)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
