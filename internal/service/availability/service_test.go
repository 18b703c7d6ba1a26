package availability

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

func (f *fakeBookingRepo) GetActiveOverlapping(_ context.Context, resourceID int64, from, to time.Time, excludeBookingID *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ResourceID != resourceID || !b.IsActive() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func resolvedResource() *domain.ResolvedResource {
	return &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 1, TenantID: 1},
		Policy:   &domain.Policy{SlotDurationMinutes: 30, Strategy: domain.StrategyFixed},
		Timetable: &domain.Timetable{
			Kind: domain.TimetableStatic,
			Schedule: domain.Schedule{
				Days: map[string]domain.DayPattern{
					"monday": {
						WorkingHours: &domain.TimeRange{Start: "09:00", End: "18:00"},
						Breaks:       []domain.TimeRange{{Start: "13:00", End: "14:00"}},
					},
				},
			},
		},
	}
}

// 2026-06-08 - понедельник
func at(hour, min int) time.Time {
	return time.Date(2026, 6, 8, hour, min, 0, 0, time.UTC)
}

func TestService_IsRangeAvailable(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 10, ResourceID: 1, Start: at(10, 0), End: at(11, 0), Status: domain.StatusConfirmed},
		{ID: 11, ResourceID: 1, Start: at(15, 0), End: at(16, 0), Status: domain.StatusCancelledByClient},
	}}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	t.Run("free range", func(t *testing.T) {
		ok, err := svc.IsRangeAvailable(ctx, 1, at(11, 0), at(12, 0), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overlapping active booking", func(t *testing.T) {
		ok, err := svc.IsRangeAvailable(ctx, 1, at(10, 30), at(11, 30), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancelled bookings do not occupy time", func(t *testing.T) {
		ok, err := svc.IsRangeAvailable(ctx, 1, at(15, 0), at(16, 0), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("touching boundary is not a conflict", func(t *testing.T) {
		ok, err := svc.IsRangeAvailable(ctx, 1, at(11, 0), at(11, 30), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("excluded booking is ignored", func(t *testing.T) {
		exclude := int64(10)
		ok, err := svc.IsRangeAvailable(ctx, 1, at(10, 0), at(11, 0), &exclude)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.IsRangeAvailable(ctx, 1, at(12, 0), at(11, 0), nil)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestService_FitsSchedule(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})
	resource := resolvedResource()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "inside working hours", start: at(9, 0), end: at(10, 0), want: true},
		{name: "before opening", start: at(8, 30), end: at(9, 30), want: false},
		{name: "past closing", start: at(17, 30), end: at(18, 30), want: false},
		{name: "overlaps break", start: at(12, 30), end: at(13, 30), want: false},
		{name: "ends exactly at break start", start: at(12, 0), end: at(13, 0), want: true},
		{name: "starts exactly at break end", start: at(14, 0), end: at(15, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FitsSchedule(resource, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("closed day", func(t *testing.T) {
		// 2026-06-07 - воскресенье
		sunday := time.Date(2026, 6, 7, 10, 0, 0, 0, time.UTC)
		got, err := svc.FitsSchedule(resource, sunday, sunday.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("resource without timetable is always closed", func(t *testing.T) {
		bare := &domain.ResolvedResource{
			Resource: &domain.Resource{ID: 2},
			Policy:   &domain.Policy{SlotDurationMinutes: 30},
		}
		got, err := svc.FitsSchedule(bare, at(10, 0), at(11, 0))
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestService_IsTimeRangeAvailable(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 10, ResourceID: 1, Start: at(10, 0), End: at(11, 0), Status: domain.StatusPending},
	}}
	svc := NewService(repo, nopLogger{})
	resource := resolvedResource()
	ctx := context.Background()

	ok, err := svc.IsTimeRangeAvailable(ctx, resource, at(11, 0), at(12, 0), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	// pending занимает время наравне с confirmed
	ok, err = svc.IsTimeRangeAvailable(ctx, resource, at(10, 30), at(11, 30), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// в расписание не попадает, репозиторий даже не опрашивается
	ok, err = svc.IsTimeRangeAvailable(ctx, resource, at(13, 15), at(13, 45), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
