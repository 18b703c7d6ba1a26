package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticTimetable() *Timetable {
	return &Timetable{
		ID:   1,
		Kind: TimetableStatic,
		Schedule: Schedule{
			Days: map[string]DayPattern{
				"monday": {
					WorkingHours: &TimeRange{Start: "09:00", End: "18:00"},
					Breaks:       []TimeRange{{Start: "13:00", End: "14:00"}},
				},
				"tuesday": {
					// день без рабочих часов - выходной
					Breaks: []TimeRange{{Start: "13:00", End: "14:00"}},
				},
			},
			Holidays: []string{"06-01", "12-31"},
		},
	}
}

func TestTimetable_ResolveDay_Static(t *testing.T) {
	tt := staticTimetable()

	t.Run("working weekday", func(t *testing.T) {
		// 2026-06-08 - понедельник
		day := tt.ResolveDay(time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC))
		require.NotNil(t, day)
		assert.Equal(t, TimeRange{Start: "09:00", End: "18:00"}, day.WorkingHours)
		assert.Equal(t, []TimeRange{{Start: "13:00", End: "14:00"}}, day.Breaks)
	})

	t.Run("holiday closes the date even on a working weekday", func(t *testing.T) {
		// 2026-06-01 - понедельник, но в списке праздников
		day := tt.ResolveDay(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.Nil(t, day)
	})

	t.Run("weekday without entry", func(t *testing.T) {
		// 2026-06-07 - воскресенье
		day := tt.ResolveDay(time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC))
		assert.Nil(t, day)
	})

	t.Run("weekday entry without working hours", func(t *testing.T) {
		// 2026-06-09 - вторник
		day := tt.ResolveDay(time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC))
		assert.Nil(t, day)
	})
}

func TestTimetable_ResolveDay_Dynamic(t *testing.T) {
	tt := &Timetable{
		Kind: TimetableDynamic,
		Schedule: Schedule{
			Dates: map[string]DayPattern{
				"06-15": {WorkingHours: &TimeRange{Start: "10:00", End: "16:00"}},
			},
		},
	}

	day := tt.ResolveDay(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, day)
	assert.Equal(t, TimeRange{Start: "10:00", End: "16:00"}, day.WorkingHours)

	assert.Nil(t, tt.ResolveDay(time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)))
}

func TestTimetable_ResolveDay_MergesBreaks(t *testing.T) {
	tt := &Timetable{
		Kind: TimetableStatic,
		Schedule: Schedule{
			Days: map[string]DayPattern{
				"monday": {
					WorkingHours: &TimeRange{Start: "08:00", End: "20:00"},
					// не отсортированы, пересекаются и касаются
					Breaks: []TimeRange{
						{Start: "15:00", End: "15:30"},
						{Start: "12:00", End: "13:00"},
						{Start: "12:30", End: "13:30"},
						{Start: "13:30", End: "14:00"},
						{Start: "bad", End: "worse"},
					},
				},
			},
		},
	}

	day := tt.ResolveDay(time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, day)
	assert.Equal(t, []TimeRange{
		{Start: "12:00", End: "14:00"},
		{Start: "15:00", End: "15:30"},
	}, day.Breaks)
}

func TestDaySchedule_Windows(t *testing.T) {
	day := &DaySchedule{
		WorkingHours: TimeRange{Start: "09:00", End: "12:00"},
		Breaks:       []TimeRange{{Start: "10:00", End: "10:30"}},
	}
	date := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	start, end, err := day.WorkingWindow(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC), end)

	breaks, err := day.BreakWindows(date)
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.Equal(t, time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC), breaks[0].Start)
	assert.Equal(t, time.Date(2026, 6, 8, 10, 30, 0, 0, time.UTC), breaks[0].End)
}

func TestWindow_Overlaps(t *testing.T) {
	base := Window{
		Start: time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 8, 11, 0, 0, 0, time.UTC),
	}

	overlapping := Window{
		Start: time.Date(2026, 6, 8, 10, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 8, 11, 30, 0, 0, time.UTC),
	}
	assert.True(t, base.Overlaps(overlapping))
	assert.True(t, overlapping.Overlaps(base))

	// касание границ - не пересечение
	touching := Window{
		Start: base.End,
		End:   base.End.Add(time.Hour),
	}
	assert.False(t, base.Overlaps(touching))
	assert.False(t, touching.Overlaps(base))
}
