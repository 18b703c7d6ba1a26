package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimetableKind discriminates between weekly-pattern and per-date timetables
type TimetableKind string

const (
	// TimetableStatic is a recurring weekly pattern with a holiday exception list
	TimetableStatic TimetableKind = "static"
	// TimetableDynamic maps explicit MM-DD dates to day schedules
	TimetableDynamic TimetableKind = "dynamic"
)

// IsValid returns true if the value is a known timetable kind
func (k TimetableKind) IsValid() bool {
	return k == TimetableStatic || k == TimetableDynamic
}

// TimeRange is a [Start, End) range of day-local times
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// IsValid returns true if both bounds parse and Start precedes End
func (r TimeRange) IsValid() bool {
	if r.Start.Validate() != nil || r.End.Validate() != nil {
		return false
	}
	return r.Start.IsBefore(r.End)
}

// DayPattern is the raw per-day entry of a timetable schedule
type DayPattern struct {
	WorkingHours *TimeRange  `json:"working_hours,omitempty"`
	Breaks       []TimeRange `json:"breaks,omitempty"`
}

// Schedule is the raw timetable payload.
// Static timetables use Days + Holidays, dynamic ones use Dates.
type Schedule struct {
	Days     map[string]DayPattern `json:"days,omitempty"`  // keyed by lowercase weekday name
	Dates    map[string]DayPattern `json:"dates,omitempty"` // keyed by MM-DD
	Holidays []string              `json:"holidays,omitempty"`
}

// Timetable is a calendar of working hours and breaks for a resource
type Timetable struct {
	ID       int64
	TenantID int64
	Kind     TimetableKind
	Schedule Schedule
}

// DaySchedule is the resolved schedule of a single calendar date.
// Breaks are normalized: sorted by start and merged into a disjoint union,
// regardless of the order and overlaps in the raw data.
type DaySchedule struct {
	WorkingHours TimeRange
	Breaks       []TimeRange
}

// ResolveDay maps a calendar date to its day schedule, or nil when the
// resource is closed on that date (holiday, missing weekday or date entry,
// or an entry without working hours). A holiday closes the date even if a
// weekday entry exists.
func (t *Timetable) ResolveDay(date time.Time) *DaySchedule {
	var pattern DayPattern
	var found bool

	switch t.Kind {
	case TimetableStatic:
		monthDay := date.Format(MonthDayFormat)
		for _, holiday := range t.Schedule.Holidays {
			if holiday == monthDay {
				return nil
			}
		}
		weekday := strings.ToLower(date.Weekday().String())
		pattern, found = t.Schedule.Days[weekday]
	case TimetableDynamic:
		pattern, found = t.Schedule.Dates[date.Format(MonthDayFormat)]
	default:
		return nil
	}

	if !found || pattern.WorkingHours == nil || !pattern.WorkingHours.IsValid() {
		return nil
	}

	return &DaySchedule{
		WorkingHours: *pattern.WorkingHours,
		Breaks:       mergeBreaks(pattern.Breaks),
	}
}

// WorkingWindow returns the absolute working-hours window on the given date
func (d *DaySchedule) WorkingWindow(date time.Time) (time.Time, time.Time, error) {
	start, err := d.WorkingHours.Start.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := d.WorkingHours.End.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// BreakWindows returns the absolute break windows on the given date
func (d *DaySchedule) BreakWindows(date time.Time) ([]Window, error) {
	windows := make([]Window, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		start, err := b.Start.OnDate(date)
		if err != nil {
			return nil, err
		}
		end, err := b.End.OnDate(date)
		if err != nil {
			return nil, err
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows, nil
}

// mergeBreaks sorts break ranges and merges overlapping and touching ones
// into a disjoint union. Malformed ranges are dropped.
func mergeBreaks(breaks []TimeRange) []TimeRange {
	valid := make([]TimeRange, 0, len(breaks))
	for _, b := range breaks {
		if b.IsValid() {
			valid = append(valid, b)
		}
	}

	if len(valid) <= 1 {
		return valid
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.IsBefore(valid[j].Start)
	})

	merged := []TimeRange{valid[0]}
	for _, b := range valid[1:] {
		last := &merged[len(merged)-1]
		if b.Start.IsAfter(last.End) {
			merged = append(merged, b)
			continue
		}
		if b.End.IsAfter(last.End) {
			last.End = b.End
		}
	}

	return merged
}
