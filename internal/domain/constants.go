package domain

// Default policy values, applied when a resource and its type carry no configuration
const (
	DefaultSlotDurationMinutes = 60
	DefaultSlotStrategy        = StrategyFixed
	DefaultMinAdvanceMinutes   = 0
)

// Business validation constants
const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 1440 // full day

	MaxReasonLength = 500

	// MaxScanDays limits the day-by-day scan in next-available-slot lookups
	// so a resource with an empty timetable cannot be scanned forever
	MaxScanDays = 366
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	MonthDayFormat = "01-02"      // MM-DD, timetable holiday/date keys
)

// ActiveStatuses are the statuses that occupy time on a resource.
// Only these are considered by overlap and capacity checks.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses are the statuses a booking can never leave.
var TerminalStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByAdmin,
	StatusRejected,
}
