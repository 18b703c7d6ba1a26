package domain

import "time"

// BookingStatus represents the status of a booking or of a single participation
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByAdmin  BookingStatus = "cancelled_by_admin"
	StatusRejected          BookingStatus = "rejected"
)

// IsActive returns true if the status occupies time on the resource
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transition is allowed from the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelledByClient || s == StatusCancelledByAdmin || s == StatusRejected
}

// IsValid returns true if the value is a known status
func (s BookingStatus) IsValid() bool {
	return s.IsActive() || s.IsTerminal()
}

// Actor identifies who requested a lifecycle transition
type Actor string

const (
	ActorClient Actor = "client"
	ActorAdmin  Actor = "admin"
)

// IsValid returns true if the value is a known actor
func (a Actor) IsValid() bool {
	return a == ActorClient || a == ActorAdmin
}

// CancellationStatus returns the cancellation variant matching the actor
func (a Actor) CancellationStatus() BookingStatus {
	if a == ActorAdmin {
		return StatusCancelledByAdmin
	}
	return StatusCancelledByClient
}

// Booking represents a reservation of a resource for a half-open time window
// [Start, End). A booking row is never deleted: cancelled and rejected rows are
// kept for audit and excluded from overlap checks by status.
type Booking struct {
	ID         int64
	TenantID   int64
	ResourceID int64
	Start      time.Time
	End        time.Time
	Status     BookingStatus
	// IsGroup is fixed at creation from the resource policy and never changes,
	// even if the policy is edited later
	IsGroup bool
	Reason  *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its window
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// Overlaps reports whether the booking window intersects [from, to) under
// half-open interval semantics. Touching boundaries do not overlap.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.Start.Before(to) && b.End.After(from)
}

// OccupiesExactly reports whether the booking occupies exactly [start, end)
func (b *Booking) OccupiesExactly(start, end time.Time) bool {
	return b.Start.Equal(start) && b.End.Equal(end)
}
