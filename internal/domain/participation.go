package domain

import "time"

// ParticipantRef identifies a participant attached to a booking.
// Any entity kind can participate (user, room occupant, piece of equipment),
// so the reference carries an explicit kind instead of relying on type inspection.
type ParticipantRef struct {
	ID   int64
	Kind string
}

const (
	// ParticipantKindClient is the default participant kind
	ParticipantKindClient = "client"
)

// Participation is the join record between a booking and a participant.
// It carries its own status: for single-occupant bookings it mirrors the
// booking status, for group bookings participants move independently.
type Participation struct {
	ID              int64
	BookingID       int64
	ParticipantID   int64
	ParticipantKind string
	Status          BookingStatus
	Reason          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the participation holds a seat on the booking
func (p *Participation) IsActive() bool {
	return p.Status.IsActive()
}

// Ref returns the participant reference of the record
func (p *Participation) Ref() ParticipantRef {
	return ParticipantRef{ID: p.ParticipantID, Kind: p.ParticipantKind}
}

// CountActiveParticipations counts records holding a seat (pending or confirmed)
func CountActiveParticipations(participations []*Participation) int {
	count := 0
	for _, p := range participations {
		if p.IsActive() {
			count++
		}
	}
	return count
}

// FindParticipation returns the record matching ref, or nil
func FindParticipation(participations []*Participation, ref ParticipantRef) *Participation {
	for _, p := range participations {
		if p.ParticipantID == ref.ID && p.ParticipantKind == ref.Kind {
			return p
		}
	}
	return nil
}
