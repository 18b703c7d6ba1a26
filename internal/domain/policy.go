package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is returned when a merged policy map fails validation
var ErrInvalidPolicy = errors.New("invalid resource policy")

// SlotStrategy selects how bookable slots are generated for a date
type SlotStrategy string

const (
	// StrategyFixed generates a pre-computed grid from the start of working hours
	StrategyFixed SlotStrategy = "fixed"
	// StrategyDynamic carves slots out of the availability remaining after
	// existing bookings and breaks
	StrategyDynamic SlotStrategy = "dynamic"
)

// IsValid returns true if the value is a known strategy
func (s SlotStrategy) IsValid() bool {
	return s == StrategyFixed || s == StrategyDynamic
}

// Policy is the per-resource booking configuration, built from the merged
// policy map (resource override deep-merged over the resource-type default).
// A Policy value is immutable once constructed.
type Policy struct {
	SlotDurationMinutes       int
	Strategy                  SlotStrategy
	RequiresConfirmation      bool
	MaxParticipants           *int // nil or <=1: single occupant; >1: group resource
	MinAdvanceMinutes         int  // 0: start must be strictly in the future
	CancellationWindowMinutes *int // nil: unrestricted, 0: forbidden, >0: deadline before start
	RescheduleWindowMinutes   *int // same semantics as cancellation window
}

// Raw policy map keys
const (
	policyKeySlotDuration       = "slot_duration_minutes"
	policyKeySlotStrategy       = "slot_strategy"
	policyKeyRequiresConfirm    = "requires_confirmation"
	policyKeyMaxParticipants    = "max_participants"
	policyKeyMinAdvance         = "min_advance_time_minutes"
	policyKeyCancellationWindow = "cancellation_window_minutes"
	policyKeyRescheduleWindow   = "reschedule_window_minutes"
)

// NewPolicy builds a Policy from a merged key-value map.
// Unknown keys are ignored; missing keys fall back to defaults.
// Numeric values may arrive as int or float64 (JSONB decoding).
func NewPolicy(raw map[string]interface{}) (*Policy, error) {
	p := &Policy{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		Strategy:            DefaultSlotStrategy,
		MinAdvanceMinutes:   DefaultMinAdvanceMinutes,
	}

	if v, ok := raw[policyKeySlotDuration]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPolicy, policyKeySlotDuration, err)
		}
		p.SlotDurationMinutes = n
	}

	if v, ok := raw[policyKeySlotStrategy]; ok {
		s, isString := v.(string)
		if !isString || !SlotStrategy(s).IsValid() {
			return nil, fmt.Errorf("%w: %s: unknown strategy %v", ErrInvalidPolicy, policyKeySlotStrategy, v)
		}
		p.Strategy = SlotStrategy(s)
	}

	if v, ok := raw[policyKeyRequiresConfirm]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: %s: expected bool, got %T", ErrInvalidPolicy, policyKeyRequiresConfirm, v)
		}
		p.RequiresConfirmation = b
	}

	var err error
	if p.MaxParticipants, err = optionalInt(raw, policyKeyMaxParticipants); err != nil {
		return nil, err
	}
	if p.CancellationWindowMinutes, err = optionalInt(raw, policyKeyCancellationWindow); err != nil {
		return nil, err
	}
	if p.RescheduleWindowMinutes, err = optionalInt(raw, policyKeyRescheduleWindow); err != nil {
		return nil, err
	}

	if v, ok := raw[policyKeyMinAdvance]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPolicy, policyKeyMinAdvance, err)
		}
		p.MinAdvanceMinutes = n
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Policy) validate() error {
	if p.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidPolicy, p.SlotDurationMinutes)
	}
	if p.MaxParticipants != nil && *p.MaxParticipants < 0 {
		return fmt.Errorf("%w: max participants cannot be negative, got %d", ErrInvalidPolicy, *p.MaxParticipants)
	}
	if p.MinAdvanceMinutes < 0 {
		return fmt.Errorf("%w: min advance time cannot be negative, got %d", ErrInvalidPolicy, p.MinAdvanceMinutes)
	}
	return nil
}

// IsFixedStrategy returns true if slots are generated on a fixed grid
func (p *Policy) IsFixedStrategy() bool {
	return p.Strategy == StrategyFixed
}

// IsDynamicStrategy returns true if slots are carved from remaining availability
func (p *Policy) IsDynamicStrategy() bool {
	return p.Strategy == StrategyDynamic
}

// IsGroupResource returns true if more than one participant may hold the same window
func (p *Policy) IsGroupResource() bool {
	return p.MaxParticipants != nil && *p.MaxParticipants > 1
}

// CanCancel reports whether a client may still cancel a booking starting at start.
// nil window: always; zero window: never; positive: at least that many minutes ahead.
func (p *Policy) CanCancel(start, now time.Time) bool {
	return withinWindow(p.CancellationWindowMinutes, start, now)
}

// CanReschedule reports whether a client may still reschedule a booking starting at start
func (p *Policy) CanReschedule(start, now time.Time) bool {
	return withinWindow(p.RescheduleWindowMinutes, start, now)
}

func withinWindow(windowMinutes *int, start, now time.Time) bool {
	if windowMinutes == nil {
		return true
	}
	if *windowMinutes == 0 {
		return false
	}
	deadline := start.Add(-time.Duration(*windowMinutes) * time.Minute)
	return !now.After(deadline)
}

func optionalInt(raw map[string]interface{}, key string) (*int, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := toInt(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPolicy, key, err)
	}
	return &n, nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
