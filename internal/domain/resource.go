package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/deepmerge"
)

// Resource represents a bookable entity: an employee, a room, a piece of
// equipment or a group class. Timetable and policy may be set directly or
// inherited from the resource type.
type Resource struct {
	ID             int64
	TenantID       int64
	ResourceTypeID int64
	Name           string
	TimetableID    *int64
	PolicyOverride map[string]interface{} // raw policy override, merged over the type default
}

// ResourceType groups resources sharing a default timetable and policy
type ResourceType struct {
	ID            int64
	TenantID      int64
	Name          string
	TimetableID   *int64
	DefaultPolicy map[string]interface{}
}

// MergedPolicyMap merges the resource override over the type default.
// Nested maps merge per key, scalars and lists replace wholesale.
func MergedPolicyMap(resourceType *ResourceType, resource *Resource) map[string]interface{} {
	var base map[string]interface{}
	if resourceType != nil {
		base = resourceType.DefaultPolicy
	}
	return deepmerge.Merge(base, resource.PolicyOverride)
}

// ResolvedResource is a resource with its effective timetable and policy,
// ready for slot generation and lifecycle checks. Built per request and
// never shared mutably across requests.
type ResolvedResource struct {
	Resource  *Resource
	Policy    *Policy
	Timetable *Timetable // nil when neither resource nor type has one
}

// ResolveDay resolves the day schedule of the effective timetable.
// Returns nil when the resource has no timetable or is closed on the date.
func (r *ResolvedResource) ResolveDay(date time.Time) *DaySchedule {
	if r.Timetable == nil {
		return nil
	}
	return r.Timetable.ResolveDay(date)
}

