package get_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
)

type fakeResources struct {
	resource *domain.ResolvedResource
	err      error
}

func (f *fakeResources) GetResolved(_ context.Context, _ int64) (*domain.ResolvedResource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
}

type fakeSlots struct {
	slots    []domain.Slot
	err      error
	lastDate time.Time
}

func (f *fakeSlots) GenerateSlotsForDate(_ context.Context, _ *domain.ResolvedResource, date time.Time) ([]domain.Slot, error) {
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testResource() *domain.ResolvedResource {
	return &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 42, TenantID: 7},
		Policy: &domain.Policy{
			SlotDurationMinutes: 30,
			Strategy:            domain.StrategyFixed,
		},
	}
}

func TestExecute_ReturnsGeneratedSlots(t *testing.T) {
	date := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlots{slots: []domain.Slot{
		{Start: date.Add(9 * time.Hour), End: date.Add(9*time.Hour + 30*time.Minute), DurationMinutes: 30},
		{Start: date.Add(10 * time.Hour), End: date.Add(10*time.Hour + 30*time.Minute), DurationMinutes: 30},
	}}
	uc := NewUseCase(&fakeResources{resource: testResource()}, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 42, Date: date})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ResourceID)
	assert.Equal(t, int64(7), resp.TenantID)
	assert.Equal(t, domain.StrategyFixed, resp.Strategy)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, date, slots.lastDate)
}

func TestExecute_ClosedDayGivesEmptyList(t *testing.T) {
	uc := NewUseCase(&fakeResources{resource: testResource()}, &fakeSlots{slots: []domain.Slot{}}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 42,
		Date:       time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := NewUseCase(&fakeResources{err: resourcesService.ErrResourceNotFound}, &fakeSlots{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 99,
		Date:       time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvalidPolicyPassesThrough(t *testing.T) {
	uc := NewUseCase(&fakeResources{err: resourcesService.ErrInvalidPolicy}, &fakeSlots{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 42,
		Date:       time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, resourcesService.ErrInvalidPolicy)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := NewUseCase(&fakeResources{resource: testResource()}, &fakeSlots{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource id", &Request{Date: time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)}},
		{"missing date", &Request{ResourceID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
