package get_next_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	slotsService "github.com/m04kA/SMC-ScheduleService/internal/service/slots"
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
	slots         []domain.Slot
	err           error
	lastFrom      time.Time
	lastCount     int
	lastOnlyToday bool
}

func (f *fakeSlots) GetNextAvailableSlots(_ context.Context, _ *domain.ResolvedResource, from time.Time, count int, onlyToday bool) ([]domain.Slot, error) {
	f.lastFrom = from
	f.lastCount = count
	f.lastOnlyToday = onlyToday
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func testResource() *domain.ResolvedResource {
	return &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 42, TenantID: 7},
		Policy:   &domain.Policy{SlotDurationMinutes: 30, Strategy: domain.StrategyFixed},
	}
}

func newUseCase(resources *fakeResources, slots *fakeSlots) *UseCase {
	uc := NewUseCase(resources, slots, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_DefaultsFromAndCount(t *testing.T) {
	slots := &fakeSlots{slots: []domain.Slot{
		{Start: testNow.Add(time.Hour), End: testNow.Add(90 * time.Minute), DurationMinutes: 30},
	}}
	uc := newUseCase(&fakeResources{resource: testResource()}, slots)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 42})
	require.NoError(t, err)

	assert.Equal(t, testNow, slots.lastFrom)
	assert.Equal(t, DefaultCount, slots.lastCount)
	assert.False(t, slots.lastOnlyToday)
	assert.Equal(t, testNow, resp.From)
	assert.Len(t, resp.Slots, 1)
}

func TestExecute_ExplicitBoundsPassedThrough(t *testing.T) {
	from := time.Date(2026, 6, 8, 14, 0, 0, 0, time.UTC)
	slots := &fakeSlots{slots: []domain.Slot{}}
	uc := newUseCase(&fakeResources{resource: testResource()}, slots)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 42,
		From:       from,
		Count:      3,
		OnlyToday:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, from, slots.lastFrom)
	assert.Equal(t, 3, slots.lastCount)
	assert.True(t, slots.lastOnlyToday)
	assert.Equal(t, from, resp.From)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := newUseCase(&fakeResources{err: resourcesService.ErrResourceNotFound}, &fakeSlots{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 99})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_NegativeCount(t *testing.T) {
	uc := newUseCase(&fakeResources{resource: testResource()}, &fakeSlots{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 42, Count: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotsServiceInvalidInput(t *testing.T) {
	uc := newUseCase(&fakeResources{resource: testResource()}, &fakeSlots{err: slotsService.ErrInvalidInput})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 42, Count: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
