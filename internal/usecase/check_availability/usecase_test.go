package check_availability

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

type fakeAvailability struct {
	available bool
	err       error
}

func (f *fakeAvailability) IsTimeRangeAvailable(_ context.Context, _ *domain.ResolvedResource, _, _ time.Time, _ *int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.available, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testResource() *domain.ResolvedResource {
	return &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 42, TenantID: 7},
		Policy:   &domain.Policy{SlotDurationMinutes: 30, Strategy: domain.StrategyFixed},
	}
}

func TestExecute_ReportsAvailability(t *testing.T) {
	start := time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	for _, available := range []bool{true, false} {
		uc := NewUseCase(&fakeResources{resource: testResource()}, &fakeAvailability{available: available}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{ResourceID: 42, Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, available, resp.Available)
		assert.Equal(t, start, resp.Start)
		assert.Equal(t, end, resp.End)
	}
}

func TestExecute_ResourceNotFound(t *testing.T) {
	start := time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeResources{err: resourcesService.ErrResourceNotFound}, &fakeAvailability{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 99, Start: start, End: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvertedRange(t *testing.T) {
	start := time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(&fakeResources{resource: testResource()}, &fakeAvailability{available: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 42, Start: start, End: start})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
