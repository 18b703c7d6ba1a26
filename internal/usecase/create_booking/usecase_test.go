package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeRepo struct {
	bookings       []*domain.Booking
	participations []*domain.Participation
	nextBookingID  int64
	nextPartID     int64
}

func (f *fakeRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextBookingID++
	booking.ID = f.nextBookingID
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeRepo) FindActiveByWindow(_ context.Context, resourceID int64, start, end time.Time) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ResourceID == resourceID && b.IsActive() && b.OccupiesExactly(start, end) {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetParticipations(_ context.Context, bookingID int64) ([]*domain.Participation, error) {
	result := make([]*domain.Participation, 0)
	for _, p := range f.participations {
		if p.BookingID == bookingID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeRepo) CreateParticipation(_ context.Context, participation *domain.Participation) (*domain.Participation, error) {
	f.nextPartID++
	participation.ID = f.nextPartID
	f.participations = append(f.participations, participation)
	return participation, nil
}

type fakeResources struct {
	resource *domain.ResolvedResource
}

func (f *fakeResources) GetResolved(_ context.Context, _ int64) (*domain.ResolvedResource, error) {
	return f.resource, nil
}

type fakeAvailability struct {
	available bool
}

func (f *fakeAvailability) IsTimeRangeAvailable(_ context.Context, _ *domain.ResolvedResource, _, _ time.Time, _ *int64) (bool, error) {
	return f.available, nil
}

type fakeSlots struct {
	aligned bool
}

func (f *fakeSlots) AlignsWithSlotGrid(_ *domain.ResolvedResource, _ time.Time) (bool, error) {
	return f.aligned, nil
}

type fakeEvents struct {
	created  int
	joined   int
	rejected int
}

func (f *fakeEvents) BookingCreated(context.Context, *domain.Booking, *domain.Participation) error {
	f.created++
	return nil
}

func (f *fakeEvents) ParticipantJoined(context.Context, *domain.Booking, *domain.Participation) error {
	f.joined++
	return nil
}

func (f *fakeEvents) ParticipantRejected(context.Context, *domain.Booking, *domain.Participation) error {
	f.rejected++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newUseCase(repo *fakeRepo, policy *domain.Policy, available bool) (*UseCase, *fakeEvents) {
	return newUseCaseWithSlots(repo, policy, available, &fakeSlots{aligned: true})
}

func newUseCaseWithSlots(repo *fakeRepo, policy *domain.Policy, available bool, slots *fakeSlots) (*UseCase, *fakeEvents) {
	events := &fakeEvents{}
	resources := &fakeResources{resource: &domain.ResolvedResource{
		Resource: &domain.Resource{ID: 1, TenantID: 7},
		Policy:   policy,
	}}
	uc := NewUseCase(repo, resources, &fakeAvailability{available: available}, slots, events, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc, events
}

func clientRequest(start time.Time) *Request {
	return &Request{
		ResourceID:  1,
		Start:       start,
		Participant: domain.ParticipantRef{ID: 100, Kind: domain.ParticipantKindClient},
		Actor:       domain.ActorClient,
	}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	repo := &fakeRepo{}
	uc, events := newUseCase(repo, &domain.Policy{SlotDurationMinutes: 60}, true)

	start := testNow.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), clientRequest(start))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.StatusConfirmed), resp.ParticipationStatus)
	assert.Equal(t, start, resp.Start)
	assert.Equal(t, start.Add(time.Hour), resp.End)
	assert.Equal(t, int64(7), resp.TenantID)
	assert.False(t, resp.IsGroup)
	assert.Equal(t, 1, events.created)

	require.Len(t, repo.participations, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.participations[0].Status)
}

func TestExecute_ExplicitEnd(t *testing.T) {
	start := testNow.Add(24 * time.Hour)

	t.Run("custom end overrides policy duration", func(t *testing.T) {
		repo := &fakeRepo{}
		uc, _ := newUseCase(repo, &domain.Policy{SlotDurationMinutes: 60}, true)

		req := clientRequest(start)
		end := start.Add(90 * time.Minute)
		req.End = &end

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, end, resp.End)
		assert.Equal(t, end, repo.bookings[0].End)
	})

	t.Run("end not after start is invalid", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, &domain.Policy{SlotDurationMinutes: 60}, true)
		req := clientRequest(start)
		req.End = &start
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_FixedGridAlignment(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	fixed := &domain.Policy{SlotDurationMinutes: 60, Strategy: domain.StrategyFixed}

	t.Run("client start off the grid is rejected", func(t *testing.T) {
		uc, _ := newUseCaseWithSlots(&fakeRepo{}, fixed, true, &fakeSlots{aligned: false})
		_, err := uc.Execute(context.Background(), clientRequest(start))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("admin bypasses the grid", func(t *testing.T) {
		uc, _ := newUseCaseWithSlots(&fakeRepo{}, fixed, true, &fakeSlots{aligned: false})
		req := clientRequest(start)
		req.Actor = domain.ActorAdmin
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("dynamic strategy has no grid", func(t *testing.T) {
		dynamic := &domain.Policy{SlotDurationMinutes: 60, Strategy: domain.StrategyDynamic}
		uc, _ := newUseCaseWithSlots(&fakeRepo{}, dynamic, true, &fakeSlots{aligned: false})
		_, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)
	})
}

func TestExecute_RequiresConfirmation(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	policy := &domain.Policy{SlotDurationMinutes: 60, RequiresConfirmation: true}

	t.Run("client booking is created pending", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, policy, true)
		resp, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, string(domain.StatusPending), resp.ParticipationStatus)
	})

	t.Run("admin booking skips confirmation", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, policy, true)
		req := clientRequest(start)
		req.Actor = domain.ActorAdmin
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})
}

func TestExecute_StartTimeValidation(t *testing.T) {
	policy := &domain.Policy{SlotDurationMinutes: 60, MinAdvanceMinutes: 120}

	t.Run("past start", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, policy, true)
		_, err := uc.Execute(context.Background(), clientRequest(testNow.Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("future start inside the advance window", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, policy, true)
		_, err := uc.Execute(context.Background(), clientRequest(testNow.Add(30*time.Minute)))
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("admin bypasses both checks", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, policy, false)
		req := clientRequest(testNow.Add(-time.Hour))
		req.Actor = domain.ActorAdmin
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	uc, events := newUseCase(&fakeRepo{}, &domain.Policy{SlotDurationMinutes: 60}, false)

	_, err := uc.Execute(context.Background(), clientRequest(testNow.Add(24*time.Hour)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, events.created)
}

func TestExecute_ExactWindowSingleOccupant(t *testing.T) {
	start := testNow.Add(24 * time.Hour)

	seedRepo := func() *fakeRepo {
		return &fakeRepo{
			bookings: []*domain.Booking{{
				ID: 1, TenantID: 7, ResourceID: 1,
				Start: start, End: start.Add(time.Hour),
				Status: domain.StatusConfirmed,
			}},
			nextBookingID: 1,
		}
	}

	t.Run("client gets a conflict", func(t *testing.T) {
		uc, _ := newUseCase(seedRepo(), &domain.Policy{SlotDurationMinutes: 60}, true)
		_, err := uc.Execute(context.Background(), clientRequest(start))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("admin creates a coexisting booking", func(t *testing.T) {
		repo := seedRepo()
		uc, events := newUseCase(repo, &domain.Policy{SlotDurationMinutes: 60}, true)
		req := clientRequest(start)
		req.Actor = domain.ActorAdmin

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.NotEqual(t, int64(1), resp.BookingID)
		assert.Len(t, repo.bookings, 2)
		assert.Equal(t, 1, events.created)
	})
}

func TestExecute_GroupJoin(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	policy := &domain.Policy{SlotDurationMinutes: 60, MaxParticipants: ptr.Ptr(3)}

	groupRepo := func(activeSeats int) *fakeRepo {
		repo := &fakeRepo{
			bookings: []*domain.Booking{{
				ID: 1, TenantID: 7, ResourceID: 1,
				Start: start, End: start.Add(time.Hour),
				Status:  domain.StatusConfirmed,
				IsGroup: true,
			}},
			nextBookingID: 1,
		}
		for i := 0; i < activeSeats; i++ {
			repo.nextPartID++
			repo.participations = append(repo.participations, &domain.Participation{
				ID: repo.nextPartID, BookingID: 1,
				ParticipantID:   int64(200 + i),
				ParticipantKind: domain.ParticipantKindClient,
				Status:          domain.StatusConfirmed,
			})
		}
		return repo
	}

	t.Run("join while seats remain", func(t *testing.T) {
		repo := groupRepo(2)
		uc, events := newUseCase(repo, policy, true)

		resp, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)

		// присоединение к существующему агрегату, нового бронирования нет
		assert.Equal(t, int64(1), resp.BookingID)
		assert.Len(t, repo.bookings, 1)
		assert.Equal(t, string(domain.StatusConfirmed), resp.ParticipationStatus)
		assert.Equal(t, 1, events.joined)
	})

	t.Run("full group attaches a rejected participation", func(t *testing.T) {
		repo := groupRepo(3)
		uc, events := newUseCase(repo, policy, true)

		resp, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusRejected), resp.ParticipationStatus)
		require.NotNil(t, resp.ParticipationReason)
		assert.Contains(t, *resp.ParticipationReason, "capacity exceeded")
		assert.Equal(t, 1, events.rejected)
		assert.Zero(t, events.joined)

		// агрегат не изменился
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[0].Status)
	})

	t.Run("double join is rejected", func(t *testing.T) {
		repo := groupRepo(1)
		uc, _ := newUseCase(repo, policy, true)
		ctx := context.Background()

		_, err := uc.Execute(ctx, clientRequest(start))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, clientRequest(start))
		assert.ErrorIs(t, err, ErrAlreadyParticipating)
	})
}

func TestExecute_GroupJoinMirrorsBookingStatus(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	policy := &domain.Policy{SlotDurationMinutes: 60, MaxParticipants: ptr.Ptr(3), RequiresConfirmation: true}

	seed := func(status domain.BookingStatus) *fakeRepo {
		return &fakeRepo{
			bookings: []*domain.Booking{{
				ID: 1, TenantID: 7, ResourceID: 1,
				Start: start, End: start.Add(time.Hour),
				Status:  status,
				IsGroup: true,
			}},
			nextBookingID: 1,
		}
	}

	t.Run("client joining a confirmed group is confirmed", func(t *testing.T) {
		uc, _ := newUseCase(seed(domain.StatusConfirmed), policy, true)
		resp, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.ParticipationStatus)
	})

	t.Run("client joining a pending group stays pending", func(t *testing.T) {
		uc, _ := newUseCase(seed(domain.StatusPending), policy, true)
		resp, err := uc.Execute(context.Background(), clientRequest(start))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), resp.ParticipationStatus)
	})

	t.Run("admin joining a pending group is confirmed", func(t *testing.T) {
		uc, _ := newUseCase(seed(domain.StatusPending), policy, true)
		req := clientRequest(start)
		req.Actor = domain.ActorAdmin
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.ParticipationStatus)
	})
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc, _ := newUseCase(&fakeRepo{}, &domain.Policy{SlotDurationMinutes: 60}, true)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero resource", req: &Request{Start: testNow.Add(time.Hour), Participant: domain.ParticipantRef{ID: 1, Kind: "client"}, Actor: domain.ActorClient}},
		{name: "zero start", req: &Request{ResourceID: 1, Participant: domain.ParticipantRef{ID: 1, Kind: "client"}, Actor: domain.ActorClient}},
		{name: "no participant", req: &Request{ResourceID: 1, Start: testNow.Add(time.Hour), Actor: domain.ActorClient}},
		{name: "bad actor", req: &Request{ResourceID: 1, Start: testNow.Add(time.Hour), Participant: domain.ParticipantRef{ID: 1, Kind: "client"}, Actor: "robot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
