package services_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-connect/backend/internal/application/services"
	"github.com/lifeline-connect/backend/internal/domain/entities"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

// Mocks

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByToken(ctx context.Context, token string) (*entities.Appointment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(<-chan *entities.BookingEvent), args.Error(1)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

// memoryAppointmentStore is an in-process store for round-trip tests.
// A single mutex serializes writes the way the durable adapter relies on
// the database to do.
type memoryAppointmentStore struct {
	mu      sync.Mutex
	records []*entities.Appointment
}

func (s *memoryAppointmentStore) Create(_ context.Context, appointment *entities.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Token == appointment.Token {
			return apperrors.NewStorageError("duplicate token", nil)
		}
	}
	snapshot := *appointment
	s.records = append(s.records, &snapshot)
	return nil
}

func (s *memoryAppointmentStore) GetByToken(_ context.Context, token string) (*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Token == token {
			snapshot := *r
			return &snapshot, nil
		}
	}
	return nil, apperrors.NewNotFoundError("appointment not found")
}

func (s *memoryAppointmentStore) ListByUser(_ context.Context, userID string) ([]*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Appointment
	for _, r := range s.records {
		if r.UserID == userID {
			snapshot := *r
			out = append(out, &snapshot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func validRequest() services.BookingRequest {
	return services.BookingRequest{
		FacilityID:   "facility-1",
		FacilityName: "City Care Hospital",
		Date:         "2025-03-01",
		Time:         "10:00 AM",
		Specialist:   "Cardiologist",
		Notes:        "first visit",
	}
}

// Tests

func TestBookingService_BookAppointment(t *testing.T) {
	t.Run("successfully books appointment", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewBookingService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.Status == entities.AppointmentStatusConfirmed &&
				a.UserID == "user-1" &&
				a.FacilityName == "City Care Hospital" &&
				a.Token != ""
		})).Return(nil)

		appointment, err := service.BookAppointment(context.Background(), "user-1", validRequest())

		require.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusConfirmed, appointment.Status)
		assert.NotEmpty(t, appointment.Token)
		assert.Equal(t, "2025-03-01", appointment.Date)
		assert.Equal(t, "10:00 AM", appointment.Time)
		assert.Equal(t, "Cardiologist", appointment.Specialist)
		repo.AssertExpectations(t)
	})

	t.Run("each booking gets a distinct token", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewBookingService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		first, err := service.BookAppointment(context.Background(), "user-1", validRequest())
		require.NoError(t, err)
		second, err := service.BookAppointment(context.Background(), "user-1", validRequest())
		require.NoError(t, err)

		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("fails validation on missing required fields", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewBookingService(repo)

		for _, mutate := range []func(*services.BookingRequest){
			func(r *services.BookingRequest) { r.Date = "" },
			func(r *services.BookingRequest) { r.Time = "  " },
			func(r *services.BookingRequest) { r.Specialist = "" },
			func(r *services.BookingRequest) { r.FacilityID = "" },
		} {
			req := validRequest()
			mutate(&req)

			_, err := service.BookAppointment(context.Background(), "user-1", req)

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		}
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("surfaces storage failure and creates nothing", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewBookingService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewStorageError("write failed", nil))

		appointment, err := service.BookAppointment(context.Background(), "user-1", validRequest())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
		assert.Nil(t, appointment)
		repo.AssertNumberOfCalls(t, "Create", 1) // no retry
	})

	t.Run("publishes booking event when bus is configured", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		eventBus := new(MockEventBus)
		service := services.NewBookingService(repo)
		service.SetEventBus(eventBus)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		eventBus.On("Publish", mock.Anything, "bookings:facility-1", mock.MatchedBy(func(e *entities.BookingEvent) bool {
			return e.EventType == entities.BookingEventTypeCreated && e.FacilityID == "facility-1"
		})).Return(nil)

		_, err := service.BookAppointment(context.Background(), "user-1", validRequest())

		require.NoError(t, err)
		eventBus.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		eventBus := new(MockEventBus)
		service := services.NewBookingService(repo)
		service.SetEventBus(eventBus)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything, mock.Anything).
			Return(apperrors.NewExternalError("bus down", nil))

		appointment, err := service.BookAppointment(context.Background(), "user-1", validRequest())

		require.NoError(t, err)
		assert.NotNil(t, appointment)
	})
}

func TestBookingService_RoundTrip(t *testing.T) {
	store := &memoryAppointmentStore{}
	service := services.NewBookingService(store)

	first, err := service.BookAppointment(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	secondReq := validRequest()
	secondReq.Date = "2025-04-01"
	second, err := service.BookAppointment(context.Background(), "user-1", secondReq)
	require.NoError(t, err)

	listed, err := service.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, second.Token, listed[0].Token, "most recent booking first")
	assert.Equal(t, first.Token, listed[1].Token)

	// All fields round-trip losslessly.
	assert.Equal(t, first.FacilityID, listed[1].FacilityID)
	assert.Equal(t, first.FacilityName, listed[1].FacilityName)
	assert.Equal(t, first.Date, listed[1].Date)
	assert.Equal(t, first.Time, listed[1].Time)
	assert.Equal(t, first.Specialist, listed[1].Specialist)
	assert.Equal(t, first.Notes, listed[1].Notes)
	assert.Equal(t, first.Status, listed[1].Status)
}

func TestBookingService_ConcurrentBookingsNeverCollide(t *testing.T) {
	store := &memoryAppointmentStore{}
	service := services.NewBookingService(store)

	const workers = 10
	const perWorker = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := service.BookAppointment(context.Background(), "user-1", validRequest()); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent booking failed: %v", err)
	}

	listed, err := service.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, listed, workers*perWorker, "no booking lost or overwritten")
}
