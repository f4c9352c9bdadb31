package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) ListBetween(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListBetweenByDuration(ctx context.Context, origin, destination string, limit int) ([]domain.FlightListing, error) {
	args := m.Called(ctx, origin, destination, limit)
	return args.Get(0).([]domain.FlightListing), args.Error(1)
}

func (m *MockFlightRepository) OriginExists(ctx context.Context, origin string) (bool, error) {
	args := m.Called(ctx, origin)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) DestinationExists(ctx context.Context, destination string) (bool, error) {
	args := m.Called(ctx, destination)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) MostPopularDestinations(ctx context.Context, limit int) ([]domain.DestinationPopularity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.DestinationPopularity), args.Error(1)
}

func (m *MockFlightRepository) HighestRated(ctx context.Context, limit int) ([]domain.RouteRating, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.RouteRating), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) BetweenTable(ctx context.Context, origin, destination string) (*repository.Result, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

func (m *MockFlightRepository) Table(ctx context.Context, number string) (*repository.Result, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

type MockAirlineRepository struct {
	mock.Mock
}

func (m *MockAirlineRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAirlineRepository) Table(ctx context.Context) (*repository.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CountForDeparture(ctx context.Context, flightNumber string, departure time.Time) (int, error) {
	args := m.Called(ctx, flightNumber, departure)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) Exists(ctx context.Context, flightNumber string, departure time.Time, passengerID int) (bool, error) {
	args := m.Called(ctx, flightNumber, departure, passengerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ExistsForPassenger(ctx context.Context, flightNumber string, passengerID int) (bool, error) {
	args := m.Called(ctx, flightNumber, passengerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func newService() (*FlightService, *MockFlightRepository, *MockAirlineRepository, *MockBookingRepository) {
	f, a, b := &MockFlightRepository{}, &MockAirlineRepository{}, &MockBookingRepository{}
	return NewFlightService(f, a, b), f, a, b
}

var newFlight = domain.Flight{AirlineID: 3, Number: "UA901", Origin: "Denver", Destination: "Tokyo", Plane: "B787", Seats: 250, Duration: 12}

func TestFlightService_Create_Success(t *testing.T) {
	service, flights, airlines, _ := newService()
	ctx := context.Background()

	airlines.On("Exists", ctx, 3).Return(true, nil).Once()
	flights.On("Exists", ctx, "UA901").Return(false, nil).Once()
	flights.On("Create", ctx, &newFlight).Return(nil).Once()

	require.NoError(t, service.Create(ctx, newFlight))
	flights.AssertExpectations(t)
	airlines.AssertExpectations(t)
}

func TestFlightService_Create_UnknownAirline(t *testing.T) {
	service, flights, airlines, _ := newService()
	ctx := context.Background()

	airlines.On("Exists", ctx, 3).Return(false, nil).Once()

	err := service.Create(ctx, newFlight)
	assert.ErrorIs(t, err, domain.ErrAirlineNotFound)
	flights.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_Create_NumberTaken(t *testing.T) {
	service, flights, airlines, _ := newService()
	ctx := context.Background()

	airlines.On("Exists", ctx, 3).Return(true, nil).Once()
	flights.On("Exists", ctx, "UA901").Return(true, nil).Once()

	err := service.Create(ctx, newFlight)
	assert.ErrorIs(t, err, domain.ErrFlightExists)
	flights.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Flight)
		errMsg string
	}{
		{"empty number", func(f *domain.Flight) { f.Number = " " }, "flight number"},
		{"long number", func(f *domain.Flight) { f.Number = "ABCDEFGHI" }, "flight number"},
		{"no origin", func(f *domain.Flight) { f.Origin = "" }, "origin is empty"},
		{"no destination", func(f *domain.Flight) { f.Destination = "" }, "destination is empty"},
		{"no plane", func(f *domain.Flight) { f.Plane = "" }, "plane is empty"},
		{"zero seats", func(f *domain.Flight) { f.Seats = 0 }, "seats must be at least 1"},
		{"zero duration", func(f *domain.Flight) { f.Duration = 0 }, "duration must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, flights, airlines, _ := newService()
			f := newFlight
			tt.mutate(&f)

			err := service.Create(context.Background(), f)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.errMsg)
			airlines.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
			flights.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestFlightService_Update(t *testing.T) {
	service, flights, _, _ := newService()
	ctx := context.Background()

	updated := newFlight
	updated.Seats = 300
	flights.On("Update", ctx, &updated).Return(nil).Once()
	require.NoError(t, service.Update(ctx, updated))

	missing := newFlight
	missing.Number = "ZZ1"
	flights.On("Update", ctx, &missing).Return(domain.ErrFlightNotFound).Once()
	assert.ErrorIs(t, service.Update(ctx, missing), domain.ErrFlightNotFound)

	bad := newFlight
	bad.Duration = -2
	assert.ErrorIs(t, service.Update(ctx, bad), domain.ErrInvalidInput)
	flights.AssertExpectations(t)
}

func TestFlightService_Limits(t *testing.T) {
	service, flights, _, _ := newService()
	ctx := context.Background()

	_, err := service.MostPopularDestinations(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = service.HighestRated(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = service.ByDuration(ctx, "Denver", "Tokyo", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	popular := []domain.DestinationPopularity{{Destination: "Tokyo", Flights: 3}}
	flights.On("MostPopularDestinations", ctx, 2).Return(popular, nil).Once()
	got, err := service.MostPopularDestinations(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, popular, got)

	listings := []domain.FlightListing{{AirlineName: "United", Flight: newFlight}}
	flights.On("ListBetweenByDuration", ctx, "Denver", "Tokyo", 5).Return(listings, nil).Once()
	byDuration, err := service.ByDuration(ctx, " Denver", "Tokyo ", 5)
	require.NoError(t, err)
	assert.Equal(t, listings, byDuration)
	flights.AssertExpectations(t)
}

func TestFlightService_SeatAvailability(t *testing.T) {
	service, flights, _, bookings := newService()
	ctx := context.Background()
	day := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)

	f := newFlight
	flights.On("GetByNumber", ctx, "UA901").Return(&f, nil).Once()
	bookings.On("CountForDeparture", ctx, "UA901", day).Return(40, nil).Once()

	report, err := service.SeatAvailability(ctx, "UA901", day)
	require.NoError(t, err)
	assert.Equal(t, 40, report.Booked)
	assert.Equal(t, 250, report.Total)
	assert.Equal(t, 210, report.Available)
	assert.Equal(t, "Denver", report.Flight.Origin)
}

func TestFlightService_SeatAvailability_UnknownFlight(t *testing.T) {
	service, flights, _, bookings := newService()
	ctx := context.Background()

	flights.On("GetByNumber", ctx, "NOPE").Return(nil, domain.ErrFlightNotFound).Once()

	_, err := service.SeatAvailability(ctx, "NOPE", time.Now())
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	bookings.AssertNotCalled(t, "CountForDeparture", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_CheckAirline_Error(t *testing.T) {
	service, _, airlines, _ := newService()
	ctx := context.Background()

	airlines.On("Exists", ctx, 9).Return(false, errors.New("timeout")).Once()
	assert.ErrorContains(t, service.CheckAirline(ctx, 9), "check airline: timeout")
}

func TestValidateNumber(t *testing.T) {
	assert.NoError(t, ValidateNumber("AA100"))
	assert.NoError(t, ValidateNumber("ÅÅÅÅÅÅÅÅ"))
	assert.ErrorIs(t, ValidateNumber("ÅÅÅÅÅÅÅÅÅ"), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateNumber("  "), domain.ErrInvalidInput)
}
