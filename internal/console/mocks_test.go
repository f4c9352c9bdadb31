package console

import (
	"context"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/Domenick1991/airbooking-console/internal/service/booking"
	"github.com/Domenick1991/airbooking-console/internal/service/passengers"
	"github.com/Domenick1991/airbooking-console/internal/service/reviews"
	"github.com/stretchr/testify/mock"
)

type MockPassengers struct {
	mock.Mock
}

func (m *MockPassengers) Add(ctx context.Context, input passengers.AddPassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengers) Identify(ctx context.Context, fullName, passport string) (*domain.Passenger, error) {
	args := m.Called(ctx, fullName, passport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengers) FindByName(ctx context.Context, fullName string) (*domain.Passenger, error) {
	args := m.Called(ctx, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockBookings) Availability(ctx context.Context, flight domain.Flight, departure time.Time) (int, error) {
	args := m.Called(ctx, flight, departure)
	return args.Int(0), args.Error(1)
}

func (m *MockBookings) Book(ctx context.Context, input booking.BookInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockReviews struct {
	mock.Mock
}

func (m *MockReviews) CheckBooking(ctx context.Context, passengerID int, flightNumber string) error {
	args := m.Called(ctx, passengerID, flightNumber)
	return args.Error(0)
}

func (m *MockReviews) Submit(ctx context.Context, input reviews.SubmitReviewInput) (*domain.Rating, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

type MockFlights struct {
	mock.Mock
}

func (m *MockFlights) Get(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlights) Describe(ctx context.Context, number string) (*repository.Result, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

func (m *MockFlights) Create(ctx context.Context, flight domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlights) Update(ctx context.Context, flight domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlights) CheckAirline(ctx context.Context, airlineID int) error {
	args := m.Called(ctx, airlineID)
	return args.Error(0)
}

func (m *MockFlights) Airlines(ctx context.Context) (*repository.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

func (m *MockFlights) Between(ctx context.Context, origin, destination string) (*repository.Result, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Result), args.Error(1)
}

func (m *MockFlights) MostPopularDestinations(ctx context.Context, k int) ([]domain.DestinationPopularity, error) {
	args := m.Called(ctx, k)
	return args.Get(0).([]domain.DestinationPopularity), args.Error(1)
}

func (m *MockFlights) HighestRated(ctx context.Context, k int) ([]domain.RouteRating, error) {
	args := m.Called(ctx, k)
	return args.Get(0).([]domain.RouteRating), args.Error(1)
}

func (m *MockFlights) ByDuration(ctx context.Context, origin, destination string, k int) ([]domain.FlightListing, error) {
	args := m.Called(ctx, origin, destination, k)
	return args.Get(0).([]domain.FlightListing), args.Error(1)
}

func (m *MockFlights) OriginExists(ctx context.Context, origin string) (bool, error) {
	args := m.Called(ctx, origin)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlights) DestinationExists(ctx context.Context, destination string) (bool, error) {
	args := m.Called(ctx, destination)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlights) SeatAvailability(ctx context.Context, number string, departure time.Time) (*domain.SeatReport, error) {
	args := m.Called(ctx, number, departure)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatReport), args.Error(1)
}
