package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/repository"
)

// MaxFlightNumberLength matches the width of Flight.flightNum.
const MaxFlightNumberLength = 8

type FlightUseCase interface {
	Get(ctx context.Context, number string) (*domain.Flight, error)
	Describe(ctx context.Context, number string) (*repository.Result, error)
	Create(ctx context.Context, flight domain.Flight) error
	Update(ctx context.Context, flight domain.Flight) error
	CheckAirline(ctx context.Context, airlineID int) error
	Airlines(ctx context.Context) (*repository.Result, error)
	Between(ctx context.Context, origin, destination string) (*repository.Result, error)
	MostPopularDestinations(ctx context.Context, k int) ([]domain.DestinationPopularity, error)
	HighestRated(ctx context.Context, k int) ([]domain.RouteRating, error)
	ByDuration(ctx context.Context, origin, destination string, k int) ([]domain.FlightListing, error)
	OriginExists(ctx context.Context, origin string) (bool, error)
	DestinationExists(ctx context.Context, destination string) (bool, error)
	SeatAvailability(ctx context.Context, number string, departure time.Time) (*domain.SeatReport, error)
}

type FlightService struct {
	flights  repository.FlightRepository
	airlines repository.AirlineRepository
	bookings repository.BookingRepository
	log      *slog.Logger
}

type FlightServiceOption func(*FlightService)

func WithLogger(logger *slog.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = logger
	}
}

func NewFlightService(
	flights repository.FlightRepository,
	airlines repository.AirlineRepository,
	bookings repository.BookingRepository,
	opts ...FlightServiceOption,
) *FlightService {
	s := &FlightService{
		flights:  flights,
		airlines: airlines,
		bookings: bookings,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Get(ctx context.Context, number string) (*domain.Flight, error) {
	return s.flights.GetByNumber(ctx, strings.TrimSpace(number))
}

// Describe returns the full Flight row for display.
func (s *FlightService) Describe(ctx context.Context, number string) (*repository.Result, error) {
	return s.flights.Table(ctx, strings.TrimSpace(number))
}

func (s *FlightService) CheckAirline(ctx context.Context, airlineID int) error {
	ok, err := s.airlines.Exists(ctx, airlineID)
	if err != nil {
		return fmt.Errorf("check airline: %w", err)
	}
	if !ok {
		return domain.ErrAirlineNotFound
	}
	return nil
}

func (s *FlightService) Airlines(ctx context.Context) (*repository.Result, error) {
	return s.airlines.Table(ctx)
}

func (s *FlightService) Create(ctx context.Context, flight domain.Flight) error {
	flight.Number = strings.TrimSpace(flight.Number)
	if err := ValidateNumber(flight.Number); err != nil {
		return err
	}
	if err := ValidateRoute(flight); err != nil {
		return err
	}
	if err := s.CheckAirline(ctx, flight.AirlineID); err != nil {
		return err
	}

	taken, err := s.flights.Exists(ctx, flight.Number)
	if err != nil {
		return fmt.Errorf("check flight number: %w", err)
	}
	if taken {
		return domain.ErrFlightExists
	}

	if err := s.flights.Create(ctx, &flight); err != nil {
		return fmt.Errorf("create flight: %w", err)
	}
	s.log.Info("flight created", slog.String("flight", flight.Number), slog.Int("airline", flight.AirlineID))
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight domain.Flight) error {
	flight.Number = strings.TrimSpace(flight.Number)
	if err := ValidateRoute(flight); err != nil {
		return err
	}
	if err := s.flights.Update(ctx, &flight); err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return err
		}
		return fmt.Errorf("update flight: %w", err)
	}
	s.log.Info("flight updated", slog.String("flight", flight.Number))
	return nil
}

func (s *FlightService) Between(ctx context.Context, origin, destination string) (*repository.Result, error) {
	return s.flights.BetweenTable(ctx, strings.TrimSpace(origin), strings.TrimSpace(destination))
}

func (s *FlightService) MostPopularDestinations(ctx context.Context, k int) ([]domain.DestinationPopularity, error) {
	if err := ValidateLimit(k); err != nil {
		return nil, err
	}
	return s.flights.MostPopularDestinations(ctx, k)
}

func (s *FlightService) HighestRated(ctx context.Context, k int) ([]domain.RouteRating, error) {
	if err := ValidateLimit(k); err != nil {
		return nil, err
	}
	return s.flights.HighestRated(ctx, k)
}

func (s *FlightService) ByDuration(ctx context.Context, origin, destination string, k int) ([]domain.FlightListing, error) {
	if err := ValidateLimit(k); err != nil {
		return nil, err
	}
	return s.flights.ListBetweenByDuration(ctx, strings.TrimSpace(origin), strings.TrimSpace(destination), k)
}

func (s *FlightService) OriginExists(ctx context.Context, origin string) (bool, error) {
	return s.flights.OriginExists(ctx, strings.TrimSpace(origin))
}

func (s *FlightService) DestinationExists(ctx context.Context, destination string) (bool, error) {
	return s.flights.DestinationExists(ctx, strings.TrimSpace(destination))
}

func (s *FlightService) SeatAvailability(ctx context.Context, number string, departure time.Time) (*domain.SeatReport, error) {
	flight, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.CountForDeparture(ctx, flight.Number, departure)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	return &domain.SeatReport{
		Flight:    *flight,
		Departure: departure,
		Booked:    booked,
		Total:     flight.Seats,
		Available: flight.Seats - booked,
	}, nil
}

func ValidateNumber(number string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(number))
	if n == 0 || n > MaxFlightNumberLength {
		return fmt.Errorf("%w: flight number must be 1 to %d characters", domain.ErrInvalidInput, MaxFlightNumberLength)
	}
	return nil
}

// ValidateRoute checks the fields shared by insert and update.
func ValidateRoute(f domain.Flight) error {
	switch {
	case strings.TrimSpace(f.Origin) == "":
		return fmt.Errorf("%w: origin is empty", domain.ErrInvalidInput)
	case strings.TrimSpace(f.Destination) == "":
		return fmt.Errorf("%w: destination is empty", domain.ErrInvalidInput)
	case strings.TrimSpace(f.Plane) == "":
		return fmt.Errorf("%w: plane is empty", domain.ErrInvalidInput)
	case f.Seats < 1:
		return fmt.Errorf("%w: seats must be at least 1", domain.ErrInvalidInput)
	case f.Duration < 1:
		return fmt.Errorf("%w: duration must be at least 1 hour", domain.ErrInvalidInput)
	}
	return nil
}

func ValidateLimit(k int) error {
	if k < 1 {
		return fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
