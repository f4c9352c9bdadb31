package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/kafka"
	"github.com/Domenick1991/airbooking-console/internal/repository"
)

// MinDepartureYear is the last year a departure may not fall in.
const MinDepartureYear = 2016

type BookingUseCase interface {
	SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	Availability(ctx context.Context, flight domain.Flight, departure time.Time) (int, error)
	Book(ctx context.Context, input BookInput) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookInput struct {
	Passenger domain.Passenger
	Flight    domain.Flight
	Departure time.Time
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *slog.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = logger
	}
}

// NewBookingService builds the service; producer may be nil when events are disabled.
func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	flights, err := s.flights.ListBetween(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	if len(flights) == 0 {
		return nil, domain.ErrNoFlights
	}
	return flights, nil
}

// Availability returns the seats left on flight for the departure date.
func (s *BookingService) Availability(ctx context.Context, flight domain.Flight, departure time.Time) (int, error) {
	booked, err := s.bookings.CountForDeparture(ctx, flight.Number, departure)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return flight.Seats - booked, nil
}

func (s *BookingService) Book(ctx context.Context, input BookInput) (*domain.Booking, error) {
	left, err := s.Availability(ctx, input.Flight, input.Departure)
	if err != nil {
		return nil, err
	}
	if left <= 0 {
		return nil, domain.ErrFullyBooked
	}

	dup, err := s.bookings.Exists(ctx, input.Flight.Number, input.Departure, input.Passenger.ID)
	if err != nil {
		return nil, fmt.Errorf("check booking: %w", err)
	}
	if dup {
		return nil, domain.ErrAlreadyBooked
	}

	booking := &domain.Booking{
		Departure:    input.Departure,
		FlightNumber: input.Flight.Number,
		PassengerID:  input.Passenger.ID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.log.Info("booking created",
		slog.String("ref", booking.Reference),
		slog.String("flight", booking.FlightNumber),
		slog.Int("pid", booking.PassengerID))

	if err := s.publish(ctx, booking, input); err != nil {
		s.log.Warn("failed to publish booking_created", slog.String("ref", booking.Reference), slog.Any("error", err))
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, booking *domain.Booking, input BookInput) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	env, err := kafka.NewEnvelope(kafka.EventBookingCreated, kafka.BookingEvent{
		BookingRef:    booking.Reference,
		FlightNumber:  booking.FlightNumber,
		Origin:        input.Flight.Origin,
		Destination:   input.Flight.Destination,
		PassengerID:   input.Passenger.ID,
		PassengerName: input.Passenger.FullName,
		Departure:     booking.Departure.Format(domain.DepartureLayout),
	})
	if err != nil {
		return err
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, env); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, env)
	}
	return nil
}

// ParseDeparture checks each part of a departure date and that the day exists in that month.
func ParseDeparture(year, month, day int) (time.Time, error) {
	if err := ValidateYear(year); err != nil {
		return time.Time{}, err
	}
	if err := ValidateMonth(month); err != nil {
		return time.Time{}, err
	}
	if err := ValidateDay(day); err != nil {
		return time.Time{}, err
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d-%02d-%02d is not a calendar date", domain.ErrInvalidInput, year, month, day)
	}
	return d, nil
}

func ValidateYear(year int) error {
	if year <= MinDepartureYear {
		return fmt.Errorf("%w: year must be after %d", domain.ErrInvalidInput, MinDepartureYear)
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	return nil
}

func ValidateDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: day must be between 1 and 31", domain.ErrInvalidInput)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
