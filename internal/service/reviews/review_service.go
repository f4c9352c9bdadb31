package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/kafka"
	"github.com/Domenick1991/airbooking-console/internal/repository"
)

type ReviewUseCase interface {
	CheckBooking(ctx context.Context, passengerID int, flightNumber string) error
	Submit(ctx context.Context, input SubmitReviewInput) (*domain.Rating, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SubmitReviewInput struct {
	PassengerID  int
	FlightNumber string
	Score        int
	Comment      string
}

type ReviewService struct {
	ratings  repository.RatingRepository
	bookings repository.BookingRepository
	producer Producer
	topic    string
	log      *slog.Logger
}

type ReviewServiceOption func(*ReviewService)

func WithLogger(logger *slog.Logger) ReviewServiceOption {
	return func(s *ReviewService) {
		s.log = logger
	}
}

func NewReviewService(
	ratings repository.RatingRepository,
	bookings repository.BookingRepository,
	producer Producer,
	topic string,
	opts ...ReviewServiceOption,
) *ReviewService {
	s := &ReviewService{
		ratings:  ratings,
		bookings: bookings,
		producer: producer,
		topic:    topic,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckBooking returns domain.ErrNoBooking unless the passenger has booked the flight at least once.
func (s *ReviewService) CheckBooking(ctx context.Context, passengerID int, flightNumber string) error {
	ok, err := s.bookings.ExistsForPassenger(ctx, strings.TrimSpace(flightNumber), passengerID)
	if err != nil {
		return fmt.Errorf("check booking: %w", err)
	}
	if !ok {
		return domain.ErrNoBooking
	}
	return nil
}

func (s *ReviewService) Submit(ctx context.Context, input SubmitReviewInput) (*domain.Rating, error) {
	if err := ValidateScore(input.Score); err != nil {
		return nil, err
	}
	if err := s.CheckBooking(ctx, input.PassengerID, input.FlightNumber); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		PassengerID:  input.PassengerID,
		FlightNumber: strings.TrimSpace(input.FlightNumber),
		Score:        input.Score,
		Comment:      strings.TrimSpace(input.Comment),
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	s.log.Info("rating stored", slog.Int("rid", rating.ID), slog.String("flight", rating.FlightNumber))

	if err := s.publish(ctx, rating); err != nil {
		s.log.Warn("failed to publish review_submitted", slog.Int("rid", rating.ID), slog.Any("error", err))
	}
	return rating, nil
}

func (s *ReviewService) publish(ctx context.Context, rating *domain.Rating) error {
	if s.producer == nil || s.topic == "" {
		return nil
	}
	env, err := kafka.NewEnvelope(kafka.EventReviewSubmitted, kafka.ReviewEvent{
		RatingID:     rating.ID,
		PassengerID:  rating.PassengerID,
		FlightNumber: rating.FlightNumber,
		Score:        rating.Score,
	})
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, s.topic, strconv.Itoa(rating.ID), env)
}

func ValidateScore(score int) error {
	if score < domain.MinScore || score > domain.MaxScore {
		return fmt.Errorf("%w: score must be between %d and %d", domain.ErrInvalidInput, domain.MinScore, domain.MaxScore)
	}
	return nil
}

var _ ReviewUseCase = (*ReviewService)(nil)
