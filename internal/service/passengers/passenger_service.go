package passengers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/repository"
)

type PassengerUseCase interface {
	Add(ctx context.Context, input AddPassengerInput) (*domain.Passenger, error)
	Identify(ctx context.Context, fullName, passport string) (*domain.Passenger, error)
	FindByName(ctx context.Context, fullName string) (*domain.Passenger, error)
}

type AddPassengerInput struct {
	FirstName      string
	LastName       string
	BirthDate      string
	PassportNumber string
	Country        string
}

type PassengerService struct {
	repo repository.PassengerRepository
	now  func() time.Time
	log  *slog.Logger
}

type PassengerServiceOption func(*PassengerService)

func WithClock(now func() time.Time) PassengerServiceOption {
	return func(s *PassengerService) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) PassengerServiceOption {
	return func(s *PassengerService) {
		s.log = logger
	}
}

func NewPassengerService(repo repository.PassengerRepository, opts ...PassengerServiceOption) *PassengerService {
	s := &PassengerService{repo: repo, now: time.Now, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PassengerService) Add(ctx context.Context, input AddPassengerInput) (*domain.Passenger, error) {
	if err := ValidateName(input.FirstName); err != nil {
		return nil, err
	}
	if err := ValidateName(input.LastName); err != nil {
		return nil, err
	}
	bdate, err := ParseBirthDate(input.BirthDate, s.now())
	if err != nil {
		return nil, err
	}
	if err := ValidatePassport(input.PassportNumber); err != nil {
		return nil, err
	}
	if err := ValidateCountry(input.Country); err != nil {
		return nil, err
	}

	p := &domain.Passenger{
		FullName:       FullName(input.FirstName, input.LastName),
		BirthDate:      bdate,
		PassportNumber: strings.TrimSpace(input.PassportNumber),
		Country:        strings.TrimSpace(input.Country),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("add passenger: %w", err)
	}
	s.log.Info("passenger added", slog.Int("pid", p.ID))
	return p, nil
}

func (s *PassengerService) Identify(ctx context.Context, fullName, passport string) (*domain.Passenger, error) {
	return s.repo.FindByNameAndPassport(ctx, strings.TrimSpace(fullName), strings.TrimSpace(passport))
}

func (s *PassengerService) FindByName(ctx context.Context, fullName string) (*domain.Passenger, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: full name is empty", domain.ErrInvalidInput)
	}
	return s.repo.FindByName(ctx, strings.TrimSpace(fullName))
}

func FullName(first, last string) string {
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", domain.ErrInvalidInput)
	}
	return nil
}

func ValidateCountry(country string) error {
	if strings.TrimSpace(country) == "" {
		return fmt.Errorf("%w: country is empty", domain.ErrInvalidInput)
	}
	return nil
}

func ValidatePassport(passport string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(passport))
	if n == 0 || n > domain.MaxPassportLength {
		return fmt.Errorf("%w: passport number must be 1 to %d characters", domain.ErrInvalidInput, domain.MaxPassportLength)
	}
	return nil
}

// ParseBirthDate accepts mm/dd/yyyy and rejects dates after now.
func ParseBirthDate(s string, now time.Time) (time.Time, error) {
	d, err := time.Parse(domain.BirthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth date must be mm/dd/yyyy", domain.ErrInvalidInput)
	}
	if d.After(now) {
		return time.Time{}, fmt.Errorf("%w: birth date is in the future", domain.ErrInvalidInput)
	}
	return d, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
