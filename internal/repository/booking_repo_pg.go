package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/domain"
)

type BookingRepository interface {
	CountForDeparture(ctx context.Context, flightNumber string, departure time.Time) (int, error)
	Exists(ctx context.Context, flightNumber string, departure time.Time, passengerID int) (bool, error)
	ExistsForPassenger(ctx context.Context, flightNumber string, passengerID int) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) error
}

type PGBookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CountForDeparture(ctx context.Context, flightNumber string, departure time.Time) (int, error) {
	return r.db.Count(ctx, Stmt(`SELECT COUNT(*) FROM Booking WHERE flightNum = $1 AND departure = $2`, flightNumber, departure))
}

func (r *PGBookingRepository) Exists(ctx context.Context, flightNumber string, departure time.Time, passengerID int) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Booking WHERE flightNum = $1 AND departure = $2 AND pID = $3)`, flightNumber, departure, passengerID))
}

func (r *PGBookingRepository) ExistsForPassenger(ctx context.Context, flightNumber string, passengerID int) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Booking WHERE flightNum = $1 AND pID = $2)`, flightNumber, passengerID))
}

// Create inserts the booking; bookRef is assigned by bookRef_trigger and read back.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	row := r.db.queryRow(ctx, Stmt(`INSERT INTO Booking (departure, flightNum, pID) VALUES ($1, $2, $3) RETURNING bookRef`,
		booking.Departure, booking.FlightNumber, booking.PassengerID))
	if err := row.Scan(&booking.Reference); err != nil {
		return err
	}
	booking.Reference = strings.TrimSpace(booking.Reference)
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
