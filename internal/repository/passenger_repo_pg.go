package repository

import (
	"context"
	"strings"

	"github.com/Domenick1991/airbooking-console/internal/domain"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	FindByNameAndPassport(ctx context.Context, fullName, passport string) (*domain.Passenger, error)
	FindByName(ctx context.Context, fullName string) (*domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *DB
}

func NewPassengerRepository(db *DB) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `pID, passNum, fullName, bdate, country`

// Create inserts the passenger; pID is assigned by pID_trigger and read back.
func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	row := r.db.queryRow(ctx, Stmt(`INSERT INTO Passenger (passNum, fullName, bdate, country) VALUES ($1, $2, $3, $4) RETURNING pID`,
		p.PassportNumber, p.FullName, p.BirthDate, p.Country))
	return row.Scan(&p.ID)
}

func (r *PGPassengerRepository) FindByNameAndPassport(ctx context.Context, fullName, passport string) (*domain.Passenger, error) {
	return r.findOne(ctx, Stmt(`SELECT `+passengerColumns+` FROM Passenger WHERE fullName = $1 AND passNum = $2 ORDER BY pID LIMIT 1`, fullName, passport))
}

// FindByName returns the lowest-numbered passenger with that name.
func (r *PGPassengerRepository) FindByName(ctx context.Context, fullName string) (*domain.Passenger, error) {
	return r.findOne(ctx, Stmt(`SELECT `+passengerColumns+` FROM Passenger WHERE fullName = $1 ORDER BY pID LIMIT 1`, fullName))
}

func (r *PGPassengerRepository) findOne(ctx context.Context, st Statement) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := r.db.queryRow(ctx, st).Scan(&p.ID, &p.PassportNumber, &p.FullName, &p.BirthDate, &p.Country); err != nil {
		return nil, notFound(err, domain.ErrPassengerNotFound)
	}
	p.PassportNumber = strings.TrimSpace(p.PassportNumber)
	p.FullName = strings.TrimSpace(p.FullName)
	p.Country = strings.TrimSpace(p.Country)
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
