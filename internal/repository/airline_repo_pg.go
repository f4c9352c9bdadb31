package repository

import (
	"context"
)

type AirlineRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Table(ctx context.Context) (*Result, error)
}

type PGAirlineRepository struct {
	db *DB
}

func NewAirlineRepository(db *DB) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Airline WHERE airId = $1)`, id))
}

// Table returns every Airline column for display.
func (r *PGAirlineRepository) Table(ctx context.Context) (*Result, error) {
	return r.db.QueryResult(ctx, Stmt(`SELECT * FROM Airline ORDER BY airId`))
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
