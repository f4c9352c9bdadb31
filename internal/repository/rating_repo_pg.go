package repository

import (
	"context"

	"github.com/Domenick1991/airbooking-console/internal/domain"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
}

type PGRatingRepository struct {
	db *DB
}

func NewRatingRepository(db *DB) RatingRepository {
	return &PGRatingRepository{db: db}
}

// Create inserts the rating; rID is assigned by rID_trigger and read back.
func (r *PGRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	row := r.db.queryRow(ctx, Stmt(`INSERT INTO Ratings (pID, flightNum, score, comment) VALUES ($1, $2, $3, $4) RETURNING rID`,
		rating.PassengerID, rating.FlightNumber, rating.Score, rating.Comment))
	return row.Scan(&rating.ID)
}

var _ RatingRepository = (*PGRatingRepository)(nil)
