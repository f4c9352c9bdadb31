package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/airbooking-console/internal/domain"
)

type FlightRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Exists(ctx context.Context, number string) (bool, error)
	ListBetween(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	ListBetweenByDuration(ctx context.Context, origin, destination string, limit int) ([]domain.FlightListing, error)
	OriginExists(ctx context.Context, origin string) (bool, error)
	DestinationExists(ctx context.Context, destination string) (bool, error)
	MostPopularDestinations(ctx context.Context, limit int) ([]domain.DestinationPopularity, error)
	HighestRated(ctx context.Context, limit int) ([]domain.RouteRating, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	BetweenTable(ctx context.Context, origin, destination string) (*Result, error)
	Table(ctx context.Context, number string) (*Result, error)
}

type PGFlightRepository struct {
	db *DB
}

func NewFlightRepository(db *DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `airId, flightNum, origin, destination, plane, seats, duration`

func (r *PGFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	row := r.db.queryRow(ctx, Stmt(`SELECT `+flightColumns+` FROM Flight WHERE flightNum = $1`, number))
	f, err := scanFlight(row)
	if err != nil {
		return nil, notFound(err, domain.ErrFlightNotFound)
	}
	return f, nil
}

func (r *PGFlightRepository) Exists(ctx context.Context, number string) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Flight WHERE flightNum = $1)`, number))
}

func (r *PGFlightRepository) ListBetween(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	rows, err := r.db.query(ctx, Stmt(`SELECT `+flightColumns+` FROM Flight WHERE origin = $1 AND destination = $2 ORDER BY flightNum`, origin, destination))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) ListBetweenByDuration(ctx context.Context, origin, destination string, limit int) ([]domain.FlightListing, error) {
	rows, err := r.db.query(ctx, Stmt(`SELECT A.name, F.airId, F.flightNum, F.origin, F.destination, F.plane, F.seats, F.duration
		FROM Flight F JOIN Airline A ON A.airId = F.airId
		WHERE F.origin = $1 AND F.destination = $2
		ORDER BY F.duration ASC, F.flightNum
		LIMIT $3`, origin, destination, limit))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	listings := make([]domain.FlightListing, 0)
	for rows.Next() {
		var l domain.FlightListing
		f := &l.Flight
		if err := rows.Scan(&l.AirlineName, &f.AirlineID, &f.Number, &f.Origin, &f.Destination, &f.Plane, &f.Seats, &f.Duration); err != nil {
			return nil, err
		}
		l.AirlineName = strings.TrimSpace(l.AirlineName)
		trimFlight(f)
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *PGFlightRepository) OriginExists(ctx context.Context, origin string) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Flight WHERE origin = $1)`, origin))
}

func (r *PGFlightRepository) DestinationExists(ctx context.Context, destination string) (bool, error) {
	return r.db.Exists(ctx, Stmt(`SELECT EXISTS (SELECT 1 FROM Flight WHERE destination = $1)`, destination))
}

func (r *PGFlightRepository) MostPopularDestinations(ctx context.Context, limit int) ([]domain.DestinationPopularity, error) {
	rows, err := r.db.QueryRows(ctx, Stmt(`SELECT destination, COUNT(*) AS choices FROM Flight GROUP BY destination ORDER BY choices DESC, destination LIMIT $1`, limit))
	if err != nil {
		return nil, err
	}

	result := make([]domain.DestinationPopularity, 0, len(rows))
	for _, row := range rows {
		n, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("parse flight count %q: %w", row[1], err)
		}
		result = append(result, domain.DestinationPopularity{Destination: row[0], Flights: n})
	}
	return result, nil
}

func (r *PGFlightRepository) HighestRated(ctx context.Context, limit int) ([]domain.RouteRating, error) {
	rows, err := r.db.query(ctx, Stmt(`SELECT A.name, F.flightNum, F.origin, F.destination, AVG(R.score)::float8 AS average_score
		FROM Ratings R
		JOIN Flight F ON F.flightNum = R.flightNum
		JOIN Airline A ON A.airId = F.airId
		GROUP BY A.name, F.flightNum, F.origin, F.destination
		ORDER BY average_score DESC, F.flightNum
		LIMIT $1`, limit))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]domain.RouteRating, 0)
	for rows.Next() {
		var rr domain.RouteRating
		if err := rows.Scan(&rr.AirlineName, &rr.FlightNumber, &rr.Origin, &rr.Destination, &rr.AverageScore); err != nil {
			return nil, err
		}
		rr.AirlineName = strings.TrimSpace(rr.AirlineName)
		rr.FlightNumber = strings.TrimSpace(rr.FlightNumber)
		rr.Origin = strings.TrimSpace(rr.Origin)
		rr.Destination = strings.TrimSpace(rr.Destination)
		result = append(result, rr)
	}
	return result, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return r.db.Exec(ctx, Stmt(`INSERT INTO Flight (`+flightColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.AirlineID, f.Number, f.Origin, f.Destination, f.Plane, f.Seats, f.Duration))
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	st := Stmt(`UPDATE Flight SET origin = $1, destination = $2, plane = $3, seats = $4, duration = $5 WHERE flightNum = $6`,
		f.Origin, f.Destination, f.Plane, f.Seats, f.Duration, f.Number)
	n, err := r.db.ExecAffected(ctx, st)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) BetweenTable(ctx context.Context, origin, destination string) (*Result, error) {
	return r.db.QueryResult(ctx, Stmt(`SELECT flightNum, origin, destination, plane, duration FROM Flight WHERE origin = $1 AND destination = $2 ORDER BY flightNum`, origin, destination))
}

func (r *PGFlightRepository) Table(ctx context.Context, number string) (*Result, error) {
	return r.db.QueryResult(ctx, Stmt(`SELECT `+flightColumns+` FROM Flight WHERE flightNum = $1`, number))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(s rowScanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := s.Scan(&f.AirlineID, &f.Number, &f.Origin, &f.Destination, &f.Plane, &f.Seats, &f.Duration); err != nil {
		return nil, err
	}
	trimFlight(&f)
	return &f, nil
}

// trimFlight strips the padding CHAR columns come back with.
func trimFlight(f *domain.Flight) {
	f.Number = strings.TrimSpace(f.Number)
	f.Origin = strings.TrimSpace(f.Origin)
	f.Destination = strings.TrimSpace(f.Destination)
	f.Plane = strings.TrimSpace(f.Plane)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
