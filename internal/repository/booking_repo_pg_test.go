package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_CountForDeparture(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	departure := time.Date(2017, 5, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM Booking WHERE flightNum = $1 AND departure = $2")).
		WithArgs("AA100", departure).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(149)))

	n, err := repo.CountForDeparture(context.Background(), "AA100", departure)
	require.NoError(t, err)
	assert.Equal(t, 149, n)
}

func TestBookingRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	departure := time.Date(2017, 5, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE flightNum = $1 AND departure = $2 AND pID = $3")).
		WithArgs("AA100", departure, 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE flightNum = $1 AND pID = $2")).
		WithArgs("AA100", 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.Exists(context.Background(), "AA100", departure, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForPassenger(context.Background(), "AA100", 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	departure := time.Date(2017, 5, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO Booking (departure, flightNum, pID) VALUES ($1, $2, $3) RETURNING bookRef")).
		WithArgs(departure, "AA100", 42).
		WillReturnRows(sqlmock.NewRows([]string{"bookref"}).AddRow("K3P9QX1A  "))

	b := &domain.Booking{Departure: departure, FlightNumber: "AA100", PassengerID: 42}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, "K3P9QX1A", b.Reference)
}

func TestBookingRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("INSERT INTO Booking").WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &domain.Booking{FlightNumber: "AA100"})
	assert.ErrorIs(t, err, assert.AnError)
}
