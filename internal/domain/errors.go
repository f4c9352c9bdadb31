package domain

import "errors"

var (
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrAirlineNotFound   = errors.New("airline not found")
	ErrNoFlights         = errors.New("no flights between origin and destination")
	ErrFullyBooked       = errors.New("flight is fully booked")
	ErrAlreadyBooked     = errors.New("passenger already booked this flight and departure")
	ErrNoBooking         = errors.New("passenger has no booking on this flight")
	ErrFlightExists      = errors.New("flight number already exists")
	ErrInvalidInput      = errors.New("invalid input")
)
