package domain

import "time"

// DepartureLayout is the text form of a departure date as stored in Booking.departure.
const DepartureLayout = "2006-01-02"

type Booking struct {
	Reference    string
	Departure    time.Time
	FlightNumber string
	PassengerID  int
}
