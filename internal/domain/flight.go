package domain

import "time"

type Flight struct {
	AirlineID   int
	Number      string
	Origin      string
	Destination string
	Plane       string
	Seats       int
	Duration    int
}

// FlightListing is a flight joined with the name of the airline operating it.
type FlightListing struct {
	AirlineName string
	Flight
}

type DestinationPopularity struct {
	Destination string
	Flights     int
}

type RouteRating struct {
	AirlineName  string
	FlightNumber string
	Origin       string
	Destination  string
	AverageScore float64
}

// SeatReport counts the bookings of one flight on one departure date.
type SeatReport struct {
	Flight    Flight
	Departure time.Time
	Booked    int
	Total     int
	Available int
}
