package domain

const (
	MinScore = 1
	MaxScore = 5
)

type Rating struct {
	ID           int
	PassengerID  int
	FlightNumber string
	Score        int
	Comment      string
}
