package domain

import "time"

// BirthDateLayout is the mm/dd/yyyy form passengers type their birth date in.
const BirthDateLayout = "01/02/2006"

// MaxPassportLength matches the width of Passenger.passNum.
const MaxPassportLength = 10

type Passenger struct {
	ID             int
	FullName       string
	BirthDate      time.Time
	PassportNumber string
	Country        string
}
