package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/domain"
	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/Domenick1991/airbooking-console/internal/service/booking"
	"github.com/Domenick1991/airbooking-console/internal/service/flights"
	"github.com/Domenick1991/airbooking-console/internal/service/passengers"
	"github.com/Domenick1991/airbooking-console/internal/service/reviews"
)

func (a *App) addPassenger(ctx context.Context) error {
	first, err := a.prompt.Field("\tEnter your first name: ", passengers.ValidateName)
	if err != nil {
		return err
	}
	last, err := a.prompt.Field("\tEnter your last name: ", passengers.ValidateName)
	if err != nil {
		return err
	}
	bdate, err := a.prompt.Field("\tEnter your birth date (mm/dd/yyyy) : ", func(s string) error {
		_, err := passengers.ParseBirthDate(s, a.now())
		return err
	})
	if err != nil {
		return err
	}
	passport, err := a.prompt.Field("\tEnter your passport number: ", passengers.ValidatePassport)
	if err != nil {
		return err
	}
	country, err := a.prompt.Field("\tEnter the country you are from: ", passengers.ValidateCountry)
	if err != nil {
		return err
	}

	p, err := a.svc.Passengers.Add(ctx, passengers.AddPassengerInput{
		FirstName:      first,
		LastName:       last,
		BirthDate:      bdate,
		PassportNumber: passport,
		Country:        country,
	})
	if err != nil {
		return err
	}
	a.success.Fprintf(a.out, "\tWelcome %s! Your passenger id is %d.\n", p.FullName, p.ID)
	return nil
}

func (a *App) bookFlight(ctx context.Context) error {
	p, err := a.identifyPassenger(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\tHi %s!\n", p.FullName)

	options, err := a.searchFlights(ctx)
	if err != nil {
		return err
	}
	for i, f := range options {
		fmt.Fprintf(a.out, "\t(%d) Flight Number: %s Plane: %s Seats: %d Duration: %d\n", i, f.Number, f.Plane, f.Seats, f.Duration)
	}
	idx, err := a.prompt.Int(Question{
		Label:   "\tEnter the index, in the (), of the flight you would like to take. Enter -1 if you would like to exit. ",
		Invalid: "\tYou did not enter a valid index.",
	}, -1, func(n int) error {
		if n < 0 || n >= len(options) {
			return Rejection{}
		}
		return nil
	})
	if err != nil {
		return err
	}
	flight := options[idx]

	departure, err := a.askDate("you would like to take the flight")
	if err != nil {
		return err
	}

	left, err := a.svc.Bookings.Availability(ctx, flight, departure)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\tNum of seats left: %d\n", left)
	if left <= 0 {
		a.failure.Fprintln(a.out, "\tSorry! That flight is fully booked.")
		return nil
	}

	ok, err := a.prompt.YesNo(Question{
		Label:   "\tGreat! It seems like that date works. Would you like to book this flight? (Yes or No) ",
		Invalid: "\tPlease enter a valid input.",
	})
	if err != nil || !ok {
		return err
	}

	b, err := a.svc.Bookings.Book(ctx, booking.BookInput{Passenger: *p, Flight: flight, Departure: departure})
	switch {
	case errors.Is(err, domain.ErrAlreadyBooked):
		a.failure.Fprintln(a.out, "\tSorry you already booked this same flight and departure time!")
		return nil
	case errors.Is(err, domain.ErrFullyBooked):
		a.failure.Fprintln(a.out, "\tSorry! That flight is fully booked.")
		return nil
	case err != nil:
		return err
	}
	a.success.Fprintf(a.out, "\tYour flight has been successfully booked! Booking reference: %s\n", b.Reference)
	return nil
}

func (a *App) identifyPassenger(ctx context.Context) (*domain.Passenger, error) {
	for {
		name, err := a.prompt.Line("\tEnter your full name: ")
		if err != nil {
			return nil, err
		}
		passport, err := a.prompt.Line("\tEnter your passport number: ")
		if err != nil {
			return nil, err
		}
		p, err := a.svc.Passengers.Identify(ctx, name, passport)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrPassengerNotFound) {
			return nil, err
		}
		if err := a.prompt.TryAgain("\tYou did not enter a valid fullname or passport#. Press 0 to try again or 1 to exit. "); err != nil {
			return nil, err
		}
	}
}

func (a *App) searchFlights(ctx context.Context) ([]domain.Flight, error) {
	for {
		origin, err := a.prompt.Line("\tEnter where you plan to fly from: ")
		if err != nil {
			return nil, err
		}
		destination, err := a.prompt.Line("\tEnter where you plan to fly to: ")
		if err != nil {
			return nil, err
		}
		found, err := a.svc.Bookings.SearchFlights(ctx, origin, destination)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, domain.ErrNoFlights) {
			return nil, err
		}
		prompt := fmt.Sprintf("\tNo flights from %s to %s are available. Press 0 to try again and 1 to exit. ", origin, destination)
		if err := a.prompt.TryAgain(prompt); err != nil {
			return nil, err
		}
	}
}

// askDate reads year, month and day, re-asking the day when the date does not exist.
func (a *App) askDate(purpose string) (time.Time, error) {
	year, err := a.prompt.Int(Question{
		Label:   fmt.Sprintf("\tEnter the year %s. (After %d) ", purpose, booking.MinDepartureYear),
		Invalid: "\tPlease enter a valid year.",
		Retry:   fmt.Sprintf("\tEnter the year %s. (After %d or -1 to exit) ", purpose, booking.MinDepartureYear),
	}, -1, booking.ValidateYear)
	if err != nil {
		return time.Time{}, err
	}
	month, err := a.prompt.Int(Question{
		Label:   fmt.Sprintf("\tEnter the month %s. (Between 1-12) ", purpose),
		Invalid: "\tPlease enter a valid month.",
		Retry:   fmt.Sprintf("\tEnter the month %s. (Between 1-12 or -1 to exit) ", purpose),
	}, -1, booking.ValidateMonth)
	if err != nil {
		return time.Time{}, err
	}

	var departure time.Time
	_, err = a.prompt.Int(Question{
		Label:   fmt.Sprintf("\tEnter the day %s. (Between 1 - 31) ", purpose),
		Invalid: "\tPlease enter a valid day.",
		Retry:   fmt.Sprintf("\tEnter the day %s. (Between 1 - 31 or -1 to exit) ", purpose),
	}, -1, func(day int) error {
		d, err := booking.ParseDeparture(year, month, day)
		if err != nil {
			return err
		}
		departure = d
		return nil
	})
	return departure, err
}

func (a *App) reviewFlight(ctx context.Context) error {
	var p *domain.Passenger
	_, err := a.prompt.Field("\tEnter your full name: ", func(name string) error {
		if err := nonEmpty(name); err != nil {
			return err
		}
		found, err := a.svc.Passengers.FindByName(ctx, name)
		if errors.Is(err, domain.ErrPassengerNotFound) {
			return Rejection{}
		}
		p = found
		return err
	})
	if err != nil {
		return err
	}

	flightNum, err := a.prompt.Field("\tEnter the flight number: ", func(num string) error {
		if err := nonEmpty(num); err != nil {
			return err
		}
		err := a.svc.Reviews.CheckBooking(ctx, p.ID, num)
		if errors.Is(err, domain.ErrNoBooking) {
			return Rejection{Prompt: "\tInvalid flight number. Passenger not found for this flight. Try again or enter 1 to exit. "}
		}
		return err
	})
	if err != nil {
		return err
	}

	score, err := a.prompt.Int(Question{
		Label:   "\tEnter your rating score 1-5, where 1 is poor and 5 is excellent: ",
		Invalid: "\tPlease enter a score between 1 and 5.",
	}, NoExit, reviews.ValidateScore)
	if err != nil {
		return err
	}
	comment, err := a.prompt.Line("\tEnter a comment (optional): ")
	if err != nil {
		return err
	}

	if _, err := a.svc.Reviews.Submit(ctx, reviews.SubmitReviewInput{
		PassengerID:  p.ID,
		FlightNumber: flightNum,
		Score:        score,
		Comment:      comment,
	}); err != nil {
		return err
	}
	a.success.Fprintln(a.out, "\tThank you! Your review has been recorded.")
	return nil
}

func (a *App) insertOrUpdateFlight(ctx context.Context) error {
	choice, err := a.prompt.Int(Question{
		Label:   "\tWould you like to insert (enter 1) or update (enter 2) a flight? (Press 0 to exit) ",
		Invalid: "\tPlease insert a valid choice.",
	}, 0, func(n int) error {
		if n != 1 && n != 2 {
			return Rejection{}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if choice == 1 {
		return a.insertFlight(ctx)
	}
	return a.updateFlight(ctx)
}

func (a *App) insertFlight(ctx context.Context) error {
	airlines, err := a.svc.Flights.Airlines(ctx)
	if err != nil {
		return err
	}
	a.renderer.Render(a.out, airlines)

	var f domain.Flight
	f.AirlineID, err = a.prompt.Int(Question{
		Label:   "\tGreat! Please select the airline from the list above using its airId. (Enter -1 to return to main menu) ",
		Invalid: "\tSorry, you entered an invalid airId.",
		Retry:   "\tPlease select the airline from the list above using its airId. (Enter -1 to return to main menu) ",
	}, -1, func(id int) error {
		err := a.svc.Flights.CheckAirline(ctx, id)
		if errors.Is(err, domain.ErrAirlineNotFound) {
			return Rejection{}
		}
		return err
	})
	if err != nil {
		return err
	}

	if f.Origin, err = a.prompt.Field("\tEnter origin: ", nonEmpty); err != nil {
		return err
	}
	if f.Destination, err = a.prompt.Field("\tEnter destination: ", nonEmpty); err != nil {
		return err
	}
	if f.Plane, err = a.prompt.Field("\tEnter plane: ", nonEmpty); err != nil {
		return err
	}
	if f.Seats, err = a.prompt.Int(Question{
		Label: "\tEnter seat number: ",
		Retry: "\tInvalid seat number. Please enter seat number: ",
	}, NoExit, atLeastOne); err != nil {
		return err
	}
	if f.Duration, err = a.prompt.Int(Question{
		Label: "\tEnter flight duration: ",
		Retry: "\tInvalid flight duration. Please enter flight duration: ",
	}, NoExit, atLeastOne); err != nil {
		return err
	}
	if f.Number, err = a.prompt.Field("\tEnter flight number: ", flights.ValidateNumber); err != nil {
		return err
	}

	err = a.svc.Flights.Create(ctx, f)
	if errors.Is(err, domain.ErrFlightExists) {
		a.failure.Fprintf(a.out, "\tFlight %s already exists.\n", f.Number)
		return nil
	}
	if err != nil {
		return err
	}
	a.success.Fprintln(a.out, "\tYou have successfully created a flight!")
	return nil
}

func (a *App) updateFlight(ctx context.Context) error {
	number, err := a.prompt.Line("\tEnter flight number: ")
	if err != nil {
		return err
	}
	f, err := a.lookupFlight(ctx, number, "\tNo flight found. Please enter a flight number. (Enter Exit to return to main menu) ")
	if err != nil {
		return err
	}
	if err := a.describeFlight(ctx, f.Number); err != nil {
		return err
	}

	text := func(field string, dst *string) error {
		ok, err := a.prompt.YesNo(updateQuestion(field))
		if err != nil || !ok {
			return err
		}
		*dst, err = a.prompt.Field(fmt.Sprintf("\tPlease enter a new %s: ", field), nonEmpty)
		return err
	}
	count := func(field string, dst *int) error {
		ok, err := a.prompt.YesNo(updateQuestion(field))
		if err != nil || !ok {
			return err
		}
		*dst, err = a.prompt.Int(Question{
			Label: fmt.Sprintf("\tPlease enter a new %s: ", field),
			Retry: fmt.Sprintf("\tInvalid %s. Please enter a new %s: ", field, field),
		}, NoExit, atLeastOne)
		return err
	}

	if err := text("origin", &f.Origin); err != nil {
		return err
	}
	if err := text("destination", &f.Destination); err != nil {
		return err
	}
	if err := text("plane", &f.Plane); err != nil {
		return err
	}
	if err := count("seat number", &f.Seats); err != nil {
		return err
	}
	if err := count("duration", &f.Duration); err != nil {
		return err
	}

	if err := a.svc.Flights.Update(ctx, *f); err != nil {
		return err
	}
	a.success.Fprintln(a.out, "\tYou have successfully updated the flight!")
	return a.describeFlight(ctx, f.Number)
}

func updateQuestion(field string) Question {
	return Question{
		Label: fmt.Sprintf("\tWould you like to update the %s? (Yes or No) ", field),
		Retry: fmt.Sprintf("\tYou did not enter a valid response. Would you like to update the %s? (Yes or No or Exit to go to main menu) ", field),
	}
}

// lookupFlight re-asks with retry until the flight exists; Exit aborts.
func (a *App) lookupFlight(ctx context.Context, number, retry string) (*domain.Flight, error) {
	for {
		f, err := a.svc.Flights.Get(ctx, number)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, domain.ErrFlightNotFound) {
			return nil, err
		}
		number, err = a.prompt.Line(retry)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(number, "exit") {
			return nil, ErrAborted
		}
	}
}

func (a *App) describeFlight(ctx context.Context, number string) error {
	res, err := a.svc.Flights.Describe(ctx, number)
	if err != nil {
		return err
	}
	a.renderer.Render(a.out, res)
	return nil
}

func (a *App) listFlightsBetween(ctx context.Context) error {
	for {
		origin, err := a.prompt.Line("\tEnter origin: ")
		if err != nil {
			return err
		}
		destination, err := a.prompt.Line("\tEnter destination: ")
		if err != nil {
			return err
		}
		res, err := a.svc.Flights.Between(ctx, origin, destination)
		if err != nil {
			return err
		}
		if len(res.Rows) > 0 {
			a.renderer.Render(a.out, res)
			return nil
		}
		label := fmt.Sprintf("\tThere are no flights from %s to %s. Would you like to try again? (Yes or No) ", origin, destination)
		again, err := a.prompt.YesNo(Question{Label: label})
		if err != nil || !again {
			return err
		}
	}
}

func (a *App) listPopularDestinations(ctx context.Context) error {
	k, err := a.askLimit("\tEnter the number of destinations you would like to see: ")
	if err != nil {
		return err
	}
	top, err := a.svc.Flights.MostPopularDestinations(ctx, k)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		fmt.Fprintln(a.out, "\tThere are no flights.")
		return nil
	}
	for i, d := range top {
		fmt.Fprintf(a.out, "%d. %s (%d flights)\n", i+1, d.Destination, d.Flights)
	}
	return nil
}

func (a *App) listHighestRated(ctx context.Context) error {
	k, err := a.askLimit("\tEnter k: ")
	if err != nil {
		return err
	}
	rated, err := a.svc.Flights.HighestRated(ctx, k)
	if err != nil {
		return err
	}
	if len(rated) == 0 {
		fmt.Fprintln(a.out, "\tThere are no reviews.")
		return nil
	}
	res := &repository.Result{Columns: []string{"name", "flightnum", "origin", "destination", "average_score"}}
	for _, r := range rated {
		res.Rows = append(res.Rows, []string{
			r.AirlineName, r.FlightNumber, r.Origin, r.Destination, strconv.FormatFloat(r.AverageScore, 'f', 2, 64),
		})
	}
	a.renderer.Render(a.out, res)
	return nil
}

func (a *App) listByDuration(ctx context.Context) error {
	origin, err := a.prompt.Field("\tEnter the flight origin: ", knownPlace(ctx, "origin", a.svc.Flights.OriginExists))
	if err != nil {
		return err
	}
	destination, err := a.prompt.Field("\tEnter the flight destination: ", knownPlace(ctx, "destination", a.svc.Flights.DestinationExists))
	if err != nil {
		return err
	}
	k, err := a.askLimit("\tEnter the number of flights you would like to see: ")
	if err != nil {
		return err
	}

	listings, err := a.svc.Flights.ByDuration(ctx, origin, destination, k)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		fmt.Fprintf(a.out, "\tThere are no flights from %s to %s.\n", origin, destination)
		return nil
	}
	res := &repository.Result{Columns: []string{"Airline", "Flight Number", "Origin", "Destination", "Duration", "Plane"}}
	for _, l := range listings {
		res.Rows = append(res.Rows, []string{
			l.AirlineName, l.Number, l.Origin, l.Destination, strconv.Itoa(l.Duration), l.Plane,
		})
	}
	a.renderer.Render(a.out, res)
	return nil
}

func knownPlace(ctx context.Context, kind string, exists func(context.Context, string) (bool, error)) func(string) error {
	return func(place string) error {
		if place == "" {
			return Rejection{Prompt: "\tCannot leave entry blank. Try again or enter 1 to exit. "}
		}
		ok, err := exists(ctx, place)
		if err != nil {
			return err
		}
		if !ok {
			return Rejection{Prompt: fmt.Sprintf("\tInvalid %s. Try again or enter 1 to exit. ", kind)}
		}
		return nil
	}
}

func (a *App) askLimit(label string) (int, error) {
	return a.prompt.Int(Question{Label: label, Invalid: "\tPlease enter a number of at least 1."}, NoExit, flights.ValidateLimit)
}

func (a *App) findAvailableSeats(ctx context.Context) error {
	number, err := a.prompt.Line("\tEnter Flight Number: ")
	if err != nil {
		return err
	}
	departure, err := a.askDate("of the flight you are looking for")
	if err != nil {
		return err
	}
	f, err := a.lookupFlight(ctx, number, "\tSorry you did not enter a valid flight number. Type \"Exit\" if you would like to exit or type the flight number again. ")
	if err != nil {
		return err
	}

	report, err := a.svc.Flights.SeatAvailability(ctx, f.Number, departure)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\tFor FlightNum: %s, the origin is: %s, the destination is: %s, the number of booked seats is: %d, the number of total seats is: %d, and the number of seats available is: %d\n",
		report.Flight.Number, report.Flight.Origin, report.Flight.Destination, report.Booked, report.Total, report.Available)
	return nil
}
