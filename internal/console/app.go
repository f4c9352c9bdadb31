package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/Domenick1991/airbooking-console/internal/service/booking"
	"github.com/Domenick1991/airbooking-console/internal/service/flights"
	"github.com/Domenick1991/airbooking-console/internal/service/passengers"
	"github.com/Domenick1991/airbooking-console/internal/service/reviews"
	"github.com/fatih/color"
)

type Services struct {
	Passengers passengers.PassengerUseCase
	Bookings   booking.BookingUseCase
	Reviews    reviews.ReviewUseCase
	Flights    flights.FlightUseCase
}

type App struct {
	prompt   *Prompter
	out      io.Writer
	renderer Renderer
	svc      Services
	log      *slog.Logger
	now      func() time.Time

	heading *color.Color
	success *color.Color
	failure *color.Color
}

type Option func(*App)

func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.log = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func New(in LineReader, out io.Writer, svc Services, opts ...Option) *App {
	a := &App{
		prompt:   NewPrompter(in, out),
		out:      out,
		renderer: tsvRenderer{},
		svc:      svc,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		heading:  color.New(color.FgCyan, color.Bold),
		success:  color.New(color.FgGreen),
		failure:  color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type action struct {
	title string
	run   func(*App, context.Context) error
}

var menu = []action{
	{"Add Passenger", (*App).addPassenger},
	{"Book Flight", (*App).bookFlight},
	{"Review Flight", (*App).reviewFlight},
	{"Insert or Update Flight", (*App).insertOrUpdateFlight},
	{"List Flights From Origin to Destination", (*App).listFlightsBetween},
	{"List Most Popular Destinations", (*App).listPopularDestinations},
	{"List Highest Rated Destinations", (*App).listHighestRated},
	{"List Flights to Destination in order of Duration", (*App).listByDuration},
	{"Find Number of Available Seats on a given Flight", (*App).findAvailableSeats},
}

const exitChoice = 10

// Run shows the main menu until the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.printMenu()

		choice, err := a.readChoice()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == exitChoice {
			return nil
		}
		if choice < 1 || choice > len(menu) {
			continue
		}

		item := menu[choice-1]
		err = item.run(a, ctx)
		switch {
		case err == nil, errors.Is(err, ErrAborted):
		case errors.Is(err, io.EOF):
			return nil
		default:
			a.log.Error("action failed", slog.String("action", item.title), slog.Any("error", err))
			a.failure.Fprintf(a.out, "\tError: %v\n", err)
		}
	}
}

func (a *App) printMenu() {
	a.heading.Fprintln(a.out, "MAIN MENU")
	fmt.Fprintln(a.out, "---------")
	for i, item := range menu {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, item.title)
	}
	fmt.Fprintf(a.out, "%d. < EXIT\n", exitChoice)
}

func (a *App) readChoice() (int, error) {
	for {
		s, err := a.prompt.Line("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(a.out, "Your input is invalid!")
	}
}
