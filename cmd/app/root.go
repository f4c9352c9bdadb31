package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Domenick1991/airbooking-console/config"
	"github.com/Domenick1991/airbooking-console/internal/console"
	"github.com/Domenick1991/airbooking-console/internal/kafka"
	"github.com/Domenick1991/airbooking-console/internal/migrations"
	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/Domenick1991/airbooking-console/internal/service/booking"
	"github.com/Domenick1991/airbooking-console/internal/service/flights"
	"github.com/Domenick1991/airbooking-console/internal/service/passengers"
	"github.com/Domenick1991/airbooking-console/internal/service/reviews"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const usage = "app <dbname> <port> <user>"

func newRootCmd(stdin *os.File, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           usage,
		Short:         "Terminal client for the airline booking database",
		Args:          cobra.ExactArgs(3),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := resolveConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runClient(cmd, cfg, stdin, stdout, stderr)
		},
	}
	addConnectionFlags(root.PersistentFlags())
	root.Flags().String("output", "", "result format: tsv or table")
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newMigrateCmd(stdout, stderr))
	return root
}

func addConnectionFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	fs.String("host", "", "database host")
	fs.String("password", "", "database password (prefer "+config.PasswordEnv+")")
	fs.String("sslmode", "", "libpq sslmode")
}

// resolveConfig layers config file, environment, positional arguments and flags, in that order.
func resolveConfig(fs *pflag.FlagSet, args []string) (*config.Config, error) {
	path, _ := fs.GetString("config")
	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = "config.yaml"
	}

	var (
		cfg *config.Config
		err error
	)
	if explicit {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if len(args) != 3 {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid port %q", args[1])
	}
	cfg.Database.Name = args[0]
	cfg.Database.Port = port
	cfg.Database.User = args[2]

	overrides := map[string]*string{
		"host":     &cfg.Database.Host,
		"password": &cfg.Database.Password,
		"sslmode":  &cfg.Database.SSLMode,
		"output":   &cfg.Console.Output,
	}
	for name, dst := range overrides {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func runClient(cmd *cobra.Command, cfg *config.Config, stdin *os.File, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	logger := newLogger(cfg.Log.Level, stderr)
	if !cfg.Console.Color {
		color.NoColor = true
	}

	fmt.Fprint(stdout, "Connecting to database...")
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Make sure you started postgres on this machine")
		return err
	}
	fmt.Fprintln(stdout, "Done")
	defer func() {
		fmt.Fprint(stdout, "Disconnecting from database...")
		if err := db.Close(); err != nil {
			logger.Warn("close database", slog.Any("error", err))
		}
		fmt.Fprintln(stdout, "Done")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Bye !")
	}()

	if cfg.Database.InstallIDTriggers {
		if err := db.InstallIDTriggers(ctx); err != nil {
			logger.Warn("could not install id triggers", slog.Any("error", err))
		}
	}

	var (
		bookingProducer booking.Producer
		reviewProducer  reviews.Producer
	)
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer func() { _ = producer.Close() }()
		bookingProducer, reviewProducer = producer, producer
	}

	passengerRepo := repository.NewPassengerRepository(db)
	flightRepo := repository.NewFlightRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	airlineRepo := repository.NewAirlineRepository(db)

	services := console.Services{
		Passengers: passengers.NewPassengerService(passengerRepo, passengers.WithLogger(logger)),
		Bookings: booking.NewBookingService(bookingRepo, flightRepo, bookingProducer, cfg.Kafka.BookingEventsTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithLogger(logger)),
		Reviews: reviews.NewReviewService(ratingRepo, bookingRepo, reviewProducer, cfg.Kafka.NotificationsTopic,
			reviews.WithLogger(logger)),
		Flights: flights.NewFlightService(flightRepo, airlineRepo, bookingRepo, flights.WithLogger(logger)),
	}

	reader, err := console.NewLineReader(stdin, stdout)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	app := console.New(reader, stdout, services,
		console.WithRenderer(console.NewRenderer(cfg.Console.Output)),
		console.WithLogger(logger))
	if err := app.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	return nil
}

func newMigrateCmd(stdout, stderr io.Writer) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate <dbname> <port> <user>",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := resolveConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level, stderr)

			db, err := repository.Open(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if down {
				err = migrations.Down(db.SQL())
			} else {
				err = migrations.Up(db.SQL())
			}
			if err != nil {
				return err
			}
			version, err := migrations.Version(db.SQL())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "schema at version %d\n", version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration instead")
	return cmd
}
