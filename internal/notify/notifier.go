package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Domenick1991/airbooking-console/internal/kafka"
)

// Notifier turns booking and review events into passenger notices.
type Notifier struct {
	out io.Writer
	log *slog.Logger
}

func NewNotifier(out io.Writer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{out: out, log: logger}
}

// Handle decodes one message. Malformed or unknown events are logged and skipped so the consumer keeps going.
func (n *Notifier) Handle(ctx context.Context, data []byte) error {
	env, err := kafka.DecodeEnvelope(data)
	if err != nil {
		n.log.Warn("skipping event", slog.Any("error", err))
		return nil
	}

	notice, err := Render(env)
	if err != nil {
		n.log.Warn("skipping event", slog.String("type", env.Type), slog.String("event_id", env.EventID), slog.Any("error", err))
		return nil
	}
	if _, err := fmt.Fprintln(n.out, notice); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	n.log.Info("notice sent", slog.String("type", env.Type), slog.String("event_id", env.EventID))
	return nil
}

// Render formats the notice text for an event envelope.
func Render(env kafka.Envelope) (string, error) {
	switch env.Type {
	case kafka.EventBookingCreated:
		var ev kafka.BookingEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return fmt.Sprintf("notify passenger %d (%s): booking %s confirmed on flight %s from %s to %s departing %s",
			ev.PassengerID, ev.PassengerName, ev.BookingRef, ev.FlightNumber, ev.Origin, ev.Destination, ev.Departure), nil
	case kafka.EventReviewSubmitted:
		var ev kafka.ReviewEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return fmt.Sprintf("notify passenger %d: thank you for rating flight %s %d/5 (rating %d)",
			ev.PassengerID, ev.FlightNumber, ev.Score, ev.RatingID), nil
	default:
		return "", fmt.Errorf("unknown event type %q", env.Type)
	}
}
