package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingCreated  = "booking_created"
	EventReviewSubmitted = "review_submitted"
)

// Envelope is what travels on the wire; Payload is decoded according to Type.
type Envelope struct {
	Type       string          `json:"type"`
	EventID    string          `json:"event_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type BookingEvent struct {
	BookingRef    string `json:"booking_ref"`
	FlightNumber  string `json:"flight_num"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	PassengerID   int    `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	Departure     string `json:"departure"`
}

type ReviewEvent struct {
	RatingID     int    `json:"rating_id"`
	PassengerID  int    `json:"passenger_id"`
	FlightNumber string `json:"flight_num"`
	Score        int    `json:"score"`
}

func NewEnvelope(eventType string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		Type:       eventType,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode event: missing type")
	}
	return env, nil
}
