package models

import "github.com/google/uuid"

// Event is an outbox record awaiting publication to the message broker.
type Event struct {
	ID      uuid.UUID
	Type    string
	Payload string
}

const (
	EventBookingCreated = "booking_created"
	EventBookingDecided = "booking_decided"
)
