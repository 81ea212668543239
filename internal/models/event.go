package models

import (
	"time"
)

// EventType represents what happened on the table
type EventType string

const (
	// EventTypeBallPotted indicates a participant potted a ball
	EventTypeBallPotted EventType = "ball_potted"

	// EventTypeFoul indicates a participant committed a foul
	EventTypeFoul EventType = "foul"

	// EventTypeOther indicates an informational event with no scoring effect
	EventTypeOther EventType = "other"
)

// Event records a single scoring or foul occurrence within a game.
// Events are corrected by soft-deleting, never by removal, so sequence
// numbers and audit order stay stable.
type Event struct {
	// ID is the unique identifier for the event
	ID string

	// GameID is the game the event belongs to
	GameID string

	// ParticipantID is the acting participant
	ParticipantID string

	// Type is the kind of event
	Type EventType

	// Points is the point value of a potted ball
	Points int

	// Penalty is the point penalty of a foul
	Penalty int

	// SequenceNumber is the event's position within the game, strictly
	// increasing and never reused
	SequenceNumber int

	// Deleted marks the event as corrected out of settlement
	Deleted bool

	// CreatedAt is when the event was recorded
	CreatedAt time.Time
}
