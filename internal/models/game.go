package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusActive indicates a game is in progress
	GameStatusActive GameStatus = "active"

	// GameStatusCompleted indicates a game has been completed
	GameStatusCompleted GameStatus = "completed"

	// GameStatusCancelled indicates a game was cancelled without settlement
	GameStatusCancelled GameStatus = "cancelled"
)

// QueuePolicy identifies the algorithm used to generate a game's turn order
type QueuePolicy string

const (
	// QueuePolicyAlwaysRandom shuffles the roster independently for every game
	QueuePolicyAlwaysRandom QueuePolicy = "always_random"

	// QueuePolicyRandomNoRepeat guarantees no ordering repeats within a full cycle
	QueuePolicyRandomNoRepeat QueuePolicy = "random_no_repeat"

	// QueuePolicyManual places participants in a caller-supplied order
	QueuePolicyManual QueuePolicy = "manual"
)

// Game represents one discrete round within a session
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// SessionID is the session this game belongs to
	SessionID string

	// GameNumber is the 1-based position of the game within its session
	GameNumber int

	// Status is the current state of the game
	Status GameStatus

	// Policy is the turn order algorithm used for this game
	Policy QueuePolicy

	// TurnOrder is the participant IDs in shooting order.
	// Immutable once the game is created.
	TurnOrder []string

	// Events is the append-only event log, ordered by sequence number
	Events []*Event

	// WinnerID is the participant who won, set on completion
	WinnerID string

	// Results holds per-participant settlement outcomes, set on completion
	Results []*GameResult

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// CompletedAt is when the game reached a terminal state
	CompletedAt *time.Time
}

// HasParticipant reports whether the participant is part of the turn order.
func (g *Game) HasParticipant(participantID string) bool {
	for _, id := range g.TurnOrder {
		if id == participantID {
			return true
		}
	}
	return false
}

// NextSequenceNumber returns the sequence number the next event should use.
// Sequence numbers keep increasing even past soft-deleted events.
func (g *Game) NextSequenceNumber() int {
	max := 0
	for _, e := range g.Events {
		if e.SequenceNumber > max {
			max = e.SequenceNumber
		}
	}
	return max + 1
}
