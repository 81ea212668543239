package models

import (
	"time"
)

// SessionStatus represents the current state of a session
type SessionStatus string

const (
	// SessionStatusWaiting indicates a session is gathering participants
	SessionStatusWaiting SessionStatus = "waiting"

	// SessionStatusInProgress indicates a session has started playing games
	SessionStatusInProgress SessionStatus = "in_progress"

	// SessionStatusCompleted indicates a session has been completed
	SessionStatusCompleted SessionStatus = "completed"

	// SessionStatusCancelled indicates a session was cancelled before completion
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session represents a standing billiards grouping that hosts a sequence of games
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// Name is the display name of the session
	Name string

	// CreatorID is the participant ID of the session creator
	CreatorID string

	// Status is the current state of the session
	Status SessionStatus

	// MaxParticipants is the roster capacity
	MaxParticipants int

	// Participants is the ordered roster, including soft-removed members
	Participants []*Participant

	// CurrentGameID is the ID of the active game, empty when no game is running
	CurrentGameID string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// StartedAt is when the session left the waiting state
	StartedAt *time.Time

	// CompletedAt is when the session reached a terminal state
	CompletedAt *time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// ActiveParticipants returns roster members that have not been soft-removed.
func (s *Session) ActiveParticipants() []*Participant {
	active := make([]*Participant, 0, len(s.Participants))
	for _, p := range s.Participants {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// Participant returns the roster member with the given ID, or nil.
func (s *Session) Participant(participantID string) *Participant {
	for _, p := range s.Participants {
		if p.ID == participantID {
			return p
		}
	}
	return nil
}
