package models

import (
	"time"
)

// ParticipantRole represents a participant's role within a session
type ParticipantRole string

const (
	// ParticipantRoleCreator indicates the participant created the session
	ParticipantRoleCreator ParticipantRole = "creator"

	// ParticipantRolePlayer indicates a regular playing participant
	ParticipantRolePlayer ParticipantRole = "participant"
)

// Participant represents a player's membership in a session
type Participant struct {
	// ID is a unique identifier for this membership
	ID string

	// SessionID is the ID of the session the participant belongs to
	SessionID string

	// UserID is the external identity of the player, empty for substitutes
	UserID string

	// DisplayName is the name shown for the participant
	DisplayName string

	// Role is the participant's role in the session
	Role ParticipantRole

	// IsSubstitute indicates a placeholder slot not backed by a real user
	IsSubstitute bool

	// QueuePosition is the participant's 1-based slot in the most recent turn order
	QueuePosition int

	// GamesPlayed is the number of completed games the participant took part in
	GamesPlayed int

	// BallsPotted is the cumulative number of balls potted across the session
	BallsPotted int

	// BalanceMinorUnits is the cumulative monetary balance in minor currency units
	BalanceMinorUnits int64

	// Active indicates the participant is still on the roster.
	// Removed participants are kept with Active=false so historical
	// events keep resolving.
	Active bool

	// JoinedAt is when the participant joined the session
	JoinedAt time.Time

	// LeftAt is when the participant was removed, if ever
	LeftAt *time.Time
}
