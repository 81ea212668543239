package game

import (
	"github.com/artelbilliards/kolkhoz/internal/common/clock"
	"github.com/artelbilliards/kolkhoz/internal/common/uuid"
	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/artelbilliards/kolkhoz/internal/queue"
	gameRepo "github.com/artelbilliards/kolkhoz/internal/repositories/game"
	queueHistoryRepo "github.com/artelbilliards/kolkhoz/internal/repositories/queuehistory"
	sessionRepo "github.com/artelbilliards/kolkhoz/internal/repositories/session"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
)

// Config holds configuration for the game service
type Config struct {
	// Minimum active participants required to start a session
	MinParticipants int

	// Upper bound accepted for a session's MaxParticipants
	MaxParticipantsLimit int

	// Capacity used when CreateSession does not specify one
	DefaultMaxParticipants int

	// Repository dependencies
	SessionRepo      sessionRepo.Repository
	GameRepo         gameRepo.Repository
	QueueHistoryRepo queueHistoryRepo.Repository

	// Service dependencies
	Generator     queue.Generator
	Calculator    *settlement.Calculator
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateSessionInput contains parameters for creating a new session
type CreateSessionInput struct {
	// Name is the display name of the session
	Name string

	// MaxParticipants is the roster capacity, 0 means the configured default
	MaxParticipants int

	// CreatorUserID is the external identity of the creator
	CreatorUserID string

	// CreatorDisplayName is the name shown for the creator
	CreatorDisplayName string
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Session is the newly created session
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	// SessionID is the unique identifier for the session
	SessionID string
}

// GetSessionOutput contains the retrieved session
type GetSessionOutput struct {
	// Session is the retrieved session
	Session *models.Session
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct {
	// Status filters the sessions returned
	Status models.SessionStatus
}

// ListSessionsOutput contains the listed sessions
type ListSessionsOutput struct {
	// Sessions matching the requested status
	Sessions []*models.Session
}

// AddParticipantInput contains parameters for joining a session
type AddParticipantInput struct {
	// SessionID is the session to join
	SessionID string

	// UserID is the external identity of the player, empty for substitutes
	UserID string

	// DisplayName is the name shown for the participant
	DisplayName string

	// IsSubstitute marks a roster slot not backed by a real user
	IsSubstitute bool
}

// AddParticipantOutput contains the result of joining a session
type AddParticipantOutput struct {
	// Session is the updated session
	Session *models.Session

	// Participant is the newly added roster member
	Participant *models.Participant
}

// RemoveParticipantInput contains parameters for leaving a session
type RemoveParticipantInput struct {
	// SessionID is the session to leave
	SessionID string

	// ParticipantID is the roster member to soft-remove
	ParticipantID string
}

// RemoveParticipantOutput contains the result of leaving a session
type RemoveParticipantOutput struct {
	// Session is the updated session
	Session *models.Session
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// SessionID is the session to start
	SessionID string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// Session is the updated session
	Session *models.Session
}

// UpdateSessionSettingsInput contains parameters for changing session settings.
// Nil fields are left unchanged.
type UpdateSessionSettingsInput struct {
	// SessionID is the session to update
	SessionID string

	// Name replaces the session name when set
	Name *string

	// MaxParticipants replaces the roster capacity when set
	MaxParticipants *int
}

// UpdateSessionSettingsOutput contains the result of a settings update
type UpdateSessionSettingsOutput struct {
	// Session is the updated session
	Session *models.Session
}

// CompleteSessionInput contains parameters for completing a session
type CompleteSessionInput struct {
	// SessionID is the session to complete
	SessionID string
}

// CompleteSessionOutput contains the result of completing a session
type CompleteSessionOutput struct {
	// Session is the completed session
	Session *models.Session
}

// CancelSessionInput contains parameters for cancelling a session
type CancelSessionInput struct {
	// SessionID is the session to cancel
	SessionID string
}

// CancelSessionOutput contains the result of cancelling a session
type CancelSessionOutput struct {
	// Session is the cancelled session
	Session *models.Session
}

// CreateGameInput contains parameters for starting the next game
type CreateGameInput struct {
	// SessionID is the session the game belongs to
	SessionID string

	// Policy selects the turn order algorithm
	Policy models.QueuePolicy

	// CustomOrder is the explicit participant ID order for the manual policy
	CustomOrder []string
}

// CreateGameOutput contains the result of starting a game
type CreateGameOutput struct {
	// Game is the newly created game
	Game *models.Game
}

// GetGameInput contains parameters for retrieving a game
type GetGameInput struct {
	// GameID is the unique identifier for the game
	GameID string
}

// GetGameOutput contains the retrieved game
type GetGameOutput struct {
	// Game is the retrieved game
	Game *models.Game
}

// GetSessionGamesInput contains parameters for listing a session's games
type GetSessionGamesInput struct {
	// SessionID is the session to list games for
	SessionID string

	// Limit caps the number of games returned, 0 means no cap
	Limit int

	// Offset skips that many games from the newest end
	Offset int
}

// GetSessionGamesOutput contains the listed games
type GetSessionGamesOutput struct {
	// Games is ordered by game number, newest first
	Games []*models.Game
}

// GetActiveGameInput contains parameters for retrieving a session's active game
type GetActiveGameInput struct {
	// SessionID is the session to look up
	SessionID string
}

// GetActiveGameOutput contains the session's active game
type GetActiveGameOutput struct {
	// Game is the active game
	Game *models.Game
}

// RecordEventInput contains parameters for recording a game event
type RecordEventInput struct {
	// GameID is the game the event belongs to
	GameID string

	// ParticipantID is the acting participant
	ParticipantID string

	// Type is the kind of event
	Type models.EventType

	// Points is the point value of a potted ball
	Points int

	// Penalty is the point penalty of a foul
	Penalty int
}

// RecordEventOutput contains the result of recording an event
type RecordEventOutput struct {
	// Game is the updated game
	Game *models.Game

	// Event is the recorded event with its assigned sequence number
	Event *models.Event
}

// SoftDeleteEventInput contains parameters for flagging an event as corrected
type SoftDeleteEventInput struct {
	// GameID is the game the event belongs to
	GameID string

	// EventID is the event to flag
	EventID string
}

// SoftDeleteEventOutput contains the result of flagging an event
type SoftDeleteEventOutput struct {
	// Game is the updated game
	Game *models.Game
}

// CompleteGameInput contains parameters for completing a game
type CompleteGameInput struct {
	// GameID is the game to complete
	GameID string
}

// CompleteGameOutput contains the result of completing a game
type CompleteGameOutput struct {
	// Game is the completed game with winner and results set
	Game *models.Game

	// Result is the settlement breakdown
	Result *settlement.Result
}

// CancelGameInput contains parameters for cancelling a game
type CancelGameInput struct {
	// GameID is the game to cancel
	GameID string
}

// CancelGameOutput contains the result of cancelling a game
type CancelGameOutput struct {
	// Game is the cancelled game
	Game *models.Game
}
