package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/artelbilliards/kolkhoz/internal/services/game Service

import (
	"context"
)

// Service coordinates billiards scoring sessions: the roster, the
// sequence of games inside a session, each game's turn order and event
// log, and the settlement computed when a game completes.
type Service interface {
	// CreateSession creates a new session with the creator on the roster
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions lists sessions in a given lifecycle state
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// AddParticipant adds a participant to a session's roster
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// RemoveParticipant soft-removes a participant from a session's roster
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// StartSession moves a waiting session into progress
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// UpdateSessionSettings changes a session's name or capacity
	UpdateSessionSettings(ctx context.Context, input *UpdateSessionSettingsInput) (*UpdateSessionSettingsOutput, error)

	// CompleteSession explicitly completes a session
	CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error)

	// CancelSession cancels a session and its active game, if any
	CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error)

	// CreateGame starts the next game in a session with a generated turn order
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetSessionGames lists a session's games, newest first
	GetSessionGames(ctx context.Context, input *GetSessionGamesInput) (*GetSessionGamesOutput, error)

	// GetActiveGame retrieves the session's active game
	GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*GetActiveGameOutput, error)

	// RecordEvent appends a scoring or foul event to an active game
	RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error)

	// SoftDeleteEvent flags an event as corrected without renumbering
	SoftDeleteEvent(ctx context.Context, input *SoftDeleteEventInput) (*SoftDeleteEventOutput, error)

	// CompleteGame settles an active game and folds results into the roster
	CompleteGame(ctx context.Context, input *CompleteGameInput) (*CompleteGameOutput, error)

	// CancelGame cancels an active game without settlement
	CancelGame(ctx context.Context, input *CancelGameInput) (*CancelGameOutput, error)
}
