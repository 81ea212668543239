package game

import (
	"github.com/artelbilliards/kolkhoz/internal/models"
)

// SaveGameInput contains parameters for saving a game
type SaveGameInput struct {
	// Game is the game to persist
	Game *models.Game
}

// GetGameInput contains parameters for retrieving a game
type GetGameInput struct {
	// GameID is the unique identifier for the game
	GameID string
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

// GetSessionGamesOutput contains the result of listing a session's games
type GetSessionGamesOutput struct {
	// Games is ordered by game number, newest first
	Games []*models.Game
}

// GetActiveGameInput contains parameters for retrieving a session's active game
type GetActiveGameInput struct {
	// SessionID is the session to look up
	SessionID string
}

// GetMaxGameNumberInput contains parameters for reading the game number high-water mark
type GetMaxGameNumberInput struct {
	// SessionID is the session to look up
	SessionID string
}

// DeleteGameInput contains parameters for deleting a game
type DeleteGameInput struct {
	// GameID is the unique identifier for the game
	GameID string
}
