package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/artelbilliards/kolkhoz/internal/repositories/game Repository

import (
	"context"

	"github.com/artelbilliards/kolkhoz/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetSessionGames retrieves a session's games, newest first
	GetSessionGames(ctx context.Context, input *GetSessionGamesInput) (*GetSessionGamesOutput, error)

	// GetActiveGame retrieves the active game for a session, if any
	GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error)

	// GetMaxGameNumber returns the highest game number issued in a session
	GetMaxGameNumber(ctx context.Context, input *GetMaxGameNumberInput) (int, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error
}
