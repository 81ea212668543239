package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/artelbilliards/kolkhoz/internal/repositories/session Repository

import (
	"context"

	"github.com/artelbilliards/kolkhoz/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session, roster included
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionsByStatus retrieves sessions in a given state
	GetSessionsByStatus(ctx context.Context, input *GetSessionsByStatusInput) (*GetSessionsByStatusOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
