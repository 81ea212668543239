package session

import (
	"github.com/artelbilliards/kolkhoz/internal/models"
)

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	// Session is the session to persist
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	// SessionID is the unique identifier for the session
	SessionID string
}

// GetSessionsByStatusInput contains parameters for listing sessions by status
type GetSessionsByStatusInput struct {
	// Status filters the sessions returned
	Status models.SessionStatus
}

// GetSessionsByStatusOutput contains the result of listing sessions by status
type GetSessionsByStatusOutput struct {
	// Sessions matching the requested status
	Sessions []*models.Session
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	// SessionID is the unique identifier for the session
	SessionID string
}
