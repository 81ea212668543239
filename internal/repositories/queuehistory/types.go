package queuehistory

import (
	"github.com/artelbilliards/kolkhoz/internal/models"
)

// AppendOrderInput contains parameters for recording an issued turn order
type AppendOrderInput struct {
	// SessionID is the session the order was issued for
	SessionID string

	// GameID is the game the order was assigned to
	GameID string

	// Policy is the algorithm that produced the order
	Policy models.QueuePolicy

	// Order is the participant IDs in shooting order
	Order []string
}

// GetOrdersInput contains parameters for retrieving issued turn orders
type GetOrdersInput struct {
	// SessionID is the session to look up
	SessionID string

	// Policy filters history to one algorithm
	Policy models.QueuePolicy

	// Limit caps the result to the most recent entries, 0 means all
	Limit int
}

// GetOrdersOutput contains the retrieved turn orders
type GetOrdersOutput struct {
	// Orders is ordered oldest first
	Orders [][]string
}

// DeleteOrdersInput contains parameters for removing a session's history
type DeleteOrdersInput struct {
	// SessionID is the session to clear
	SessionID string

	// Policy is the algorithm whose history is cleared
	Policy models.QueuePolicy
}
