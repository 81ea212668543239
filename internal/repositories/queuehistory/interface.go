package queuehistory

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/artelbilliards/kolkhoz/internal/repositories/queuehistory Repository

import (
	"context"
)

// Repository defines the interface for turn order history persistence.
// The history is append-only; entries are never rewritten so the
// no-repeat cycle stays auditable.
type Repository interface {
	// AppendOrder records an issued turn order for a session and policy
	AppendOrder(ctx context.Context, input *AppendOrderInput) error

	// GetOrders retrieves issued turn orders, oldest first
	GetOrders(ctx context.Context, input *GetOrdersInput) (*GetOrdersOutput, error)

	// DeleteOrders removes a session's history
	DeleteOrders(ctx context.Context, input *DeleteOrdersInput) error
}
