package queuehistory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// historyKeyPrefix namespaces turn order history lists per session and policy
const historyKeyPrefix = "queue_history:"

// Config holds configuration for the Redis queue history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// entry is the stored form of a single issued turn order
type entry struct {
	GameID string   `json:"game_id"`
	Order  []string `json:"order"`
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed queue history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func key(sessionID, policy string) string {
	return fmt.Sprintf("%s%s:%s", historyKeyPrefix, sessionID, policy)
}

// AppendOrder records an issued turn order at the end of the session's history
func (r *redisRepository) AppendOrder(ctx context.Context, input *AppendOrderInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if len(input.Order) == 0 {
		return errors.New("order cannot be empty")
	}

	entryJSON, err := json.Marshal(entry{
		GameID: input.GameID,
		Order:  input.Order,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	err = r.client.RPush(ctx, key(input.SessionID, string(input.Policy)), entryJSON).Err()
	if err != nil {
		return fmt.Errorf("failed to append turn order: %w", err)
	}

	return nil
}

// GetOrders retrieves issued turn orders for a session and policy, oldest first
func (r *redisRepository) GetOrders(ctx context.Context, input *GetOrdersInput) (*GetOrdersOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	start := int64(0)
	if input.Limit > 0 {
		start = int64(-input.Limit)
	}

	entries, err := r.client.LRange(ctx, key(input.SessionID, string(input.Policy)), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get turn order history: %w", err)
	}

	orders := make([][]string, 0, len(entries))
	for _, raw := range entries {
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		orders = append(orders, e.Order)
	}

	return &GetOrdersOutput{Orders: orders}, nil
}

// DeleteOrders removes a session's history for one policy
func (r *redisRepository) DeleteOrders(ctx context.Context, input *DeleteOrdersInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	err := r.client.Del(ctx, key(input.SessionID, string(input.Policy))).Err()
	if err != nil {
		return fmt.Errorf("failed to delete turn order history: %w", err)
	}

	return nil
}
