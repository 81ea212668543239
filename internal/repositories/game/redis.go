package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix         = "game:"
	sessionGamesKeyPrefix = "session_games:"  // ZSET of game IDs scored by game number
	activeGamesKeyPrefix  = "active_games:"   // SET of active game IDs per session
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
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

// SaveGame persists a game to Redis
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.Game.ID)
	pipe.Set(ctx, gameKey, gameJSON, 0)

	// Index the game under its session, scored by game number
	sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, input.Game.SessionID)
	pipe.ZAdd(ctx, sessionGamesKey, redis.Z{
		Score:  float64(input.Game.GameNumber),
		Member: input.Game.ID,
	})

	// Track active games per session so the single-active invariant is
	// a set lookup
	activeGamesKey := fmt.Sprintf("%s%s", activeGamesKeyPrefix, input.Game.SessionID)
	if input.Game.Status == models.GameStatusActive {
		pipe.SAdd(ctx, activeGamesKey, input.Game.ID)
	} else {
		pipe.SRem(ctx, activeGamesKey, input.Game.ID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	gameJSON, err := r.client.Get(ctx, gameKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// GetSessionGames retrieves a session's games ordered by game number, newest first
func (r *redisRepository) GetSessionGames(ctx context.Context, input *GetSessionGamesInput) (*GetSessionGamesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	start := int64(input.Offset)
	stop := int64(-1)
	if input.Limit > 0 {
		stop = start + int64(input.Limit) - 1
	}

	sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, input.SessionID)
	gameIDs, err := r.client.ZRevRange(ctx, sessionGamesKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session game IDs: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		game, err := r.GetGame(ctx, &GetGameInput{GameID: gameID})
		if err != nil {
			// Game was deleted between reading the index and fetching it
			if errors.Is(err, ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}

	return &GetSessionGamesOutput{Games: games}, nil
}

// GetActiveGame retrieves the active game for a session from Redis
func (r *redisRepository) GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	activeGamesKey := fmt.Sprintf("%s%s", activeGamesKeyPrefix, input.SessionID)
	gameIDs, err := r.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active game IDs: %w", err)
	}

	for _, gameID := range gameIDs {
		game, err := r.GetGame(ctx, &GetGameInput{GameID: gameID})
		if err != nil {
			if errors.Is(err, ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		if game.Status == models.GameStatusActive {
			return game, nil
		}
	}

	return nil, ErrGameNotFound
}

// GetMaxGameNumber returns the highest game number issued in a session
func (r *redisRepository) GetMaxGameNumber(ctx context.Context, input *GetMaxGameNumberInput) (int, error) {
	if input == nil || input.SessionID == "" {
		return 0, errors.New("input and session ID cannot be empty")
	}

	sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, input.SessionID)
	entries, err := r.client.ZRevRangeWithScores(ctx, sessionGamesKey, 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get max game number: %w", err)
	}

	if len(entries) == 0 {
		return 0, nil
	}

	return int(entries[0].Score), nil
}

// DeleteGame removes a game from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	// Get the game first to find its session indexes
	game, err := r.GetGame(ctx, &GetGameInput{GameID: input.GameID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	pipe.Del(ctx, gameKey)

	sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, game.SessionID)
	pipe.ZRem(ctx, sessionGamesKey, input.GameID)

	activeGamesKey := fmt.Sprintf("%s%s", activeGamesKeyPrefix, game.SessionID)
	pipe.SRem(ctx, activeGamesKey, input.GameID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
