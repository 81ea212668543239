package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/artelbilliards/kolkhoz/internal/queue"
	gameRepo "github.com/artelbilliards/kolkhoz/internal/repositories/game"
	queueHistoryRepo "github.com/artelbilliards/kolkhoz/internal/repositories/queuehistory"
	sessionRepo "github.com/artelbilliards/kolkhoz/internal/repositories/session"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
)

// service implements the Service interface
type service struct {
	config *Config

	// sessionLocks serializes mutating operations per session.
	// CreateGame, roster changes, and event recording all
	// read-then-write session and game state, and the no-repeat
	// guarantee needs read-then-append atomicity on the history.
	sessionLocks sync.Map
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.QueueHistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}
	if cfg.Generator == nil {
		return nil, ErrNilGenerator
	}
	if cfg.Calculator == nil {
		return nil, ErrNilCalculator
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.MinParticipants == 0 {
		cfg.MinParticipants = 2
	}
	if cfg.MaxParticipantsLimit == 0 {
		cfg.MaxParticipantsLimit = 8
	}
	if cfg.DefaultMaxParticipants == 0 {
		cfg.DefaultMaxParticipants = 4
	}

	return &service{config: cfg}, nil
}

// lockSession takes the per-session write lock and returns the unlock.
// Sessions are independent units of concurrency; locks are never held
// across sessions.
func (s *service) lockSession(sessionID string) func() {
	v, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// getSession fetches a session, mapping the repository sentinel
func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.config.SessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// getGame fetches a game, mapping the repository sentinel
func (s *service) getGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.config.GameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: gameID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// saveGame persists a game
func (s *service) saveGame(ctx context.Context, game *models.Game) error {
	return s.config.GameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game})
}

// CreateGame starts the next game in a session: it generates a turn
// order under the requested policy, assigns the next game number, and
// marks the game as the session's current one.
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	unlock := s.lockSession(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == models.SessionStatusCompleted || session.Status == models.SessionStatusCancelled {
		return nil, ErrSessionTerminal
	}

	// At most one active game per session
	if session.CurrentGameID != "" {
		current, err := s.getGame(ctx, session.CurrentGameID)
		if err != nil && !errors.Is(err, ErrGameNotFound) {
			return nil, err
		}
		if current != nil && current.Status == models.GameStatusActive {
			return nil, ErrGameInProgress
		}
	}

	roster := session.ActiveParticipants()
	if len(roster) == 0 {
		return nil, ErrNoParticipants
	}

	var history [][]string
	if input.Policy == models.QueuePolicyRandomNoRepeat {
		orders, err := s.config.QueueHistoryRepo.GetOrders(ctx, &queueHistoryRepo.GetOrdersInput{
			SessionID: session.ID,
			Policy:    input.Policy,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get turn order history: %w", err)
		}
		history = orders.Orders
	}

	generated, err := s.config.Generator.Generate(&queue.GenerateInput{
		Policy:       input.Policy,
		Participants: roster,
		History:      history,
		CustomOrder:  input.CustomOrder,
	})
	if err != nil {
		return nil, err
	}

	turnOrder := make([]string, len(generated.Order))
	for i, p := range generated.Order {
		turnOrder[i] = p.ID
	}
	if len(turnOrder) == 0 {
		return nil, ErrEmptyRoster
	}

	maxNumber, err := s.config.GameRepo.GetMaxGameNumber(ctx, &gameRepo.GetMaxGameNumberInput{
		SessionID: session.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get max game number: %w", err)
	}

	now := s.config.Clock.Now()
	game := &models.Game{
		ID:         s.config.UUIDGenerator.NewUUID(),
		SessionID:  session.ID,
		GameNumber: maxNumber + 1,
		Status:     models.GameStatusActive,
		Policy:     input.Policy,
		TurnOrder:  turnOrder,
		Events:     []*models.Event{},
		CreatedAt:  now,
	}

	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	// Only the no-repeat policy consults or extends the history
	if input.Policy == models.QueuePolicyRandomNoRepeat {
		err = s.config.QueueHistoryRepo.AppendOrder(ctx, &queueHistoryRepo.AppendOrderInput{
			SessionID: session.ID,
			GameID:    game.ID,
			Policy:    input.Policy,
			Order:     turnOrder,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to append turn order history: %w", err)
		}
	}

	// Queue positions mirror the new turn order, 1-based
	for i, participantID := range turnOrder {
		if p := session.Participant(participantID); p != nil {
			p.QueuePosition = i + 1
		}
	}

	session.CurrentGameID = game.ID
	if session.Status == models.SessionStatusWaiting {
		session.Status = models.SessionStatusInProgress
		session.StartedAt = &now
	}
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CreateGameOutput{Game: game}, nil
}

// GetGame retrieves a game by ID
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{Game: game}, nil
}

// GetSessionGames lists a session's games, newest first
func (s *service) GetSessionGames(ctx context.Context, input *GetSessionGamesInput) (*GetSessionGamesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	out, err := s.config.GameRepo.GetSessionGames(ctx, &gameRepo.GetSessionGamesInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &GetSessionGamesOutput{Games: out.Games}, nil
}

// GetActiveGame retrieves the session's active game
func (s *service) GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*GetActiveGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	game, err := s.config.GameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	return &GetActiveGameOutput{Game: game}, nil
}

// RecordEvent appends an event to an active game's log with the next
// sequence number. The log stays append-only; nothing else on the game
// changes.
func (s *service) RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	switch input.Type {
	case models.EventTypeBallPotted, models.EventTypeFoul, models.EventTypeOther:
	default:
		return nil, ErrInvalidEvent
	}
	if input.Points < 0 || input.Penalty < 0 {
		return nil, ErrInvalidEvent
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockSession(game.SessionID)
	defer unlock()

	// Re-read under the lock so the sequence number cannot race
	game, err = s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if game.Status != models.GameStatusActive {
		return nil, ErrGameNotActive
	}

	if !game.HasParticipant(input.ParticipantID) {
		return nil, ErrUnknownParticipant
	}

	event := &models.Event{
		ID:             s.config.UUIDGenerator.NewUUID(),
		GameID:         game.ID,
		ParticipantID:  input.ParticipantID,
		Type:           input.Type,
		Points:         input.Points,
		Penalty:        input.Penalty,
		SequenceNumber: game.NextSequenceNumber(),
		CreatedAt:      s.config.Clock.Now(),
	}

	game.Events = append(game.Events, event)

	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return &RecordEventOutput{Game: game, Event: event}, nil
}

// SoftDeleteEvent flags an event as corrected. The event keeps its
// sequence number and stays in the log for audit order.
func (s *service) SoftDeleteEvent(ctx context.Context, input *SoftDeleteEventInput) (*SoftDeleteEventOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockSession(game.SessionID)
	defer unlock()

	game, err = s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if game.Status != models.GameStatusActive {
		return nil, ErrGameNotActive
	}

	var target *models.Event
	for _, e := range game.Events {
		if e.ID == input.EventID {
			target = e
			break
		}
	}
	if target == nil {
		return nil, ErrEventNotFound
	}

	target.Deleted = true

	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return &SoftDeleteEventOutput{Game: game}, nil
}

// CompleteGame settles an active game and folds the results into the
// session roster's cumulative counters. The session itself stays open:
// it only completes through an explicit CompleteSession call.
func (s *service) CompleteGame(ctx context.Context, input *CompleteGameInput) (*CompleteGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockSession(game.SessionID)
	defer unlock()

	game, err = s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if game.Status != models.GameStatusActive {
		return nil, ErrGameNotActive
	}

	result, err := s.config.Calculator.Compute(game.TurnOrder, game.Events)
	if err != nil {
		if errors.Is(err, settlement.ErrEmptyTurnOrder) {
			return nil, ErrEmptyRoster
		}
		return nil, err
	}

	now := s.config.Clock.Now()
	game.Status = models.GameStatusCompleted
	game.WinnerID = result.WinnerID
	game.Results = result.PerParticipant
	game.CompletedAt = &now

	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	session, err := s.getSession(ctx, game.SessionID)
	if err != nil {
		return nil, err
	}

	for _, r := range result.PerParticipant {
		p := session.Participant(r.ParticipantID)
		if p == nil {
			continue
		}
		p.GamesPlayed++
		p.BallsPotted += r.BallsPotted
		p.BalanceMinorUnits += r.NetAmount
	}

	if session.CurrentGameID == game.ID {
		session.CurrentGameID = ""
	}
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CompleteGameOutput{Game: game, Result: result}, nil
}

// CancelGame cancels an active game without settlement
func (s *service) CancelGame(ctx context.Context, input *CancelGameInput) (*CancelGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockSession(game.SessionID)
	defer unlock()

	game, err = s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if game.Status != models.GameStatusActive {
		return nil, ErrGameNotActive
	}

	now := s.config.Clock.Now()
	game.Status = models.GameStatusCancelled
	game.CompletedAt = &now

	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	session, err := s.getSession(ctx, game.SessionID)
	if err != nil {
		return nil, err
	}

	if session.CurrentGameID == game.ID {
		session.CurrentGameID = ""
		session.UpdatedAt = now
		if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
			return nil, err
		}
	}

	return &CancelGameOutput{Game: game}, nil
}
