package game

import (
	"context"
	"strings"

	"github.com/artelbilliards/kolkhoz/internal/models"
	sessionRepo "github.com/artelbilliards/kolkhoz/internal/repositories/session"
)

// CreateSession creates a new session with the creator as the first
// roster member.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, ErrInvalidSessionName
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidSessionName
	}

	maxParticipants := input.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = s.config.DefaultMaxParticipants
	}
	if maxParticipants < s.config.MinParticipants || maxParticipants > s.config.MaxParticipantsLimit {
		return nil, ErrInvalidMaxParticipants
	}

	now := s.config.Clock.Now()
	sessionID := s.config.UUIDGenerator.NewUUID()

	creator := &models.Participant{
		ID:          s.config.UUIDGenerator.NewUUID(),
		SessionID:   sessionID,
		UserID:      input.CreatorUserID,
		DisplayName: input.CreatorDisplayName,
		Role:        models.ParticipantRoleCreator,
		Active:      true,
		JoinedAt:    now,
	}
	if creator.DisplayName == "" {
		creator.DisplayName = input.CreatorUserID
	}

	session := &models.Session{
		ID:              sessionID,
		Name:            name,
		CreatorID:       creator.ID,
		Status:          models.SessionStatusWaiting,
		MaxParticipants: maxParticipants,
		Participants:    []*models.Participant{creator},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{Session: session}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: session}, nil
}

// ListSessions lists sessions in a given lifecycle state
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		return nil, ErrInvalidStatus
	}

	switch input.Status {
	case models.SessionStatusWaiting, models.SessionStatusInProgress,
		models.SessionStatusCompleted, models.SessionStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	output, err := s.config.SessionRepo.GetSessionsByStatus(ctx, &sessionRepo.GetSessionsByStatusInput{
		Status: input.Status,
	})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: output.Sessions}, nil
}

// AddParticipant adds a player or substitute to a session's roster.
// The roster is locked while a game is running so the active game's
// turn order stays a permutation of the people actually playing.
func (s *service) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
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
	if session.CurrentGameID != "" {
		return nil, ErrSessionActive
	}

	active := session.ActiveParticipants()
	if len(active) >= session.MaxParticipants {
		return nil, ErrSessionFull
	}

	now := s.config.Clock.Now()
	participant := &models.Participant{
		ID:           s.config.UUIDGenerator.NewUUID(),
		SessionID:    session.ID,
		UserID:       input.UserID,
		DisplayName:  input.DisplayName,
		Role:         models.ParticipantRolePlayer,
		IsSubstitute: input.IsSubstitute,
		Active:       true,
		JoinedAt:     now,
	}
	if participant.DisplayName == "" {
		participant.DisplayName = input.UserID
	}

	// New members queue up behind everyone already positioned
	maxPosition := 0
	for _, p := range active {
		if p.QueuePosition > maxPosition {
			maxPosition = p.QueuePosition
		}
	}
	participant.QueuePosition = maxPosition + 1

	session.Participants = append(session.Participants, participant)
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &AddParticipantOutput{Session: session, Participant: participant}, nil
}

// RemoveParticipant soft-removes a roster member. The record stays on
// the roster with Active=false so events from earlier games keep
// resolving to a name.
func (s *service) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
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
	if session.CurrentGameID != "" {
		return nil, ErrSessionActive
	}

	participant := session.Participant(input.ParticipantID)
	if participant == nil || !participant.Active {
		return nil, ErrParticipantNotFound
	}
	if participant.ID == session.CreatorID {
		return nil, ErrCannotRemoveCreator
	}

	now := s.config.Clock.Now()
	participant.Active = false
	participant.LeftAt = &now
	participant.QueuePosition = 0
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &RemoveParticipantOutput{Session: session}, nil
}

// StartSession moves a waiting session into progress once enough
// players have joined. Games can then be created against it.
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
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
	if session.Status != models.SessionStatusWaiting {
		return nil, ErrSessionNotWaiting
	}

	if len(session.ActiveParticipants()) < s.config.MinParticipants {
		return nil, ErrInsufficientPlayers
	}

	now := s.config.Clock.Now()
	session.Status = models.SessionStatusInProgress
	session.StartedAt = &now
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &StartSessionOutput{Session: session}, nil
}

// UpdateSessionSettings changes a session's name or capacity. Nil
// fields are left unchanged.
func (s *service) UpdateSessionSettings(ctx context.Context, input *UpdateSessionSettingsInput) (*UpdateSessionSettingsOutput, error) {
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
	if session.CurrentGameID != "" {
		return nil, ErrSessionLocked
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidSessionName
		}
		session.Name = name
	}

	if input.MaxParticipants != nil {
		max := *input.MaxParticipants
		if max < s.config.MinParticipants || max > s.config.MaxParticipantsLimit {
			return nil, ErrInvalidMaxParticipants
		}
		if max < len(session.ActiveParticipants()) {
			return nil, ErrMaxBelowRoster
		}
		session.MaxParticipants = max
	}

	session.UpdatedAt = s.config.Clock.Now()

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &UpdateSessionSettingsOutput{Session: session}, nil
}

// CompleteSession explicitly completes a session. Finishing the last
// game does not complete the session; the players decide when the
// evening is over. An active game must be completed or cancelled first.
func (s *service) CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error) {
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
	if session.CurrentGameID != "" {
		return nil, ErrGameInProgress
	}

	now := s.config.Clock.Now()
	session.Status = models.SessionStatusCompleted
	session.CompletedAt = &now
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CompleteSessionOutput{Session: session}, nil
}

// CancelSession cancels a session, cascading to its active game. No
// settlement is computed for a cancelled game.
func (s *service) CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error) {
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

	now := s.config.Clock.Now()

	if session.CurrentGameID != "" {
		game, err := s.getGame(ctx, session.CurrentGameID)
		if err == nil && game.Status == models.GameStatusActive {
			game.Status = models.GameStatusCancelled
			game.CompletedAt = &now
			if err := s.saveGame(ctx, game); err != nil {
				return nil, err
			}
		}
		session.CurrentGameID = ""
	}

	session.Status = models.SessionStatusCancelled
	session.CompletedAt = &now
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CancelSessionOutput{Session: session}, nil
}
