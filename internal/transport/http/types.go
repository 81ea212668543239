package httptransport

import (
	"time"

	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
)

type participantJSON struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id,omitempty"`
	DisplayName       string     `json:"display_name"`
	Role              string     `json:"role"`
	IsSubstitute      bool       `json:"is_substitute"`
	QueuePosition     int        `json:"queue_position"`
	GamesPlayed       int        `json:"games_played"`
	BallsPotted       int        `json:"balls_potted"`
	BalanceMinorUnits int64      `json:"balance_minor_units"`
	Active            bool       `json:"active"`
	JoinedAt          time.Time  `json:"joined_at"`
	LeftAt            *time.Time `json:"left_at,omitempty"`
}

type sessionJSON struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	CreatorID       string            `json:"creator_id"`
	Status          string            `json:"status"`
	MaxParticipants int               `json:"max_participants"`
	Participants    []participantJSON `json:"participants"`
	CurrentGameID   string            `json:"current_game_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

type eventJSON struct {
	ID             string    `json:"id"`
	ParticipantID  string    `json:"participant_id"`
	Type           string    `json:"type"`
	Points         int       `json:"points,omitempty"`
	Penalty        int       `json:"penalty,omitempty"`
	SequenceNumber int       `json:"sequence_number"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
}

type resultJSON struct {
	ParticipantID string `json:"participant_id"`
	QueuePosition int    `json:"queue_position"`
	BallsPotted   int    `json:"balls_potted"`
	PointsScored  int    `json:"points_scored"`
	AmountEarned  int64  `json:"amount_earned"`
	AmountPaid    int64  `json:"amount_paid"`
	NetAmount     int64  `json:"net_amount"`
}

type gameJSON struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"session_id"`
	GameNumber  int          `json:"game_number"`
	Status      string       `json:"status"`
	Policy      string       `json:"policy"`
	TurnOrder   []string     `json:"turn_order"`
	Events      []eventJSON  `json:"events"`
	WinnerID    string       `json:"winner_id,omitempty"`
	Results     []resultJSON `json:"results,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

func toSessionJSON(s *models.Session) sessionJSON {
	participants := make([]participantJSON, 0, len(s.Participants))
	for _, p := range s.Participants {
		participants = append(participants, participantJSON{
			ID:                p.ID,
			UserID:            p.UserID,
			DisplayName:       p.DisplayName,
			Role:              string(p.Role),
			IsSubstitute:      p.IsSubstitute,
			QueuePosition:     p.QueuePosition,
			GamesPlayed:       p.GamesPlayed,
			BallsPotted:       p.BallsPotted,
			BalanceMinorUnits: p.BalanceMinorUnits,
			Active:            p.Active,
			JoinedAt:          p.JoinedAt,
			LeftAt:            p.LeftAt,
		})
	}
	return sessionJSON{
		ID:              s.ID,
		Name:            s.Name,
		CreatorID:       s.CreatorID,
		Status:          string(s.Status),
		MaxParticipants: s.MaxParticipants,
		Participants:    participants,
		CurrentGameID:   s.CurrentGameID,
		CreatedAt:       s.CreatedAt,
		StartedAt:       s.StartedAt,
		CompletedAt:     s.CompletedAt,
	}
}

func toGameJSON(g *models.Game) gameJSON {
	events := make([]eventJSON, 0, len(g.Events))
	for _, e := range g.Events {
		events = append(events, eventJSON{
			ID:             e.ID,
			ParticipantID:  e.ParticipantID,
			Type:           string(e.Type),
			Points:         e.Points,
			Penalty:        e.Penalty,
			SequenceNumber: e.SequenceNumber,
			Deleted:        e.Deleted,
			CreatedAt:      e.CreatedAt,
		})
	}
	return gameJSON{
		ID:          g.ID,
		SessionID:   g.SessionID,
		GameNumber:  g.GameNumber,
		Status:      string(g.Status),
		Policy:      string(g.Policy),
		TurnOrder:   g.TurnOrder,
		Events:      events,
		WinnerID:    g.WinnerID,
		Results:     toResultsJSON(g.Results),
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
	}
}

func toResultsJSON(results []*models.GameResult) []resultJSON {
	if len(results) == 0 {
		return nil
	}
	out := make([]resultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, resultJSON{
			ParticipantID: r.ParticipantID,
			QueuePosition: r.QueuePosition,
			BallsPotted:   r.BallsPotted,
			PointsScored:  r.PointsScored,
			AmountEarned:  r.AmountEarned,
			AmountPaid:    r.AmountPaid,
			NetAmount:     r.NetAmount,
		})
	}
	return out
}

type liveScoreJSON struct {
	ParticipantID string `json:"participant_id"`
	QueuePosition int    `json:"queue_position"`
	BallsPotted   int    `json:"balls_potted"`
	PointsScored  int    `json:"points_scored"`
}

// liveScores folds the non-deleted events of a running game into
// per-slot point totals, without any money movement.
func liveScores(g *models.Game) []liveScoreJSON {
	position := make(map[string]int, len(g.TurnOrder))
	scores := make([]liveScoreJSON, len(g.TurnOrder))
	for i, id := range g.TurnOrder {
		position[id] = i
		scores[i] = liveScoreJSON{ParticipantID: id, QueuePosition: i + 1}
	}

	for _, e := range g.Events {
		if e.Deleted {
			continue
		}
		idx, ok := position[e.ParticipantID]
		if !ok {
			continue
		}
		switch e.Type {
		case models.EventTypeBallPotted:
			scores[idx].PointsScored += e.Points
			scores[idx].BallsPotted++
		case models.EventTypeFoul:
			scores[idx].PointsScored -= e.Penalty
		}
	}
	return scores
}

func toSettlementJSON(res *settlement.Result) map[string]any {
	return map[string]any{
		"winner_id": res.WinnerID,
		"results":   toResultsJSON(res.PerParticipant),
	}
}
