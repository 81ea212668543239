package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artelbilliards/kolkhoz/internal/models"
	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
)

// GameHandlers exposes games and their event logs over HTTP
type GameHandlers struct {
	svc svcgame.Service
}

func NewGameHandlers(svc svcgame.Service) *GameHandlers {
	return &GameHandlers{svc: svc}
}

func (h *GameHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Policy      string   `json:"policy"`
			CustomOrder []string `json:"custom_order"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		output, err := h.svc.CreateGame(r.Context(), &svcgame.CreateGameInput{
			SessionID:   chi.URLParam(r, "session_id"),
			Policy:      models.QueuePolicy(body.Policy),
			CustomOrder: body.CustomOrder,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toGameJSON(output.Game))
	}
}

func (h *GameHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.GetGame(r.Context(), &svcgame.GetGameInput{
			GameID: chi.URLParam(r, "game_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameJSON(output.Game))
	}
}

func (h *GameHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		output, err := h.svc.GetSessionGames(r.Context(), &svcgame.GetSessionGamesInput{
			SessionID: chi.URLParam(r, "session_id"),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		items := make([]gameJSON, 0, len(output.Games))
		for _, g := range output.Games {
			items = append(items, toGameJSON(g))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":  items,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func (h *GameHandlers) Active() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.GetActiveGame(r.Context(), &svcgame.GetActiveGameInput{
			SessionID: chi.URLParam(r, "session_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameJSON(output.Game))
	}
}

func (h *GameHandlers) RecordEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ParticipantID string `json:"participant_id"`
			Type          string `json:"type"`
			Points        int    `json:"points"`
			Penalty       int    `json:"penalty"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		output, err := h.svc.RecordEvent(r.Context(), &svcgame.RecordEventInput{
			GameID:        chi.URLParam(r, "game_id"),
			ParticipantID: body.ParticipantID,
			Type:          models.EventType(body.Type),
			Points:        body.Points,
			Penalty:       body.Penalty,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toGameJSON(output.Game))
	}
}

func (h *GameHandlers) DeleteEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.SoftDeleteEvent(r.Context(), &svcgame.SoftDeleteEventInput{
			GameID:  chi.URLParam(r, "game_id"),
			EventID: chi.URLParam(r, "event_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameJSON(output.Game))
	}
}

func (h *GameHandlers) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.CompleteGame(r.Context(), &svcgame.CompleteGameInput{
			GameID: chi.URLParam(r, "game_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"game":       toGameJSON(output.Game),
			"settlement": toSettlementJSON(output.Result),
		})
	}
}

// Scores returns the per-participant standings of a game: the settled
// results once the game is completed, or totals folded from the live
// event log while it is still running.
func (h *GameHandlers) Scores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.GetGame(r.Context(), &svcgame.GetGameInput{
			GameID: chi.URLParam(r, "game_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		game := output.Game
		if game.Status == models.GameStatusCompleted {
			writeJSON(w, http.StatusOK, map[string]any{
				"game_id":   game.ID,
				"status":    string(game.Status),
				"winner_id": game.WinnerID,
				"results":   toResultsJSON(game.Results),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"game_id": game.ID,
			"status":  string(game.Status),
			"results": liveScores(game),
		})
	}
}

func (h *GameHandlers) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.CancelGame(r.Context(), &svcgame.CancelGameInput{
			GameID: chi.URLParam(r, "game_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameJSON(output.Game))
	}
}
