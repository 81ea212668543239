package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artelbilliards/kolkhoz/internal/models"
	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
)

// SessionHandlers exposes the session lifecycle over HTTP
type SessionHandlers struct {
	svc svcgame.Service
}

func NewSessionHandlers(svc svcgame.Service) *SessionHandlers {
	return &SessionHandlers{svc: svc}
}

func (h *SessionHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name               string `json:"name"`
			MaxParticipants    int    `json:"max_participants"`
			CreatorUserID      string `json:"creator_user_id"`
			CreatorDisplayName string `json:"creator_display_name"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		output, err := h.svc.CreateSession(r.Context(), &svcgame.CreateSessionInput{
			Name:               body.Name,
			MaxParticipants:    body.MaxParticipants,
			CreatorUserID:      body.CreatorUserID,
			CreatorDisplayName: body.CreatorDisplayName,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.ListSessions(r.Context(), &svcgame.ListSessionsInput{
			Status: models.SessionStatus(r.URL.Query().Get("status")),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		items := make([]sessionJSON, 0, len(output.Sessions))
		for _, session := range output.Sessions {
			items = append(items, toSessionJSON(session))
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *SessionHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.GetSession(r.Context(), &svcgame.GetSessionInput{
			SessionID: chi.URLParam(r, "session_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) AddParticipant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID       string `json:"user_id"`
			DisplayName  string `json:"display_name"`
			IsSubstitute bool   `json:"is_substitute"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		output, err := h.svc.AddParticipant(r.Context(), &svcgame.AddParticipantInput{
			SessionID:    chi.URLParam(r, "session_id"),
			UserID:       body.UserID,
			DisplayName:  body.DisplayName,
			IsSubstitute: body.IsSubstitute,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) RemoveParticipant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.RemoveParticipant(r.Context(), &svcgame.RemoveParticipantInput{
			SessionID:     chi.URLParam(r, "session_id"),
			ParticipantID: chi.URLParam(r, "participant_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.StartSession(r.Context(), &svcgame.StartSessionInput{
			SessionID: chi.URLParam(r, "session_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) UpdateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name            *string `json:"name"`
			MaxParticipants *int    `json:"max_participants"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		output, err := h.svc.UpdateSessionSettings(r.Context(), &svcgame.UpdateSessionSettingsInput{
			SessionID:       chi.URLParam(r, "session_id"),
			Name:            body.Name,
			MaxParticipants: body.MaxParticipants,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.CompleteSession(r.Context(), &svcgame.CompleteSessionInput{
			SessionID: chi.URLParam(r, "session_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}

func (h *SessionHandlers) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		output, err := h.svc.CancelSession(r.Context(), &svcgame.CancelSessionInput{
			SessionID: chi.URLParam(r, "session_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionJSON(output.Session))
	}
}
