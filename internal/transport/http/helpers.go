package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/artelbilliards/kolkhoz/internal/queue"
	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

// writeServiceError translates the service error taxonomy onto HTTP:
// validation errors are 400, lifecycle conflicts are 409, referential
// misses are 404, anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	writeHTTPError(w, status, code)
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, svcgame.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, svcgame.ErrGameNotFound):
		return http.StatusNotFound, "game_not_found"
	case errors.Is(err, svcgame.ErrParticipantNotFound):
		return http.StatusNotFound, "participant_not_found"
	case errors.Is(err, svcgame.ErrEventNotFound):
		return http.StatusNotFound, "event_not_found"

	case errors.Is(err, svcgame.ErrInvalidSessionName):
		return http.StatusBadRequest, "invalid_session_name"
	case errors.Is(err, svcgame.ErrInvalidMaxParticipants):
		return http.StatusBadRequest, "invalid_max_participants"
	case errors.Is(err, svcgame.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid_event"
	case errors.Is(err, svcgame.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status"
	case errors.Is(err, svcgame.ErrUnknownParticipant):
		return http.StatusBadRequest, "unknown_participant"
	case errors.Is(err, svcgame.ErrNoParticipants):
		return http.StatusBadRequest, "no_participants"
	case errors.Is(err, svcgame.ErrInsufficientPlayers):
		return http.StatusBadRequest, "insufficient_players"
	case errors.Is(err, svcgame.ErrEmptyRoster):
		return http.StatusBadRequest, "empty_turn_order"
	case errors.Is(err, queue.ErrUnknownPolicy):
		return http.StatusBadRequest, "unknown_queue_policy"
	case errors.Is(err, queue.ErrInvalidRoster):
		return http.StatusBadRequest, "invalid_roster"

	case errors.Is(err, svcgame.ErrSessionFull):
		return http.StatusConflict, "session_full"
	case errors.Is(err, svcgame.ErrSessionActive):
		return http.StatusConflict, "roster_locked"
	case errors.Is(err, svcgame.ErrSessionLocked):
		return http.StatusConflict, "settings_locked"
	case errors.Is(err, svcgame.ErrSessionNotWaiting):
		return http.StatusConflict, "session_already_started"
	case errors.Is(err, svcgame.ErrSessionTerminal):
		return http.StatusConflict, "session_terminal"
	case errors.Is(err, svcgame.ErrGameInProgress):
		return http.StatusConflict, "game_in_progress"
	case errors.Is(err, svcgame.ErrGameNotActive):
		return http.StatusConflict, "game_not_active"
	case errors.Is(err, svcgame.ErrCannotRemoveCreator):
		return http.StatusConflict, "cannot_remove_creator"
	case errors.Is(err, svcgame.ErrMaxBelowRoster):
		return http.StatusConflict, "max_below_roster"
	}
	return http.StatusInternalServerError, "internal_error"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

func parsePagination(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
