package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
)

// NewRouter builds the HTTP API for the scoring service
func NewRouter(svc svcgame.Service) *chi.Mux {
	sessionHandlers := NewSessionHandlers(svc)
	gameHandlers := NewGameHandlers(svc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestLogMiddleware())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandlers.Create())
			r.Get("/", sessionHandlers.List())
			r.Route("/{session_id}", func(r chi.Router) {
				r.Get("/", sessionHandlers.Get())
				r.Patch("/", sessionHandlers.UpdateSettings())
				r.Post("/participants", sessionHandlers.AddParticipant())
				r.Delete("/participants/{participant_id}", sessionHandlers.RemoveParticipant())
				r.Post("/start", sessionHandlers.Start())
				r.Post("/complete", sessionHandlers.Complete())
				r.Post("/cancel", sessionHandlers.Cancel())

				r.Post("/games", gameHandlers.Create())
				r.Get("/games", gameHandlers.List())
				r.Get("/games/active", gameHandlers.Active())
			})
		})

		r.Route("/games/{game_id}", func(r chi.Router) {
			r.Get("/", gameHandlers.Get())
			r.Get("/scores", gameHandlers.Scores())
			r.Post("/events", gameHandlers.RecordEvent())
			r.Delete("/events/{event_id}", gameHandlers.DeleteEvent())
			r.Post("/complete", gameHandlers.Complete())
			r.Post("/cancel", gameHandlers.Cancel())
		})
	})

	return r
}

func requestLogMiddleware() func(http.Handler) http.Handler {
	logHandler := hlog.NewHandler(log.Logger)
	accessHandler := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		rc := chi.RouteContext(r.Context())
		route := r.URL.Path
		if rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hlog.FromRequest(r).Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration_ms", duration).
			Msg("request")
	})
	return func(next http.Handler) http.Handler {
		return logHandler(accessHandler(next))
	}
}
