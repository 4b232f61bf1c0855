package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/format"
	"github.com/srgjo27/ticketing_client/internal/core/services"
	"github.com/srgjo27/ticketing_client/internal/platform/metrics"
)

type countdownView struct {
	RemainingSeconds int64           `json:"remainingSeconds"`
	Display          string          `json:"display"`
	Severity         domain.Severity `json:"severity"`
}

type sessionView struct {
	Payment   services.PaymentSnapshot `json:"payment"`
	Countdown *countdownView           `json:"countdown,omitempty"`
}

// SessionHandler serves the local status endpoint of a running checkout.
type SessionHandler struct {
	session *services.CheckoutSession
}

func NewSessionHandler(session *services.CheckoutSession) *SessionHandler {
	return &SessionHandler{session: session}
}

func (h *SessionHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/session", h.GetSession)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no checkout in progress"})
		return
	}

	view := sessionView{}
	if poller := h.session.Poller(); poller != nil {
		view.Payment = poller.Snapshot()
	}
	if cd := h.session.Countdown(); cd != nil {
		remaining := cd.Remaining()
		view.Countdown = &countdownView{
			RemainingSeconds: int64(remaining.Seconds()),
			Display:          format.Clock(remaining),
			Severity:         cd.Severity(),
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
