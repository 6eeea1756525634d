package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/latlat/ledger/internal/services/ledger"
)

// NewRouter constructs the router with all API endpoints registered.
// /sessions/recent and /sessions/check are static segments, so chi resolves
// them ahead of the {code} param routes.
func NewRouter(svc *ledger.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/sessions", h.CreateSessionHandler)
	r.Get("/sessions/recent", h.RecentSessionsHandler)
	r.Get("/sessions/check", h.CheckStoreHandler)
	r.Get("/sessions/{code}", h.GetSessionHandler)
	r.Post("/sessions/{code}/bet", h.PlaceBetHandler)
	r.Post("/sessions/{code}/continue", h.ContinueRoundHandler)
	r.Post("/sessions/{code}/end", h.EndSessionHandler)

	return r
}
