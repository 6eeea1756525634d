package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
	"github.com/latlat/ledger/internal/services/ledger"
)

// HandlerProvider wraps the ledger Service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *ledger.Service
}

// NewHandler returns a new Handler provider.
func NewHandler(svc *ledger.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, method, endpoint string) {
	writeJSON(w, status, map[string]string{"error": msg}, method, endpoint)
}

// decodeJSON reads a capped request body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

func sessionCodeFromPath(r *http.Request) (string, error) {
	code := chi.URLParam(r, "code")
	if code == "" {
		return "", fmt.Errorf("missing session code")
	}

	return code, nil
}

// --- Request types ---

type playerEntry struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// createSessionRequest carries the caller-chosen session code and the
// joining players. Player names must be unique within the list; the service
// uses the name as the match key for later updates and does not enforce
// uniqueness itself.
type createSessionRequest struct {
	SessionCode string        `json:"sessionCode"`
	InitialFee  *float64      `json:"initialFee"`
	Players     []playerEntry `json:"players"`
}

func (req *createSessionRequest) validate() error {
	if req.SessionCode == "" {
		return fmt.Errorf("sessionCode required")
	}
	if req.InitialFee == nil {
		return fmt.Errorf("initialFee required")
	}
	if *req.InitialFee < 0 {
		return fmt.Errorf("initialFee must not be negative")
	}
	if len(req.Players) == 0 {
		return fmt.Errorf("at least one player required")
	}
	for _, p := range req.Players {
		if p.Name == "" {
			return fmt.Errorf("player name required")
		}
	}

	return nil
}

// betRequest uses pointer fields for the numerics so a missing value can be
// told apart from an explicit zero.
type betRequest struct {
	PlayerName string   `json:"playerName"`
	Amount     *float64 `json:"amount"`
	BankChange *float64 `json:"bankChange"`
}

func (req *betRequest) validate() error {
	if req.PlayerName == "" {
		return fmt.Errorf("playerName required")
	}
	if req.Amount == nil {
		return fmt.Errorf("amount required")
	}
	if req.BankChange == nil {
		return fmt.Errorf("bankChange required")
	}

	return nil
}

// continueRoundRequest carries the full replacement player list with budgets
// pre-deduction. Players omitted here are dropped from the session.
type continueRoundRequest struct {
	InitialFee  *float64        `json:"initialFee"`
	BankBalance *float64        `json:"bankBalance"`
	Players     []domain.Player `json:"players"`
}

func (req *continueRoundRequest) validate() error {
	if req.InitialFee == nil {
		return fmt.Errorf("initialFee required")
	}
	if *req.InitialFee < 0 {
		return fmt.Errorf("initialFee must not be negative")
	}
	if req.BankBalance == nil {
		return fmt.Errorf("bankBalance required")
	}
	if len(req.Players) == 0 {
		return fmt.Errorf("at least one player required")
	}
	for _, p := range req.Players {
		if p.Name == "" {
			return fmt.Errorf("player name required")
		}
	}

	return nil
}

// --- Handlers ---

// CreateSessionHandler handles POST /sessions
func (h *HandlerProvider) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/sessions"))
	defer timer.ObserveDuration()

	var req createSessionRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions")
		return
	}

	err = req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions")
		return
	}

	players := make([]ledger.PlayerEntry, len(req.Players))
	for i, p := range req.Players {
		players[i] = ledger.PlayerEntry{Name: p.Name, Budget: p.Budget}
	}

	doc, id, err := h.svc.CreateSession(r.Context(), ledger.CreateSessionParams{
		SessionCode: req.SessionCode,
		InitialFee:  *req.InitialFee,
		Players:     players,
	})
	if err != nil {
		slog.Error("create session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session", "POST", "/sessions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": id,
		"session":   doc,
	}, "POST", "/sessions")
}

// GetSessionHandler handles GET /sessions/{code}
func (h *HandlerProvider) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/sessions/{code}"))
	defer timer.ObserveDuration()

	code, err := sessionCodeFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "GET", "/sessions/{code}")
		return
	}

	doc, err := h.svc.GetSession(r.Context(), code)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found", "GET", "/sessions/{code}")
			return
		}

		slog.Error("get session failed", "error", err, "sessionCode", code)
		writeError(w, http.StatusInternalServerError, "Failed to fetch session", "GET", "/sessions/{code}")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"session": doc,
	}, "GET", "/sessions/{code}")
}

// PlaceBetHandler handles POST /sessions/{code}/bet
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/sessions/{code}/bet"))
	defer timer.ObserveDuration()

	code, err := sessionCodeFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/bet")
		return
	}

	var req betRequest

	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/bet")
		return
	}

	err = req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/bet")
		return
	}

	err = h.svc.PlaceBet(r.Context(), code, req.PlayerName, *req.Amount, *req.BankChange)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session or player not found", "POST", "/sessions/{code}/bet")
			return
		}

		slog.Error("place bet failed", "error", err, "sessionCode", code)
		writeError(w, http.StatusInternalServerError, "Failed to process bet", "POST", "/sessions/{code}/bet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true}, "POST", "/sessions/{code}/bet")
}

// ContinueRoundHandler handles POST /sessions/{code}/continue
func (h *HandlerProvider) ContinueRoundHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/sessions/{code}/continue"))
	defer timer.ObserveDuration()

	code, err := sessionCodeFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/continue")
		return
	}

	var req continueRoundRequest

	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/continue")
		return
	}

	err = req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/continue")
		return
	}

	err = h.svc.ContinueRound(r.Context(), code, ledger.ContinueRoundParams{
		InitialFee:  *req.InitialFee,
		BankBalance: *req.BankBalance,
		Players:     req.Players,
	})
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found", "POST", "/sessions/{code}/continue")
			return
		}

		slog.Error("continue round failed", "error", err, "sessionCode", code)
		writeError(w, http.StatusInternalServerError, "Failed to continue game", "POST", "/sessions/{code}/continue")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true}, "POST", "/sessions/{code}/continue")
}

// EndSessionHandler handles POST /sessions/{code}/end
func (h *HandlerProvider) EndSessionHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/sessions/{code}/end"))
	defer timer.ObserveDuration()

	code, err := sessionCodeFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "POST", "/sessions/{code}/end")
		return
	}

	err = h.svc.EndSession(r.Context(), code)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found", "POST", "/sessions/{code}/end")
			return
		}

		slog.Error("end session failed", "error", err, "sessionCode", code)
		writeError(w, http.StatusInternalServerError, "Failed to end game", "POST", "/sessions/{code}/end")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true}, "POST", "/sessions/{code}/end")
}

// RecentSessionsHandler handles GET /sessions/recent
func (h *HandlerProvider) RecentSessionsHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/sessions/recent"))
	defer timer.ObserveDuration()

	out, err := h.svc.RecentSessions(r.Context())
	if err != nil {
		slog.Error("recent sessions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch recent sessions", "GET", "/sessions/recent")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": out,
	}, "GET", "/sessions/recent")
}

// CheckStoreHandler handles GET /sessions/check
func (h *HandlerProvider) CheckStoreHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/sessions/check"))
	defer timer.ObserveDuration()

	stats, err := h.svc.CheckStore(r.Context())
	if err != nil {
		slog.Error("store check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Database check failed", "GET", "/sessions/check")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"databases":      stats.Databases,
		"documentCount":  stats.DocumentCount,
		"sampleDocument": stats.SampleDocument,
	}, "GET", "/sessions/check")
}
