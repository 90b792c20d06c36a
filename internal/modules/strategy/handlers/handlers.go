// Package handlers provides HTTP handlers for strategy generation.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/daebak/internal/modules/strategy"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultResultsLimit = 20

// Handler handles strategy HTTP requests
type Handler struct {
	service *strategy.Service
	repo    *strategy.Repository
	log     zerolog.Logger
}

// NewHandler creates a new strategy handler
func NewHandler(service *strategy.Service, repo *strategy.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "strategy").Logger(),
	}
}

// RegisterRoutes registers the strategy routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/strategy/generate", h.HandleGenerate)
	r.Get("/api/strategy/results", h.HandleRecentResults)
	r.Get("/api/strategy/results/{id}", h.HandleGetResult)
}

type generateRequest struct {
	TimestampMS     int64  `json:"timestamp_ms"`
	CarryoverMisses int    `json:"carryover_misses"`
	Selector        string `json:"selector"`
}

// HandleGenerate handles POST /api/strategy/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CarryoverMisses < 0 {
		http.Error(w, "carryover_misses must be non-negative", http.StatusBadRequest)
		return
	}

	timestamp := time.Now()
	if req.TimestampMS > 0 {
		timestamp = time.UnixMilli(req.TimestampMS)
	}

	result, err := h.service.Generate(r.Context(), strategy.GenerateRequest{
		Timestamp:       timestamp,
		CarryoverMisses: req.CarryoverMisses,
		Selector:        req.Selector,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Generation failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": result})
}

// HandleRecentResults handles GET /api/strategy/results
func (h *Handler) HandleRecentResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := h.repo.Recent(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load results")
		http.Error(w, "Failed to load results", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  results,
		"count": len(results),
	})
}

// HandleGetResult handles GET /api/strategy/results/{id}
func (h *Handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.repo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Result not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("result_id", id).Msg("Failed to load result")
		http.Error(w, "Failed to load result", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": result})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
