// Package handlers provides HTTP handlers for draw history management.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/events"
	"github.com/aristath/daebak/internal/modules/history"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultLatestLimit = 10

// Handler handles draw history HTTP requests
type Handler struct {
	service      *history.Service
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(service *history.Service, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		eventManager: eventManager,
		log:          log.With().Str("handler", "history").Logger(),
	}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/history/import", h.HandleImport)
	r.Get("/api/history/draws", h.HandleListDraws)
	r.Get("/api/history/latest", h.HandleLatest)
}

type importRequest struct {
	Draws []domain.DrawRecord `json:"draws"`
}

// HandleImport handles POST /api/history/import
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Draws) == 0 {
		http.Error(w, "No draws provided", http.StatusBadRequest)
		return
	}

	imported, err := h.service.Import(req.Draws)
	if err != nil {
		h.log.Error().Err(err).Msg("Import failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	total, err := h.service.Count()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count draws")
		http.Error(w, "Failed to count draws", http.StatusInternalServerError)
		return
	}

	if h.eventManager != nil {
		h.eventManager.EmitTyped(events.HistoryImported, "history", &events.HistoryImportedData{
			Imported: imported,
			Total:    total,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": imported,
		"total":    total,
	})
}

// HandleListDraws handles GET /api/history/draws
func (h *Handler) HandleListDraws(w http.ResponseWriter, r *http.Request) {
	draws, err := h.service.OrderedDraws()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load draws")
		http.Error(w, "Failed to load draws", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  draws,
		"count": len(draws),
	})
}

// HandleLatest handles GET /api/history/latest
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	limit := defaultLatestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	draws, err := h.service.Latest(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load latest draws")
		http.Error(w, "Failed to load latest draws", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  draws,
		"count": len(draws),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
