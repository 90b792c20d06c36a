// Package handlers provides HTTP handlers for scoring diagnostics.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/history"
	"github.com/aristath/daebak/internal/modules/scoring"
	"github.com/aristath/daebak/internal/rng"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for the scoring module
type Handlers struct {
	history *history.Service
	log     zerolog.Logger
}

// NewHandlers creates a new scoring handlers instance
func NewHandlers(historyService *history.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		history: historyService,
		log:     log.With().Str("module", "scoring_handlers").Logger(),
	}
}

// HandleScoreAll handles POST /api/scoring/score: runs every model against
// the stored history and returns the raw score vectors. The optional seed
// parameter pins the Monte Carlo stream for reproducible output.
func (h *Handlers) HandleScoreAll(w http.ResponseWriter, r *http.Request) {
	seed := time.Now().UnixMilli()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	draws, err := h.history.OrderedDraws()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load draws")
		http.Error(w, "Failed to load draws", http.StatusInternalServerError)
		return
	}

	runner := scoring.NewRunner(scoring.DefaultModels(rng.New(seed).Fork("monte_carlo")), h.log)
	vectors, err := runner.ScoreAll(r.Context(), draws)
	if err != nil {
		h.log.Error().Err(err).Msg("Scoring failed")
		http.Error(w, "Scoring failed", http.StatusInternalServerError)
		return
	}

	scores := make(map[string][]float64, len(vectors))
	for name, vector := range vectors {
		scores[name] = vector[domain.MinNumber:]
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"scores": scores,
			"draws":  len(draws),
			"seed":   seed,
		},
	})
}

// HandleTrend handles GET /api/scoring/trend/{number}: the hit-rate trend
// diagnostic for a single number.
func (h *Handlers) HandleTrend(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < domain.MinNumber || number > domain.MaxNumber {
		http.Error(w, "Number must be in [1,45]", http.StatusBadRequest)
		return
	}

	draws, err := h.history.OrderedDraws()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load draws")
		http.Error(w, "Failed to load draws", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{"number": number}
	if slope := scoring.TrendDiagnostic(draws, []int{number}); slope != nil {
		response["trend_slope"] = *slope
	} else {
		response["trend_slope"] = nil
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": response})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
