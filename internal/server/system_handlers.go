package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/daebak/internal/database"
)

// SystemHandlers serves health and operational endpoints.
type SystemHandlers struct {
	cfg Config
	log zerolog.Logger
}

// NewSystemHandlers creates the system handlers.
func NewSystemHandlers(cfg Config, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		cfg: cfg,
		log: log.With().Str("handler", "system").Logger(),
	}
}

// HandleHealth handles GET /api/system/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	databases := map[string]interface{}{}
	for _, db := range []*database.DB{h.cfg.DrawsDB, h.cfg.ResultsDB} {
		if db == nil {
			continue
		}
		size := 0.0
		if info, err := os.Stat(db.Path()); err == nil {
			size = float64(info.Size()) / 1024 / 1024
		}
		databases[db.Name()] = map[string]interface{}{
			"path":    db.Path(),
			"size_mb": size,
		}
	}

	response := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": time.Since(h.cfg.StartupTime).Seconds(),
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"databases":      databases,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleTriggerBackup handles POST /api/system/backup
func (h *SystemHandlers) HandleTriggerBackup(w http.ResponseWriter, r *http.Request) {
	if h.cfg.BackupService == nil {
		http.Error(w, "Backups are not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.cfg.BackupService.Run(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Manual backup failed")
		http.Error(w, "Backup failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "completed"})
}

// getSystemStats calculates CPU and RAM usage percentages. Uses a short
// 100ms CPU sampling interval to keep the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
