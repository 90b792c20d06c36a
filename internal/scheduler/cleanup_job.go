package scheduler

import (
	"time"

	"github.com/aristath/daebak/internal/events"
	"github.com/aristath/daebak/internal/modules/strategy"
)

// CleanupJob trims generated results older than the retention window.
type CleanupJob struct {
	repo         *strategy.Repository
	retention    time.Duration
	eventManager *events.Manager
}

// NewCleanupJob creates the results retention job.
func NewCleanupJob(repo *strategy.Repository, retention time.Duration, eventManager *events.Manager) *CleanupJob {
	return &CleanupJob{repo: repo, retention: retention, eventManager: eventManager}
}

// Name implements Job.
func (j *CleanupJob) Name() string { return "results_cleanup" }

// Run implements Job.
func (j *CleanupJob) Run() error {
	removed, err := j.repo.DeleteOlderThan(time.Now().UTC().Add(-j.retention))
	if err != nil {
		return err
	}
	if removed > 0 && j.eventManager != nil {
		j.eventManager.EmitTyped(events.ResultsCleaned, "scheduler", nil)
	}
	return nil
}
