package scheduler

import (
	"context"
	"time"

	"github.com/aristath/daebak/internal/backup"
)

const backupTimeout = 10 * time.Minute

// BackupJob uploads the databases on schedule.
type BackupJob struct {
	service *backup.Service
}

// NewBackupJob creates the backup job.
func NewBackupJob(service *backup.Service) *BackupJob {
	return &BackupJob{service: service}
}

// Name implements Job.
func (j *BackupJob) Name() string { return "database_backup" }

// Run implements Job.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()
	return j.service.Run(ctx)
}
