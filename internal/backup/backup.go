// Package backup uploads the sqlite databases to an S3-compatible bucket.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	appconfig "github.com/aristath/daebak/internal/config"
	"github.com/aristath/daebak/internal/events"
)

// Service uploads database files to the configured bucket. Works against
// Cloudflare R2 or plain AWS S3.
type Service struct {
	cfg          *appconfig.BackupConfig
	files        []string
	uploader     *manager.Uploader
	eventManager *events.Manager
	log          zerolog.Logger
}

// New creates the backup service for the given database files. Returns an
// error when backups are enabled but the bucket is not configured.
func New(ctx context.Context, cfg *appconfig.BackupConfig, files []string, eventManager *events.Manager, log zerolog.Logger) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("backups are disabled")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("backup bucket not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Service{
		cfg:          cfg,
		files:        files,
		uploader:     manager.NewUploader(client),
		eventManager: eventManager,
		log:          log.With().Str("component", "backup").Logger(),
	}, nil
}

// Run uploads every configured database file under a date-stamped prefix.
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()
	prefix := start.UTC().Format("2006-01-02")

	uploaded := 0
	for _, path := range s.files {
		if err := s.uploadFile(ctx, prefix, path); err != nil {
			if s.eventManager != nil {
				s.eventManager.EmitError("backup", err, map[string]interface{}{"file": path})
			}
			return err
		}
		uploaded++
	}

	duration := time.Since(start)
	if s.eventManager != nil {
		s.eventManager.EmitTyped(events.BackupCompleted, "backup", &events.BackupCompletedData{
			Files:    uploaded,
			Bucket:   s.cfg.Bucket,
			Duration: duration.Round(time.Millisecond).String(),
		})
	}
	s.log.Info().
		Int("files", uploaded).
		Str("bucket", s.cfg.Bucket).
		Dur("duration", duration).
		Msg("Backup completed")
	return nil
}

func (s *Service) uploadFile(ctx context.Context, prefix, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s", prefix, filepath.Base(path))
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	s.log.Debug().Str("key", key).Msg("Uploaded backup file")
	return nil
}
