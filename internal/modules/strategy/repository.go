package strategy

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Repository persists generated strategy results. Headline columns are
// queryable; the full result rides along as a msgpack blob.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates the results repository and ensures its schema.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	repo := &Repository{
		db:  db,
		log: log.With().Str("component", "strategy_repository").Logger(),
	}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("initializing results schema: %w", err)
	}
	return repo, nil
}

func (r *Repository) initSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			id             TEXT PRIMARY KEY,
			generated_at   TIMESTAMP NOT NULL,
			method         TEXT NOT NULL,
			total_ev       REAL NOT NULL,
			recommendation TEXT NOT NULL,
			payload        BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_generated_at ON results(generated_at);
	`)
	return err
}

// Save stores one result.
func (r *Repository) Save(result *domain.StrategyResult) error {
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result %s: %w", result.ID, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO results (id, generated_at, method, total_ev, recommendation, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.GeneratedAt,
		result.Method,
		result.ExpectedValue.TotalEV,
		string(result.ExpectedValue.Recommendation),
		payload,
	)
	if err != nil {
		return fmt.Errorf("inserting result %s: %w", result.ID, err)
	}

	r.log.Debug().Str("result_id", result.ID).Msg("Saved strategy result")
	return nil
}

// Get returns one result by id, or sql.ErrNoRows.
func (r *Repository) Get(id string) (*domain.StrategyResult, error) {
	var payload []byte
	err := r.db.QueryRow(`SELECT payload FROM results WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return decodeResult(payload)
}

// Recent returns the latest results, newest first.
func (r *Repository) Recent(limit int) ([]*domain.StrategyResult, error) {
	rows, err := r.db.Query(`SELECT payload FROM results ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent results: %w", err)
	}
	defer rows.Close()

	var results []*domain.StrategyResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		result, err := decodeResult(payload)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// DeleteOlderThan removes results generated before the cutoff and reports
// how many were removed.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM results WHERE generated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting stale results: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		r.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Cleaned up stale results")
	}
	return removed, nil
}

// Count returns the stored result count.
func (r *Repository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&count)
	return count, err
}

func decodeResult(payload []byte) (*domain.StrategyResult, error) {
	var result domain.StrategyResult
	if err := msgpack.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decoding result payload: %w", err)
	}
	return &result, nil
}
