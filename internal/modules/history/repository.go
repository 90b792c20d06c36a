// Package history stores and serves the historical draw records that feed
// the generation pipeline. The engine never fetches draws itself; an external
// supplier pushes them through the import endpoint and this module is the
// materialized, validated copy.
package history

import (
	"database/sql"
	"fmt"

	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
)

// Repository handles draw persistence in draws.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a draw repository and ensures the schema exists.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	r := &Repository{
		db:  db,
		log: log.With().Str("repo", "draws").Logger(),
	}
	if err := r.initSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS draws (
		draw_number INTEGER PRIMARY KEY,
		date        TEXT NOT NULL,
		n1 INTEGER NOT NULL,
		n2 INTEGER NOT NULL,
		n3 INTEGER NOT NULL,
		n4 INTEGER NOT NULL,
		n5 INTEGER NOT NULL,
		n6 INTEGER NOT NULL,
		bonus INTEGER NOT NULL
	)`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create draws table: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a single draw. The caller validates the record
// first; repository writes assume well-formed input.
func (r *Repository) Upsert(draw domain.DrawRecord) error {
	query := `INSERT OR REPLACE INTO draws
		(draw_number, date, n1, n2, n3, n4, n5, n6, bonus)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	n := draw.Numbers
	_, err := r.db.Exec(query, draw.DrawNumber, draw.Date, n[0], n[1], n[2], n[3], n[4], n[5], draw.Bonus)
	if err != nil {
		return fmt.Errorf("failed to upsert draw %d: %w", draw.DrawNumber, err)
	}
	return nil
}

// BulkImport stores a batch of draws inside one transaction.
func (r *Repository) BulkImport(draws []domain.DrawRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO draws
		(draw_number, date, n1, n2, n3, n4, n5, n6, bonus)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	for _, draw := range draws {
		n := draw.Numbers
		if _, err := stmt.Exec(draw.DrawNumber, draw.Date, n[0], n[1], n[2], n[3], n[4], n[5], draw.Bonus); err != nil {
			return fmt.Errorf("failed to import draw %d: %w", draw.DrawNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	r.log.Info().Int("draws", len(draws)).Msg("Imported draws")
	return nil
}

// All returns every draw ordered ascending by draw number - the ordering the
// time-series models require.
func (r *Repository) All() ([]domain.DrawRecord, error) {
	query := `SELECT draw_number, date, n1, n2, n3, n4, n5, n6, bonus
		FROM draws ORDER BY draw_number ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	var draws []domain.DrawRecord
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, draw)
	}
	return draws, rows.Err()
}

// Latest returns the most recent limit draws, still ordered ascending.
func (r *Repository) Latest(limit int) ([]domain.DrawRecord, error) {
	query := `SELECT draw_number, date, n1, n2, n3, n4, n5, n6, bonus FROM draws
		ORDER BY draw_number DESC LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest draws: %w", err)
	}
	defer rows.Close()

	var draws []domain.DrawRecord
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, draw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	domain.SortDraws(draws)
	return draws, nil
}

// Count returns the number of stored draws.
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM draws`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

func scanDraw(rows *sql.Rows) (domain.DrawRecord, error) {
	var draw domain.DrawRecord
	numbers := make([]int, domain.CombinationSize)
	if err := rows.Scan(
		&draw.DrawNumber, &draw.Date,
		&numbers[0], &numbers[1], &numbers[2], &numbers[3], &numbers[4], &numbers[5],
		&draw.Bonus,
	); err != nil {
		return draw, fmt.Errorf("failed to scan draw: %w", err)
	}
	draw.Numbers = numbers
	return draw, nil
}
