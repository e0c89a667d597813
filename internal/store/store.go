// Package store persists the merged prediction table in SQLite.
//
// The table is a snapshot: each pipeline run fully replaces it. Replacement
// follows a write-new, swap, drop-old discipline inside one transaction, so
// concurrent readers see either the previous snapshot or the new one, never
// a partial table.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/campus-case-forecast/internal/forecast"
)

// PredictionRecord is one persisted row. DS and the yhat columns are stored
// as text, matching the fixed external schema.
type PredictionRecord struct {
	DS         string `json:"DS"`
	YhatTampa  string `json:"YHAT_TAMPA"`
	YhatStPete string `json:"YHAT_ST_PETE"`
	YhatHealth string `json:"YHAT_HEALTH"`
}

// Store wraps SQLite access for the prediction snapshot.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// prediction table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open prediction db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

const predictionSchema = `(
	DS TEXT NOT NULL PRIMARY KEY,
	YHAT_TAMPA TEXT NOT NULL,
	YHAT_ST_PETE TEXT NOT NULL,
	YHAT_HEALTH TEXT NOT NULL
)`

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS prediction ` + predictionSchema); err != nil {
		return fmt.Errorf("migrate prediction table: %w", err)
	}
	return nil
}

// ReplacePredictions atomically swaps the stored snapshot for the given
// table. An empty table is legal and yields an empty snapshot.
func (s *Store) ReplacePredictions(ctx context.Context, rows []forecast.TableRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS prediction_new`); err != nil {
		return fmt.Errorf("drop stale staging table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE prediction_new `+predictionSchema); err != nil {
		return fmt.Errorf("create staging table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prediction_new (DS, YHAT_TAMPA, YHAT_ST_PETE, YHAT_HEALTH) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.Date.UTC().Format("2006-01-02"),
			formatYhat(row.Tampa),
			formatYhat(row.StPete),
			formatYhat(row.Health),
		)
		if err != nil {
			return fmt.Errorf("insert prediction row: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE prediction`); err != nil {
		return fmt.Errorf("drop old snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE prediction_new RENAME TO prediction`); err != nil {
		return fmt.Errorf("swap snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Predictions reads the whole snapshot in date order. An empty result means
// no prediction is available; callers must surface that explicitly rather
// than as zeros.
func (s *Store) Predictions(ctx context.Context) ([]PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DS, YHAT_TAMPA, YHAT_ST_PETE, YHAT_HEALTH FROM prediction ORDER BY DS`)
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}
	defer rows.Close()

	var out []PredictionRecord
	for rows.Next() {
		var rec PredictionRecord
		if err := rows.Scan(&rec.DS, &rec.YhatTampa, &rec.YhatStPete, &rec.YhatHealth); err != nil {
			return nil, fmt.Errorf("scan prediction row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return out, nil
}

func formatYhat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
