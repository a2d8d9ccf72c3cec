package corpus

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"aircheck/internal/config"
	"aircheck/internal/presenter"
)

//go:embed schema.sql
var schemaSQL string

// Store manages label-corpus persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the corpus database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "corpus.db")
	return OpenPath(dbPath)
}

// OpenPath opens a corpus database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record inserts or updates the corpus row for a recording. Re-analyzing a
// file replaces its previous label.
func (s *Store) Record(ctx context.Context, rec Recording) (Recording, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO recordings (
            run_id, file, filename, year, month, recorded_at,
            presenter, raw_match, confidence, match_type, transcript,
            suitable_for_training, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(file) DO UPDATE SET
            run_id = excluded.run_id,
            filename = excluded.filename,
            year = excluded.year,
            month = excluded.month,
            recorded_at = excluded.recorded_at,
            presenter = excluded.presenter,
            raw_match = excluded.raw_match,
            confidence = excluded.confidence,
            match_type = excluded.match_type,
            transcript = excluded.transcript,
            suitable_for_training = excluded.suitable_for_training,
            updated_at = excluded.updated_at`,
		rec.RunID,
		rec.File,
		rec.Filename,
		rec.Year,
		rec.Month,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Result.Presenter,
		rec.Result.RawMatch,
		rec.Result.Confidence,
		string(rec.Result.Type),
		rec.Result.Transcript,
		boolToInt(rec.SuitableForTraining),
		now,
		now,
	)
	if err != nil {
		return Recording{}, fmt.Errorf("record %s: %w", rec.File, err)
	}

	return s.GetByFile(ctx, rec.File)
}

// GetByFile returns the corpus row for a file path.
func (s *Store) GetByFile(ctx context.Context, file string) (Recording, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM recordings WHERE file = ?`, file)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, fmt.Errorf("recording %s: %w", file, err)
	}
	return rec, err
}

// List returns every corpus row ordered newest first.
func (s *Store) List(ctx context.Context) ([]Recording, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM recordings ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()
	return collectRecordings(rows)
}

// Suitable returns the rows flagged suitable for training, newest first.
func (s *Store) Suitable(ctx context.Context) ([]Recording, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM recordings WHERE suitable_for_training = 1 ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list suitable recordings: %w", err)
	}
	defer rows.Close()
	return collectRecordings(rows)
}

// CountByMatchType aggregates corpus rows per match type.
func (s *Store) CountByMatchType(ctx context.Context) (map[presenter.MatchType]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_type, COUNT(1) FROM recordings GROUP BY match_type`)
	if err != nil {
		return nil, fmt.Errorf("count by match type: %w", err)
	}
	defer rows.Close()

	counts := make(map[presenter.MatchType]int)
	for rows.Next() {
		var matchType string
		var count int
		if err := rows.Scan(&matchType, &count); err != nil {
			return nil, fmt.Errorf("scan match type count: %w", err)
		}
		counts[presenter.MatchType(matchType)] = count
	}
	return counts, rows.Err()
}

const selectColumns = `SELECT id, run_id, file, filename, year, month, recorded_at,
    presenter, raw_match, confidence, match_type, transcript,
    suitable_for_training, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecording(row rowScanner) (Recording, error) {
	var rec Recording
	var recordedAt, createdAt, updatedAt string
	var matchType string
	var suitable int
	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.File,
		&rec.Filename,
		&rec.Year,
		&rec.Month,
		&recordedAt,
		&rec.Result.Presenter,
		&rec.Result.RawMatch,
		&rec.Result.Confidence,
		&matchType,
		&rec.Result.Transcript,
		&suitable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return Recording{}, err
	}
	rec.Result.Type = presenter.MatchType(matchType)
	rec.SuitableForTraining = suitable != 0
	rec.Timestamp = parseTime(recordedAt)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

func collectRecordings(rows *sql.Rows) ([]Recording, error) {
	var recordings []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}

func parseTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
