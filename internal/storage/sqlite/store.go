// Package sqlite provides the SQLite-backed record database holding trainee and
// support records as JSON documents.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
)

// ErrRecordNotFound is returned when a record lookup yields no rows.
var ErrRecordNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS characters (
	id   INTEGER PRIMARY KEY,
	data JSON NOT NULL
);
CREATE TABLE IF NOT EXISTS supports (
	id   INTEGER PRIMARY KEY,
	data JSON NOT NULL
);`

// document is the stored JSON layout: the record nested under itemData.
type document[T any] struct {
	ItemData T `json:"itemData"`
}

// Store persists records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens or creates the record database at path.
//
// Postcondition: Returns a Store whose tables exist, or an error.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutTrainee inserts or replaces a trainee record keyed by its card id.
func (s *Store) PutTrainee(ctx context.Context, rec trainee.Record) error {
	if rec.CardID == nil {
		return fmt.Errorf("put trainee: %w: card_id", trainee.ErrMissingField)
	}
	return put(ctx, s.sqlDB, "characters", *rec.CardID, rec)
}

// PutSupport inserts or replaces a support record keyed by its support id.
func (s *Store) PutSupport(ctx context.Context, rec support.Record) error {
	if rec.SupportID == nil {
		return fmt.Errorf("put support: %w: support_id", support.ErrMissingField)
	}
	return put(ctx, s.sqlDB, "supports", *rec.SupportID, rec)
}

// Trainee returns the trainee record with card id.
//
// Postcondition: Returns ErrRecordNotFound when absent.
func (s *Store) Trainee(ctx context.Context, id int) (trainee.Record, error) {
	return get[trainee.Record](ctx, s.sqlDB, `SELECT data FROM characters WHERE id = ?`, id)
}

// FirstTrainee returns the trainee record with the lowest card id.
//
// Postcondition: Returns ErrRecordNotFound when the table is empty.
func (s *Store) FirstTrainee(ctx context.Context) (trainee.Record, error) {
	return get[trainee.Record](ctx, s.sqlDB, `SELECT data FROM characters ORDER BY id LIMIT 1`)
}

// Support returns the support record with support id.
//
// Postcondition: Returns ErrRecordNotFound when absent.
func (s *Store) Support(ctx context.Context, id int) (support.Record, error) {
	return get[support.Record](ctx, s.sqlDB, `SELECT data FROM supports WHERE id = ?`, id)
}

// Counts returns the number of stored trainee and support records.
func (s *Store) Counts(ctx context.Context) (trainees, supports int, err error) {
	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM characters), (SELECT COUNT(*) FROM supports)`,
	).Scan(&trainees, &supports)
	if err != nil {
		return 0, 0, fmt.Errorf("count records: %w", err)
	}
	return trainees, supports, nil
}

func put[T any](ctx context.Context, db *sql.DB, table string, id int, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(document[T]{ItemData: rec})
	if err != nil {
		return fmt.Errorf("encode %s %d: %w", table, id, err)
	}
	// table is one of two constants; never user input.
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+table+` (id, data) VALUES (?, ?)`, id, string(data))
	if err != nil {
		return fmt.Errorf("put %s %d: %w", table, id, err)
	}
	return nil
}

func get[T any](ctx context.Context, db *sql.DB, query string, args ...any) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	var data string
	if err := db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrRecordNotFound
		}
		return zero, fmt.Errorf("query record: %w", err)
	}
	var doc document[T]
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return zero, fmt.Errorf("decode record: %w", err)
	}
	return doc.ItemData, nil
}
