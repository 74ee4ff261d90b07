// Package journal records every executed expression and its outcome in SQLite.
package journal

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"objshell/internal/logger"
	"objshell/pkg/objtypes"
)

// Entry is one journaled expression.
type Entry struct {
	ID         string    `db:"id" yaml:"id"`
	Expression string    `db:"expression" yaml:"expression"`
	Status     string    `db:"status" yaml:"status"`
	Failure    string    `db:"failure" yaml:"failure"`
	Diagnostic string    `db:"diagnostic" yaml:"diagnostic,omitempty"`
	Value      string    `db:"value" yaml:"value,omitempty"`
	CreatedAt  time.Time `db:"created_at" yaml:"created_at"`
}

// Journal stores expression outcomes.
type Journal interface {
	Record(ctx context.Context, expression string, result *objtypes.InvocationResult) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

const (
	insertEntry = `INSERT INTO journal (id, expression, status, failure, diagnostic, value, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectRecent = `SELECT id, expression, status, failure, diagnostic, value, created_at
FROM journal
ORDER BY created_at DESC, rowid DESC
LIMIT ?`
)

// Store is the SQLite journal.
type Store struct {
	db     *sqlx.DB
	now    func() time.Time
	logger *log.Logger
}

// Open connects to the SQLite database at path and brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s := NewWithDB(db)
	s.logger.Debug("Journal opened", "path", path)
	return s, nil
}

// NewWithDB creates a Store on an existing connection without running migrations.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.NewStyledLogger("Journal"),
	}
}

// Record stores the outcome of expression.
func (s *Store) Record(ctx context.Context, expression string, result *objtypes.InvocationResult) error {
	if result == nil {
		return fmt.Errorf("record %q: no result", expression)
	}
	value := ""
	if result.Value != nil {
		value = fmt.Sprintf("%+v", result.Value)
	}
	_, err := s.db.ExecContext(ctx, insertEntry,
		result.ID, expression, result.Status.String(), result.Failure.String(),
		result.Diagnostic, value, s.now())
	if err != nil {
		return fmt.Errorf("record %q: %w", expression, err)
	}
	s.logger.Debug("Recorded", "id", result.ID, "expression", expression, "status", result.Status)
	return nil
}

// Recent returns up to limit of the latest entries, oldest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, selectRecent, limit); err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	slices.Reverse(entries)
	return entries, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Nop is a Journal that keeps nothing, used when no journal path is configured.
type Nop struct{}

func (Nop) Record(context.Context, string, *objtypes.InvocationResult) error { return nil }

func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

func (Nop) Close() error { return nil }
