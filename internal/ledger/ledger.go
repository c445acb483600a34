// Package ledger keeps a local SQLite record of every issue the tool has
// created, so the history survives without a round trip to GitHub. Writes are
// best-effort; callers log failures and keep going.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT NOT NULL,
	ref        TEXT NOT NULL,
	title      TEXT NOT NULL,
	number     INTEGER NOT NULL,
	url        TEXT NOT NULL,
	labels     TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_issues_kind ON issues(kind);
`

// Entry is one recorded issue. Kind is the entry category (feature, domain,
// industry, agent, pilot); Ref is the catalog id or slug it came from.
type Entry struct {
	Kind      string
	Ref       string
	Title     string
	Number    int
	URL       string
	Labels    []string
	CreatedAt time.Time
}

// Ledger wraps the SQLite database.
type Ledger struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// Open initializes the ledger database at path, creating the directory and
// schema as needed.
func Open(path string, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("set busy_timeout failed", zap.Error(err))
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

// Close closes the database.
func (l *Ledger) Close() error { return l.db.Close() }

// Record appends an entry. A zero CreatedAt is filled with the current time.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO issues (kind, ref, title, number, url, labels, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.Ref, e.Title, e.Number, e.URL,
		strings.Join(e.Labels, ","), created.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record issue: %w", err)
	}
	l.logger.Debug("issue recorded",
		zap.String("kind", e.Kind), zap.String("ref", e.Ref), zap.Int("number", e.Number))
	return nil
}

// List returns all entries, newest first.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.QueryContext(ctx,
		`SELECT kind, ref, title, number, url, labels, created_at
		 FROM issues ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var labels, created string
		if err := rows.Scan(&e.Kind, &e.Ref, &e.Title, &e.Number, &e.URL, &labels, &created); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		if labels != "" {
			e.Labels = strings.Split(labels, ",")
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
