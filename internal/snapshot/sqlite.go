// Package snapshot keeps named copies of exported documents in SQLite so a
// board can be restored later.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"RectBoard/internal/document"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no snapshot has the requested name.
var ErrNotFound = errors.New("snapshot not found")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    body       TEXT NOT NULL,
    shapes     INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

// Snapshot is one stored document.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Shapes    int       `json:"shapes"`
	CreatedAt time.Time `json:"created_at"`
	Body      []byte    `json:"-"`
}

// Repository stores snapshots in a SQLite database.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init creates the schema if needed.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Save stores doc under name, replacing any snapshot with the same name.
func (r *Repository) Save(ctx context.Context, name string, doc document.Document) (*Snapshot, error) {
	if name == "" {
		return nil, fmt.Errorf("snapshot name required")
	}
	body, err := document.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	shapes := len(doc)
	if _, ok := doc.Root(); ok {
		shapes--
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO snapshots (id, name, body, shapes, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            body = excluded.body,
            shapes = excluded.shapes,
            created_at = excluded.created_at
    `, uuid.NewString(), name, string(body), shapes, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("save snapshot %q: %w", name, err)
	}
	log.Printf("[SNAPSHOT] Saved %q (%d shapes)", name, shapes)
	return r.Get(ctx, name)
}

// Get loads the snapshot with the given name.
func (r *Repository) Get(ctx context.Context, name string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, body, shapes, created_at
        FROM snapshots
        WHERE name = ?
    `, name)

	s, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// List returns every snapshot, newest first, without bodies.
func (r *Repository) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, '', shapes, created_at
        FROM snapshots
        ORDER BY created_at DESC, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		s.Body = nil
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Delete removes the named snapshot.
func (r *Repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*Snapshot, error) {
	var (
		s       Snapshot
		body    string
		created string
	)
	if err := row.Scan(&s.ID, &s.Name, &body, &s.Shapes, &created); err != nil {
		return nil, err
	}
	s.Body = []byte(body)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: bad timestamp: %w", s.Name, err)
	}
	s.CreatedAt = t
	return &s, nil
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
