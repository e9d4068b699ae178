// Package store keeps the CSS text of site, page, section, row and column
// scopes in a SQLite database. It stands in for the record store the editing
// surface reports changes to.
package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"stylesync/style"
)

var (
	ErrNotFound  = errors.New("scope not found")
	ErrInvalidID = errors.New("invalid scope id")
)

// LevelSite is stored for site wide CSS, it is edited in the page context.
const LevelSite = "site"

const schema = `CREATE TABLE IF NOT EXISTS scopes (
	id      TEXT PRIMARY KEY,
	level   TEXT NOT NULL,
	css     TEXT NOT NULL,
	updated INTEGER NOT NULL
)`

// Record is the stored CSS of one scope.
type Record struct {
	ID      string    `json:"id" yaml:"id"`
	Level   string    `json:"level" yaml:"level"`
	CSS     string    `json:"css" yaml:"css"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

// Context returns the editing context the scope is edited in.
func (r Record) Context() (style.EditingContext, error) {
	if r.Level == LevelSite {
		return style.EditingContextPage, nil
	}
	return style.ParseEditingContext(r.Level)
}

// Store is a single connection and is not safe for concurrent use.
type Store struct {
	log  *zap.Logger
	conn *sqlite.Conn
}

// Open opens (creating when necessary) the database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open scope store: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare scope store: %w", err)
	}
	log = log.Named("store")
	log.Debug("Scope store opened", zap.String("path", path))
	return &Store{log: log, conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// ID turns a human name ("Home Page") into a scope id ("home-page").
func ID(name string) (string, error) {
	id := slug.Make(name)
	if id == "" {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidID)
	}
	return id, nil
}

// Put stores css for the scope, replacing what was there.
func (s *Store) Put(id, level, css string) error {
	if level != LevelSite {
		if _, err := style.ParseEditingContext(level); err != nil {
			return fmt.Errorf("unable to store scope %s: %w", id, err)
		}
	}
	if !slug.IsSlug(id) {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	err := sqlitex.Execute(s.conn,
		`INSERT INTO scopes (id, level, css, updated) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET level = excluded.level, css = excluded.css, updated = excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{id, level, css, time.Now().UnixMilli()}})
	if err != nil {
		return fmt.Errorf("unable to store scope %s: %w", id, err)
	}
	s.log.Debug("Scope stored", zap.String("id", id), zap.String("level", level), zap.Int("bytes", len(css)))
	return nil
}

// Get returns the scope with the given id.
func (s *Store) Get(id string) (Record, error) {
	var (
		rec   Record
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT id, level, css, updated FROM scopes WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rec = scanRecord(stmt)
				found = true
				return nil
			},
		})
	if err != nil {
		return Record{}, fmt.Errorf("unable to read scope %s: %w", id, err)
	}
	if !found {
		return Record{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// CSS returns the stored text of id, an empty id yields empty text.
func (s *Store) CSS(id string) (string, error) {
	if id == "" {
		return "", nil
	}
	rec, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return rec.CSS, nil
}

// List returns all scopes ordered by id, numbers compared by value.
func (s *Store) List() ([]Record, error) {
	var recs []Record
	err := sqlitex.Execute(s.conn, `SELECT id, level, css, updated FROM scopes`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			recs = append(recs, scanRecord(stmt))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list scopes: %w", err)
	}
	slices.SortFunc(recs, func(a, b Record) int {
		switch {
		case a.ID == b.ID:
			return 0
		case natural.Less(a.ID, b.ID):
			return -1
		default:
			return 1
		}
	})
	return recs, nil
}

// Delete removes a scope, a missing one is not an error.
func (s *Store) Delete(id string) error {
	if err := sqlitex.Execute(s.conn, `DELETE FROM scopes WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("unable to delete scope %s: %w", id, err)
	}
	return nil
}

// Recorder returns an onChange callback writing every change of the scope
// back to the store. Write failures are logged, the editing session has no
// way to act on them.
func (s *Store) Recorder(id, level string) func(string) {
	return func(css string) {
		if err := s.Put(id, level, css); err != nil {
			s.log.Error("Unable to record scope change", zap.String("id", id), zap.Error(err))
		}
	}
}

func scanRecord(stmt *sqlite.Stmt) Record {
	return Record{
		ID:      stmt.ColumnText(0),
		Level:   stmt.ColumnText(1),
		CSS:     stmt.ColumnText(2),
		Updated: time.UnixMilli(stmt.ColumnInt64(3)),
	}
}
