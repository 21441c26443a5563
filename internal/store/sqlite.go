package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tareas/internal/service"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS tareas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descripcion TEXT NOT NULL,
		completada BOOLEAN NOT NULL DEFAULT 0,
		fecha_creacion TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tareas_fecha_creacion ON tareas(fecha_creacion);
`

// SQLite stores tasks in a SQLite database.
// AUTOINCREMENT keeps ids strictly increasing even after DeleteAll.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ service.Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for a throwaway database.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}

	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

// Migrate creates the tareas table if it does not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return err
}

// Insert implements service.Store.
func (s *SQLite) Insert(ctx context.Context, descripcion string) (int64, error) {
	created := s.now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tareas (descripcion, completada, fecha_creacion) VALUES (?, 0, ?)`,
		descripcion, created)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Get implements service.Store.
func (s *SQLite) Get(ctx context.Context, id int64) (service.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, descripcion, completada, fecha_creacion FROM tareas WHERE id = ?`, id)

	var t service.Task
	if err := row.Scan(&t.ID, &t.Descripcion, &t.Completada, &t.FechaCreacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return service.Task{}, fmt.Errorf("task %d: %w", id, service.ErrNotFound)
		}
		return service.Task{}, err
	}
	t.FechaCreacion = t.FechaCreacion.UTC()
	return t, nil
}

// List implements service.Store.
func (s *SQLite) List(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, descripcion, completada, fecha_creacion FROM tareas ORDER BY fecha_creacion DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Descripcion, &t.Completada, &t.FechaCreacion); err != nil {
			return nil, err
		}
		t.FechaCreacion = t.FechaCreacion.UTC()
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateCompleted implements service.Store.
func (s *SQLite) UpdateCompleted(ctx context.Context, id int64, completada bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tareas SET completada = ? WHERE id = ?`, completada, id)
	return err
}

// DeleteAll implements service.Store.
func (s *SQLite) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tareas`)
	return err
}

// Ping implements service.Store.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements service.Store.
func (s *SQLite) Close() {
	s.db.Close()
}
