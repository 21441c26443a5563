package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tareas/internal/service"
)

// ConnectTimeout bounds the initial connect and ping.
const ConnectTimeout = 5 * time.Second

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + TableName + ` (
		id             BIGSERIAL PRIMARY KEY,
		descripcion    TEXT NOT NULL,
		completada     BOOLEAN NOT NULL DEFAULT false,
		fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_fecha_creacion ON ` + TableName + ` (fecha_creacion)`,
}

// Postgres stores tasks in PostgreSQL through a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ service.Store = (*Postgres)(nil)

// NewPostgres connects to dsn, verifies the connection and migrates the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := NewPostgresFromPool(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresFromPool wraps an existing pool. The schema is not touched.
func NewPostgresFromPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the tareas table if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure tareas schema: %w", err)
		}
	}
	return nil
}

// Insert implements service.Store.
func (s *Postgres) Insert(ctx context.Context, descripcion string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tareas (descripcion, completada) VALUES ($1, false) RETURNING id`,
		descripcion).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get implements service.Store.
func (s *Postgres) Get(ctx context.Context, id int64) (service.Task, error) {
	var t service.Task
	err := s.pool.QueryRow(ctx,
		`SELECT id, descripcion, completada, fecha_creacion FROM tareas WHERE id = $1`, id,
	).Scan(&t.ID, &t.Descripcion, &t.Completada, &t.FechaCreacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Task{}, fmt.Errorf("task %d: %w", id, service.ErrNotFound)
		}
		return service.Task{}, err
	}
	t.FechaCreacion = t.FechaCreacion.UTC()
	return t, nil
}

// List implements service.Store.
func (s *Postgres) List(ctx context.Context) ([]service.Task, error) {
	rows, err := s.pool.Query(ctx,
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
func (s *Postgres) UpdateCompleted(ctx context.Context, id int64, completada bool) error {
	_, err := s.pool.Exec(ctx, `UPDATE tareas SET completada = $1 WHERE id = $2`, completada, id)
	return err
}

// DeleteAll implements service.Store.
func (s *Postgres) DeleteAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tareas`)
	return err
}

// Ping implements service.Store.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close implements service.Store.
func (s *Postgres) Close() {
	s.pool.Close()
}
