// Package service defines the task model and the operations every backend provides.
package service

import (
	"errors"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	ID            int64     `json:"id"`
	Descripcion   string    `json:"descripcion"`
	Completada    bool      `json:"completada"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

var (
	// ErrInvalidInput is returned for a missing or empty description or a bad status.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable wraps persistence and transport failures.
	ErrUnavailable = errors.New("unavailable")
)
