// Package output provides formatters for CLI output.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tareas/internal/service"
)

const (
	// EmptyMessage is printed instead of rows when there are no tasks.
	EmptyMessage = "no tasks yet, add one!"

	// LoadingMessage is printed while the first load is in flight.
	LoadingMessage = "loading tasks..."

	strikeOn  = "\x1b[9m"
	styleOff  = "\x1b[0m"
	checked   = "[x]"
	unchecked = "[ ]"
)

// ErrEmptyDescription is returned by NormalizeDescription for blank input.
var ErrEmptyDescription = errors.New("description required")

// NormalizeDescription trims user input for a new task.
// Empty or whitespace-only input is rejected before any request is made.
func NormalizeDescription(input string) (string, error) {
	d := strings.TrimSpace(input)
	if d == "" {
		return "", ErrEmptyDescription
	}
	return d, nil
}

// FormatTask formats one task row.
// Format: "{N:>4}  [ ] {DESCRIPTION} (#{ID})\n"; completed rows show "[x]"
// and, with color, a struck-through description.
func FormatTask(w io.Writer, num int, task service.Task, color bool) {
	marker := unchecked
	title := normalizeTitle(task.Descripcion)
	if task.Completada {
		marker = checked
		if color {
			title = strikeOn + title + styleOff
		}
	}
	fmt.Fprintf(w, "%4d  %s %s (#%d)\n", num, marker, title, task.ID)
}

// FormatList formats the whole list, numbering rows from 1 in display order.
func FormatList(w io.Writer, tasks []service.Task, color bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task, color)
	}
}

// normalizeTitle keeps a description on a single line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
