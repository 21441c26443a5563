package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tareas/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int   // 1-based row number in the current list
	ID   int64 // task id, set when ByID is true
	ByID bool  // true for "#<id>" and "id:<id>" references
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
//  1. All digits (e.g. 3) → row number in the list as displayed
//  2. '#' or "id:" followed by digits (e.g. #17, id:17) → task id
//  3. Anything else, or extra arguments → error
//
// Shells treat an unquoted #17 as a comment, so id:17 is the unquoted form.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimSpace(args[0])

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}

	idPart, ok := strings.CutPrefix(ref, "#")
	if !ok {
		idPart, ok = strings.CutPrefix(strings.ToLower(ref), "id:")
	}
	if ok && isAllDigits(idPart) {
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
}

// Resolve finds the referenced task in tasks (in display order).
// Returns the task and its 1-based row number.
func (r TaskRef) Resolve(tasks []service.Task) (service.Task, int, error) {
	if r.ByID {
		for i, t := range tasks {
			if t.ID == r.ID {
				return t, i + 1, nil
			}
		}
		return service.Task{}, 0, fmt.Errorf("task not found: #%d", r.ID)
	}

	if r.Num < 1 || r.Num > len(tasks) {
		return service.Task{}, 0, fmt.Errorf("task number out of range: %d", r.Num)
	}
	return tasks[r.Num-1], r.Num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
