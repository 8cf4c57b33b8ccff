// Package filter selects the visible subset of a task list.
package filter

import (
	"strings"

	"github.com/BuzzLyutic/tasklist/internal/model"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// CategoryAll disables the category predicate.
const CategoryAll model.Category = "All"

type Criteria struct {
	Status   Status         `json:"status"`
	Category model.Category `json:"category"`
	Query    string         `json:"query"`
}

// Statuses returns the status filter values in display order.
func Statuses() []Status {
	return []Status{StatusAll, StatusActive, StatusCompleted}
}

// CategoryOptions returns All followed by every category.
func CategoryOptions() []model.Category {
	return append([]model.Category{CategoryAll}, model.Categories()...)
}

// ParseStatus is case-insensitive; anything unrecognised is StatusAll.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusAll
	}
}

// ParseCategory is case-insensitive; anything unrecognised is CategoryAll.
func ParseCategory(s string) model.Category {
	s = strings.TrimSpace(s)
	for _, c := range model.Categories() {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryAll
}

// Visible returns the tasks matching every predicate of c, in input order.
// The input slice is not modified. Status is matched case-insensitively.
func Visible(tasks []model.Task, c Criteria) []model.Task {
	c.Status = ParseStatus(string(c.Status))
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Status == StatusActive && t.Completed {
			continue
		}
		if c.Status == StatusCompleted && !t.Completed {
			continue
		}
		if c.Category != "" && c.Category != CategoryAll && t.Category != c.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Text), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Next cycles through values, wrapping at the end.
func Next[T comparable](values []T, current T) T {
	if len(values) == 0 {
		return current
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
