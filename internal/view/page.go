// Package view projects task state onto a renderer-independent page description.
package view

import (
	"fmt"

	"github.com/BuzzLyutic/tasklist/internal/filter"
	"github.com/BuzzLyutic/tasklist/internal/model"
)

const EmptyText = "No tasks"

type Row struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Completed bool           `json:"completed"`
	Category  model.Category `json:"category"`
	Priority  model.Priority `json:"priority"`
	Meta      string         `json:"meta"`
	Editing   bool           `json:"editing,omitempty"`
}

type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type Page struct {
	Rows      []Row           `json:"rows"`
	Empty     bool            `json:"empty"`
	EmptyText string          `json:"empty_text,omitempty"`
	Counts    Counts          `json:"counts"`
	Criteria  filter.Criteria `json:"criteria"`
	Theme     model.Theme     `json:"theme"`
}

// Build is pure: the same inputs always give the same page.
func Build(tasks []model.Task, c filter.Criteria, editingID string, theme model.Theme) Page {
	visible := filter.Visible(tasks, c)

	p := Page{
		Rows:     make([]Row, 0, len(visible)),
		Criteria: c,
		Theme:    theme,
	}
	for _, t := range visible {
		p.Rows = append(p.Rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Category:  t.Category,
			Priority:  t.Priority,
			Meta:      Meta(t),
			Editing:   editingID != "" && t.ID == editingID,
		})
	}
	if len(p.Rows) == 0 {
		p.Empty = true
		p.EmptyText = EmptyText
	}

	p.Counts.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			p.Counts.Completed++
		}
	}
	p.Counts.Active = p.Counts.Total - p.Counts.Completed
	return p
}

// Meta is the "Category • Priority" badge.
func Meta(t model.Task) string {
	return fmt.Sprintf("%s • %s", t.Category, t.Priority)
}
