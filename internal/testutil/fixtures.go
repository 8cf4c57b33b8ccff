package testutil

import (
	"fmt"

	"github.com/BuzzLyutic/tasklist/internal/model"
)

// SequentialIDs returns an id generator yielding "id-1", "id-2", ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// SampleTasks returns a small most-recent-first collection.
func SampleTasks() []model.Task {
	return []model.Task{
		{ID: "t3", Text: "Call Bob", Category: model.CategoryWork, Priority: model.PriorityLow},
		{ID: "t2", Text: "Buy milk", Completed: true, Category: model.CategoryPersonal, Priority: model.PriorityHigh},
		{ID: "t1", Text: "Write report", Category: model.CategoryWork, Priority: model.PriorityMedium},
	}
}
