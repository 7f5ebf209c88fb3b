package client

import (
	"strings"

	"github.com/tasklet/core/internal/domain/entities"
)

// StatusFilter selects tasks by completion state
type StatusFilter string

const (
	StatusAll  StatusFilter = "all"
	StatusDone StatusFilter = "done" // percentage == 100
	StatusOpen StatusFilter = "open" // percentage < 100
)

// ColorThreshold is the percentage at which a task stops rendering red
const ColorThreshold = 50

// FilterTasks is a pure derivation over the current task list: a task
// survives when it matches both the free-text query (title, subtask
// title or description, case-insensitive) and the status filter.
func FilterTasks(tasks []entities.Task, query string, status StatusFilter) []entities.Task {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t, status) {
			continue
		}
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesStatus(t entities.Task, status StatusFilter) bool {
	switch status {
	case StatusDone:
		return t.Percentage == 100
	case StatusOpen:
		return t.Percentage < 100
	default:
		return true
	}
}

func matchesQuery(t entities.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	for _, st := range t.SubTasks {
		if strings.Contains(strings.ToLower(st.Title), query) ||
			strings.Contains(strings.ToLower(st.Description), query) {
			return true
		}
	}
	return false
}

// PercentageColor maps a completion percentage to its display color:
// red below the threshold, green at or above.
func PercentageColor(percentage int) string {
	if percentage < ColorThreshold {
		return "red"
	}
	return "green"
}

// ReorderSubTasks returns a new sequence with the subtask at from moved
// to position to (drag-and-drop). Out-of-range indices leave the order
// unchanged. The input slice is never mutated.
func ReorderSubTasks(subs []entities.SubTask, from, to int) []entities.SubTask {
	out := append([]entities.SubTask(nil), subs...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)

	rest := append([]entities.SubTask(nil), out[to:]...)
	out = append(out[:to], moved)
	out = append(out, rest...)
	return out
}

// CompletionSummary counts fully-completed tasks against the total
func CompletionSummary(tasks []entities.Task) (done, total int) {
	for _, t := range tasks {
		if t.Percentage == 100 {
			done++
		}
	}
	return done, len(tasks)
}
