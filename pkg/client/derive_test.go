package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklet/core/internal/domain/entities"
)

func sampleTasks() []entities.Task {
	return []entities.Task{
		{
			ID:         "t1",
			Title:      "Groceries",
			Percentage: 100,
			SubTasks: []entities.SubTask{
				{Title: "Milk", Description: "two liters", Completed: true},
			},
		},
		{
			ID:         "t2",
			Title:      "Taxes",
			Percentage: 40,
			SubTasks: []entities.SubTask{
				{Title: "Collect receipts", Description: "shoebox", Completed: false},
			},
		},
		{ID: "t3", Title: "Call mom", Percentage: 0},
	}
}

func TestFilterTasksByQuery(t *testing.T) {
	tasks := sampleTasks()

	out := FilterTasks(tasks, "groc", StatusAll)
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)

	// Matches subtask title and description too, case-insensitively.
	out = FilterTasks(tasks, "MILK", StatusAll)
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)

	out = FilterTasks(tasks, "shoebox", StatusAll)
	require.Len(t, out, 1)
	assert.Equal(t, "t2", out[0].ID)

	out = FilterTasks(tasks, "nothing matches this", StatusAll)
	assert.Empty(t, out)

	// Blank query keeps everything.
	out = FilterTasks(tasks, "   ", StatusAll)
	assert.Len(t, out, 3)
}

func TestFilterTasksByStatus(t *testing.T) {
	tasks := sampleTasks()

	done := FilterTasks(tasks, "", StatusDone)
	require.Len(t, done, 1)
	assert.Equal(t, "t1", done[0].ID)

	open := FilterTasks(tasks, "", StatusOpen)
	assert.Len(t, open, 2)
}

func TestFilterTasksDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = FilterTasks(tasks, "groc", StatusDone)
	assert.Len(t, tasks, 3)
}

func TestPercentageColor(t *testing.T) {
	assert.Equal(t, "red", PercentageColor(0))
	assert.Equal(t, "red", PercentageColor(49))
	assert.Equal(t, "green", PercentageColor(50))
	assert.Equal(t, "green", PercentageColor(100))
}

func TestReorderSubTasks(t *testing.T) {
	subs := []entities.SubTask{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	ids := func(s []entities.SubTask) []string {
		out := make([]string, len(s))
		for i, st := range s {
			out[i] = st.ID
		}
		return out
	}

	// Drag forward
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(ReorderSubTasks(subs, 0, 2)))

	// Drag backward
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(ReorderSubTasks(subs, 3, 0)))

	// Same position, out-of-range: order unchanged
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(ReorderSubTasks(subs, 1, 1)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(ReorderSubTasks(subs, -1, 2)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(ReorderSubTasks(subs, 0, 9)))

	// Input never mutates
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(subs))
}

func TestCompletionSummary(t *testing.T) {
	done, total := CompletionSummary(sampleTasks())
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	done, total = CompletionSummary(nil)
	assert.Zero(t, done)
	assert.Zero(t, total)
}
