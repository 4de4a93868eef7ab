package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderTime(t *testing.T) {
	dueAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	task := Task{
		DueDate:            &dueAt,
		HasReminder:        true,
		ReminderOffset:     2,
		ReminderOffsetUnit: ReminderUnitHours,
	}
	at, ok := task.ReminderTime()
	assert.True(t, ok)
	assert.Equal(t, dueAt.Add(-2*time.Hour), at)

	// Unknown unit falls back to the due date itself
	task.ReminderOffsetUnit = ReminderUnit("weeks")
	at, ok = task.ReminderTime()
	assert.True(t, ok)
	assert.Equal(t, dueAt, at)

	task.HasReminder = false
	_, ok = task.ReminderTime()
	assert.False(t, ok)

	task.HasReminder = true
	task.DueDate = nil
	_, ok = task.ReminderTime()
	assert.False(t, ok)
}

func TestReminderDue(t *testing.T) {
	dueAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	task := Task{
		DueDate:            &dueAt,
		HasReminder:        true,
		ReminderOffset:     30,
		ReminderOffsetUnit: ReminderUnitMinutes,
	}

	assert.False(t, task.ReminderDue(dueAt.Add(-time.Hour)))
	assert.True(t, task.ReminderDue(dueAt.Add(-30*time.Minute)))
	assert.True(t, task.ReminderDue(dueAt.Add(-time.Minute)))
	assert.False(t, task.ReminderDue(dueAt))

	task.ReminderSent = true
	assert.False(t, task.ReminderDue(dueAt.Add(-time.Minute)))
}

func TestTaskCloneDetachesSlices(t *testing.T) {
	task := Task{
		ID:          "task-1",
		AssigneeIDs: []string{"user-1"},
		Subtasks:    []Subtask{{ID: "sub-1", Text: "primeiro"}},
	}

	clone := task.Clone()
	clone.AssigneeIDs[0] = "user-2"
	clone.Subtasks[0].Completed = true

	assert.Equal(t, "user-1", task.AssigneeIDs[0])
	assert.False(t, task.Subtasks[0].Completed)
}
