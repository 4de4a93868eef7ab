package domain

import (
	"time"
)

// Priority is the fixed ordered task priority scale. The values are the
// labels the app displays, lowest to highest.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Média"
	PriorityHigh   Priority = "Alta"
	PriorityUrgent Priority = "Urgente"
)

// Priorities lists all priorities in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// RecurringType is an advisory recurrence marker; no scheduler acts on it.
type RecurringType string

const (
	RecurringNone    RecurringType = "none"
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
)

// ReminderUnit is the unit of a task's reminder offset.
type ReminderUnit string

const (
	ReminderUnitMinutes ReminderUnit = "minutes"
	ReminderUnitHours   ReminderUnit = "hours"
	ReminderUnitDays    ReminderUnit = "days"
)

// Duration converts an offset count in this unit to a time.Duration.
// Unknown units yield zero, which makes the reminder fire at the due date.
func (u ReminderUnit) Duration(offset int) time.Duration {
	switch u {
	case ReminderUnitMinutes:
		return time.Duration(offset) * time.Minute
	case ReminderUnitHours:
		return time.Duration(offset) * time.Hour
	case ReminderUnitDays:
		return time.Duration(offset) * 24 * time.Hour
	default:
		return 0
	}
}

// Subtask is a checklist entry owned by a task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a unit of work on the board. Status must mirror the title of the
// single column whose TaskIDs sequence contains the task's id; both sides of
// that pairing are updated together by the board mutations.
type Task struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	Status             string        `json:"status"`
	Priority           Priority      `json:"priority"`
	StartDate          *time.Time    `json:"startDate,omitempty"`
	DueDate            *time.Time    `json:"dueDate,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	AssigneeIDs        []string      `json:"assigneeIds,omitempty"`
	Subtasks           []Subtask     `json:"subtasks,omitempty"`
	Recurring          RecurringType `json:"recurring,omitempty"`
	HasReminder        bool          `json:"hasReminder,omitempty"`
	ReminderOffset     int           `json:"reminderOffset,omitempty"`
	ReminderOffsetUnit ReminderUnit  `json:"reminderOffsetUnit,omitempty"`
	ReminderSent       bool          `json:"reminderSent,omitempty"`
	Location           string        `json:"location,omitempty"`
}

// ReminderTime returns the instant the task's reminder becomes due
// (due date minus offset). The second result is false when the task has no
// reminder configured or no due date.
func (t Task) ReminderTime() (time.Time, bool) {
	if !t.HasReminder || t.DueDate == nil {
		return time.Time{}, false
	}
	return t.DueDate.Add(-t.ReminderOffsetUnit.Duration(t.ReminderOffset)), true
}

// ReminderDue reports whether the reminder should fire at the given instant:
// the reminder time has been reached but the due date has not passed, and the
// reminder has not already been sent.
func (t Task) ReminderDue(now time.Time) bool {
	if t.ReminderSent {
		return false
	}
	at, ok := t.ReminderTime()
	if !ok {
		return false
	}
	return !at.After(now) && t.DueDate.After(now)
}

// Clone returns a copy of the task with its own slice storage, safe to
// mutate without affecting the snapshot it came from.
func (t Task) Clone() Task {
	out := t
	if t.AssigneeIDs != nil {
		out.AssigneeIDs = append([]string(nil), t.AssigneeIDs...)
	}
	if t.Subtasks != nil {
		out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	return out
}
