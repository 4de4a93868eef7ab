package dto

import (
	"time"

	"taskpro-api/internal/domain"
)

// CreateTaskRequest is the payload for creating a task. Status is the target
// column title; when no column carries that title the task lands in the first
// column of the board order.
type CreateTaskRequest struct {
	Title              string              `json:"title" binding:"required"`
	Description        string              `json:"description"`
	Status             string              `json:"status"`
	Priority           domain.Priority     `json:"priority"`
	StartDate          *time.Time          `json:"startDate"`
	DueDate            *time.Time          `json:"dueDate"`
	AssigneeIDs        []string            `json:"assigneeIds"`
	Subtasks           []domain.Subtask    `json:"subtasks"`
	Recurring          domain.RecurringType `json:"recurring"`
	HasReminder        bool                `json:"hasReminder"`
	ReminderOffset     int                 `json:"reminderOffset"`
	ReminderOffsetUnit domain.ReminderUnit `json:"reminderOffsetUnit"`
	Location           string              `json:"location"`
}

// UpdateTaskRequest is a partial task edit; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title              *string               `json:"title"`
	Description        *string               `json:"description"`
	Status             *string               `json:"status"`
	Priority           *domain.Priority      `json:"priority"`
	StartDate          *time.Time            `json:"startDate"`
	DueDate            *time.Time            `json:"dueDate"`
	AssigneeIDs        *[]string             `json:"assigneeIds"`
	Subtasks           *[]domain.Subtask     `json:"subtasks"`
	Recurring          *domain.RecurringType `json:"recurring"`
	HasReminder        *bool                 `json:"hasReminder"`
	ReminderOffset     *int                  `json:"reminderOffset"`
	ReminderOffsetUnit *domain.ReminderUnit  `json:"reminderOffsetUnit"`
	Location           *string               `json:"location"`
}

// MoveTaskRequest is the payload for a drag-move between columns.
type MoveTaskRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
}

// BoardColumnResponse is a column expanded with its tasks in card order.
type BoardColumnResponse struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Tasks []domain.Task `json:"tasks"`
}

// BoardResponse is the whole board in left-to-right column order.
type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}
