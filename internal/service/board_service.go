package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
)

// BoardService defines the interface for kanban board business logic
type BoardService interface {
	GetBoard(ctx context.Context) (*dto.BoardResponse, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error)
	MoveTask(ctx context.Context, taskID string, req *dto.MoveTaskRequest) (*dto.BoardResponse, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	store   *store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(st *store.Store, m *metrics.Metrics, logger *zap.Logger) BoardService {
	return &boardServiceImpl{
		store:   st,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// GetBoard returns the whole board: columns in board order, each expanded
// with its tasks in card order.
func (s *boardServiceImpl) GetBoard(ctx context.Context) (*dto.BoardResponse, error) {
	return buildBoardResponse(s.store.State()), nil
}

// ListTasks returns every task, ordered by creation time then id so the
// listing is stable across calls.
func (s *boardServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	state := s.store.State()
	tasks := make([]domain.Task, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// GetTask returns one task by id.
func (s *boardServiceImpl) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	state := s.store.State()
	task, ok := state.Tasks[taskID]
	if !ok {
		return nil, response.NewNotFoundError("Task not found")
	}
	return &task, nil
}

// CreateTask creates a task and places it at the end of the column whose
// title matches the requested status. When no column carries that title the
// task lands in the first column and its status is rewritten to that
// column's title, keeping the status/placement pairing intact.
func (s *boardServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown priority", string(priority))
	}

	task := domain.Task{
		ID:                 "task-" + uuid.NewString(),
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Priority:           priority,
		StartDate:          req.StartDate,
		DueDate:            req.DueDate,
		CreatedAt:          s.now().UTC(),
		AssigneeIDs:        append([]string(nil), req.AssigneeIDs...),
		Subtasks:           append([]domain.Subtask(nil), req.Subtasks...),
		Recurring:          req.Recurring,
		HasReminder:        req.HasReminder,
		ReminderOffset:     req.ReminderOffset,
		ReminderOffsetUnit: req.ReminderOffsetUnit,
		Location:           req.Location,
	}

	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		target, ok := state.ColumnByTitle(task.Status)
		if !ok {
			target, ok = state.FirstColumn()
			if !ok {
				return state, response.NewAppError(response.ErrCodeValidation, "Board has no columns", "")
			}
			task.Status = target.Title
		}

		next := state
		next.Tasks = state.CloneTasks()
		next.Tasks[task.ID] = task
		next.Columns = state.CloneColumns()
		next.Columns[target.ID] = target.WithTask(task.ID)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementTaskCreated()
	s.metrics.SetTasksTotal(len(s.store.State().Tasks))
	s.logger.Info("Task created", zap.String("task_id", task.ID), zap.String("status", task.Status))
	return &task, nil
}

// UpdateTask applies a partial edit. A status change moves the task to the
// column carrying the new title when one exists; when none does the status
// field still updates and the placement is left where it was. A due date
// change re-arms the reminder by clearing its sent flag.
func (s *boardServiceImpl) UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown priority", string(*req.Priority))
	}

	var updated domain.Task
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		task, ok := state.Tasks[taskID]
		if !ok {
			return state, response.NewNotFoundError("Task not found")
		}
		task = task.Clone()

		next := state
		if req.Title != nil {
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.StartDate != nil {
			task.StartDate = req.StartDate
		}
		if req.DueDate != nil && !sameInstant(task.DueDate, req.DueDate) {
			task.DueDate = req.DueDate
			task.ReminderSent = false
		}
		if req.AssigneeIDs != nil {
			task.AssigneeIDs = append([]string(nil), (*req.AssigneeIDs)...)
		}
		if req.Subtasks != nil {
			task.Subtasks = append([]domain.Subtask(nil), (*req.Subtasks)...)
		}
		if req.Recurring != nil {
			task.Recurring = *req.Recurring
		}
		if req.HasReminder != nil {
			task.HasReminder = *req.HasReminder
		}
		if req.ReminderOffset != nil {
			task.ReminderOffset = *req.ReminderOffset
		}
		if req.ReminderOffsetUnit != nil {
			task.ReminderOffsetUnit = *req.ReminderOffsetUnit
		}
		if req.Location != nil {
			task.Location = *req.Location
		}

		if req.Status != nil && *req.Status != task.Status {
			task.Status = *req.Status
			if target, found := state.ColumnByTitle(*req.Status); found {
				next.Columns = state.CloneColumns()
				if current, inColumn := state.ColumnContaining(taskID); inColumn && current.ID != target.ID {
					next.Columns[current.ID] = current.WithoutTask(taskID)
					next.Columns[target.ID] = target.WithTask(taskID)
				}
			}
		}

		next.Tasks = state.CloneTasks()
		next.Tasks[taskID] = task
		updated = task
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MoveTask moves a task to another column in a single transition. Moving a
// task onto the column it already occupies is a no-op.
func (s *boardServiceImpl) MoveTask(ctx context.Context, taskID string, req *dto.MoveTaskRequest) (*dto.BoardResponse, error) {
	moved := false
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		task, ok := state.Tasks[taskID]
		if !ok {
			return state, response.NewNotFoundError("Task not found")
		}
		target, ok := state.Columns[req.ColumnID]
		if !ok {
			return state, response.NewNotFoundError("Column not found")
		}
		if target.Contains(taskID) {
			return state, nil
		}

		next := state
		next.Columns = state.CloneColumns()
		if current, inColumn := state.ColumnContaining(taskID); inColumn {
			next.Columns[current.ID] = next.Columns[current.ID].WithoutTask(taskID)
		}
		next.Columns[target.ID] = next.Columns[target.ID].WithTask(taskID)

		task = task.Clone()
		task.Status = target.Title
		next.Tasks = state.CloneTasks()
		next.Tasks[taskID] = task
		moved = true
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if moved {
		s.metrics.IncrementTaskMoved()
	}
	return buildBoardResponse(s.store.State()), nil
}

// DeleteTask removes the task and its column placement.
func (s *boardServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		if _, ok := state.Tasks[taskID]; !ok {
			return state, response.NewNotFoundError("Task not found")
		}

		next := state
		next.Tasks = state.CloneTasks()
		delete(next.Tasks, taskID)
		if current, inColumn := state.ColumnContaining(taskID); inColumn {
			next.Columns = state.CloneColumns()
			next.Columns[current.ID] = current.WithoutTask(taskID)
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	s.metrics.SetTasksTotal(len(s.store.State().Tasks))
	s.logger.Info("Task deleted", zap.String("task_id", taskID))
	return nil
}

func buildBoardResponse(state domain.AppState) *dto.BoardResponse {
	columns := state.OrderedColumns()
	out := &dto.BoardResponse{Columns: make([]dto.BoardColumnResponse, 0, len(columns))}
	for _, col := range columns {
		entry := dto.BoardColumnResponse{ID: col.ID, Title: col.Title, Tasks: []domain.Task{}}
		for _, taskID := range col.TaskIDs {
			if task, ok := state.Tasks[taskID]; ok {
				entry.Tasks = append(entry.Tasks, task)
			}
		}
		out.Columns = append(out.Columns, entry)
	}
	return out
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
