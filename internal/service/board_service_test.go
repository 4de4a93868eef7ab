package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
)

func TestCreateTask_PlacesInMatchingColumn(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	task, err := svc.CreateTask(context.Background(), &dto.CreateTaskRequest{
		Title:  "Escrever testes de regressão",
		Status: "Revisão",
	})
	require.NoError(t, err)
	assert.Equal(t, "Revisão", task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	state := st.State()
	col, ok := state.ColumnContaining(task.ID)
	require.True(t, ok)
	assert.Equal(t, "col-3", col.ID)
	assert.Equal(t, task.ID, col.TaskIDs[len(col.TaskIDs)-1])
}

func TestCreateTask_UnknownStatusFallsBackToFirstColumn(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	task, err := svc.CreateTask(context.Background(), &dto.CreateTaskRequest{
		Title:  "Tarefa sem coluna",
		Status: "Coluna Inexistente",
	})
	require.NoError(t, err)

	// Status is rewritten to the first column's title
	assert.Equal(t, "A Fazer", task.Status)
	col, ok := st.State().ColumnContaining(task.ID)
	require.True(t, ok)
	assert.Equal(t, "col-1", col.ID)
}

func TestCreateTask_RejectsUnknownPriority(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	_, err := svc.CreateTask(context.Background(), &dto.CreateTaskRequest{
		Title:    "Prioridade inválida",
		Priority: domain.Priority("Altíssima"),
	})
	require.Error(t, err)

	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestUpdateTask_StatusChangeMovesBetweenColumns(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	status := "Concluído"
	task, err := svc.UpdateTask(context.Background(), "task-1", &dto.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Concluído", task.Status)

	state := st.State()
	assert.False(t, state.Columns["col-1"].Contains("task-1"))
	assert.True(t, state.Columns["col-4"].Contains("task-1"))
}

func TestUpdateTask_UnknownStatusKeepsPlacement(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	status := "Arquivado"
	task, err := svc.UpdateTask(context.Background(), "task-1", &dto.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)

	// Field updates, placement stays where it was
	assert.Equal(t, "Arquivado", task.Status)
	col, ok := st.State().ColumnContaining("task-1")
	require.True(t, ok)
	assert.Equal(t, "col-1", col.ID)
}

func TestUpdateTask_DueDateChangeRearmsReminder(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	// Mark the seed task's reminder as already sent
	err := st.Commit(context.Background(), func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Tasks = state.CloneTasks()
		task := next.Tasks["task-1"]
		task.ReminderSent = true
		next.Tasks["task-1"] = task
		return next, nil
	})
	require.NoError(t, err)

	newDue := time.Now().AddDate(0, 0, 30).UTC()
	task, err := svc.UpdateTask(context.Background(), "task-1", &dto.UpdateTaskRequest{DueDate: &newDue})
	require.NoError(t, err)
	assert.False(t, task.ReminderSent)

	// Re-sending the same due date does not change the flag again
	err = st.Commit(context.Background(), func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Tasks = state.CloneTasks()
		tk := next.Tasks["task-1"]
		tk.ReminderSent = true
		next.Tasks["task-1"] = tk
		return next, nil
	})
	require.NoError(t, err)

	task, err = svc.UpdateTask(context.Background(), "task-1", &dto.UpdateTaskRequest{DueDate: &newDue})
	require.NoError(t, err)
	assert.True(t, task.ReminderSent)
}

func TestMoveTask_UpdatesStatusAndColumns(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	board, err := svc.MoveTask(context.Background(), "task-1", &dto.MoveTaskRequest{ColumnID: "col-2"})
	require.NoError(t, err)
	require.NotNil(t, board)

	state := st.State()
	assert.False(t, state.Columns["col-1"].Contains("task-1"))
	assert.True(t, state.Columns["col-2"].Contains("task-1"))
	assert.Equal(t, "Em Progresso", state.Tasks["task-1"].Status)
}

func TestMoveTask_SameColumnIsNoOp(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	before := st.State()
	_, err := svc.MoveTask(context.Background(), "task-1", &dto.MoveTaskRequest{ColumnID: "col-1"})
	require.NoError(t, err)

	after := st.State()
	assert.Equal(t, before.Columns["col-1"].TaskIDs, after.Columns["col-1"].TaskIDs)
	assert.Equal(t, before.Tasks["task-1"].Status, after.Tasks["task-1"].Status)
}

func TestMoveTask_UnknownTargets(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	_, err := svc.MoveTask(context.Background(), "task-999", &dto.MoveTaskRequest{ColumnID: "col-1"})
	require.Error(t, err)

	_, err = svc.MoveTask(context.Background(), "task-1", &dto.MoveTaskRequest{ColumnID: "col-999"})
	require.Error(t, err)

	// Failed moves leave the board untouched
	col, ok := st.State().ColumnContaining("task-1")
	require.True(t, ok)
	assert.Equal(t, "col-1", col.ID)
}

func TestDeleteTask_RemovesTaskAndPlacement(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	require.NoError(t, svc.DeleteTask(context.Background(), "task-2"))

	state := st.State()
	_, exists := state.Tasks["task-2"]
	assert.False(t, exists)
	assert.False(t, state.Columns["col-2"].Contains("task-2"))
}

func TestGetBoard_ColumnsInBoardOrder(t *testing.T) {
	st := newSeedStore()
	svc := NewBoardService(st, newTestMetrics(), zap.NewNop())

	board, err := svc.GetBoard(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Columns, 5)

	titles := make([]string, 0, len(board.Columns))
	for _, col := range board.Columns {
		titles = append(titles, col.Title)
	}
	assert.Equal(t, []string{"A Fazer", "Em Progresso", "Conclusão Parcial", "Revisão", "Concluído"}, titles)

	// Tasks resolve in card order
	assert.Equal(t, "task-1", board.Columns[0].Tasks[0].ID)
	assert.Equal(t, "task-5", board.Columns[0].Tasks[1].ID)
}
