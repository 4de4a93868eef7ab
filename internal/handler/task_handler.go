package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/service"
)

type TaskHandler struct {
	boardService service.BoardService
}

func NewTaskHandler(boardService service.BoardService) *TaskHandler {
	return &TaskHandler{boardService: boardService}
}

// GetBoard returns the columns in board order with their tasks.
func (h *TaskHandler) GetBoard(c *gin.Context) {
	board, err := h.boardService.GetBoard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// ListTasks returns every task regardless of column.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.boardService.ListTasks(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tasks)
}

// GetTask returns one task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.boardService.GetTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// CreateTask creates a task on the board.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.boardService.CreateTask(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// UpdateTask applies a partial edit to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.boardService.UpdateTask(c.Request.Context(), c.Param("taskId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// MoveTask moves a task to another column and returns the updated board.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.MoveTask(c.Request.Context(), c.Param("taskId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteTask removes a task from the board.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.boardService.DeleteTask(c.Request.Context(), c.Param("taskId")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
