package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

type taskResponse struct {
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		TaskID:      task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind create task request")
		abortValidation(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c, uid, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "task created",
		"task_id": task.TaskID,
	})
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	tasks, err := h.tasks.GetTasks(c, uid)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	taskID := c.Param("id")

	task, err := h.tasks.GetTask(c, uid, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title       models.OptionalString `json:"title"`
	Description models.OptionalString `json:"description"`
	Status      models.OptionalString `json:"status"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	taskID := c.Param("id")

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind update task request")
		abortValidation(c, err)
		return
	}

	_, err = h.tasks.UpdateTask(c, uid, taskID, services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTitleRequired):
			abortValidation(c, err)
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", taskID).
				Msg("failed to update task")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	taskID := c.Param("id")

	err := h.tasks.DeleteTask(c, uid, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
