package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks, optionally filtered by assignee, status and category
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Assignee: c.Query("assignee"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListTasksByAssignee returns all tasks of the assignee in the path
func (h *TaskHandler) ListTasksByAssignee(c *gin.Context) {
	tasks, err := h.taskService.ListTasksByAssignee(c.Request.Context(), c.Param("assignee"))
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body", bindingErrorDetails(err))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req.ToInput())
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body", bindingErrorDetails(err))
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, patch)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats returns task counts per known status and assignee
func (h *TaskHandler) GetStats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context())
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsDTO(*stats))
}

// respondWithServiceError maps service errors onto status codes
func (h *TaskHandler) respondWithServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.As(err, &validationErr):
		apierrors.UnprocessableEntity(c, "", []apierrors.FieldError{{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		apierrors.InternalError(c, "")
	}
}
