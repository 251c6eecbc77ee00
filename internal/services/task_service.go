package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports a request field that failed a business check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Assignee string
	Status   string
	Category string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Assignee    string
	Status      string
	Priority    string
	Category    string
	DueDate     *time.Time
	CreatedBy   string
}

// Count is one entry of a stats breakdown.
type Count struct {
	Key   string
	Value int64
}

// Stats summarises the task table.
type Stats struct {
	Total      int64
	ByStatus   []Count
	ByAssignee []Count
}

// ListTasks returns tasks matching the filters, newest first
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		Assignee: input.Assignee,
		Status:   input.Status,
		Category: input.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByAssignee returns every task of one assignee, newest first
func (s *TaskService) ListTasksByAssignee(ctx context.Context, assignee string) ([]models.Task, error) {
	return s.ListTasks(ctx, ListTasksInput{Assignee: assignee})
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask fills in defaults and stores a new task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "is required"}
	}
	if input.Assignee == "" {
		return nil, &ValidationError{Field: "assignee", Message: "is required"}
	}
	if input.CreatedBy == "" {
		return nil, &ValidationError{Field: "created_by", Message: "is required"}
	}
	if err := checkLengths(map[string]string{
		"title":      input.Title,
		"assignee":   input.Assignee,
		"status":     input.Status,
		"priority":   input.Priority,
		"category":   input.Category,
		"created_by": input.CreatedBy,
	}); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(constants.TimestampPrecision)

	task := &models.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Assignee:    input.Assignee,
		Status:      withDefault(input.Status, constants.DefaultTaskStatus),
		Priority:    withDefault(input.Priority, constants.DefaultTaskPriority),
		Category:    withDefault(input.Category, constants.DefaultTaskCategory),
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to an existing task
func (s *TaskService) UpdateTask(ctx context.Context, taskID uuid.UUID, patch repository.TaskPatch) (*models.Task, error) {
	required := []struct {
		field string
		value repository.Optional[string]
	}{
		{"title", patch.Title},
		{"assignee", patch.Assignee},
		{"status", patch.Status},
		{"priority", patch.Priority},
		{"category", patch.Category},
	}
	supplied := map[string]string{}
	for _, r := range required {
		if !r.value.Set {
			continue
		}
		if r.value.Value == "" {
			return nil, &ValidationError{Field: r.field, Message: "cannot be empty"}
		}
		supplied[r.field] = r.value.Value
	}
	if err := checkLengths(supplied); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Update(ctx, taskID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Stats counts all tasks plus one count per known status and known assignee.
// Tasks whose status or assignee is outside those lists only show up in Total.
func (s *TaskService) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus:   make([]Count, len(constants.KnownStatuses)),
		ByAssignee: make([]Count, len(constants.KnownAssignees)),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.taskRepo.CountAll(gctx)
		stats.Total = total
		return err
	})
	for i, status := range constants.KnownStatuses {
		g.Go(func() error {
			n, err := s.taskRepo.Count(gctx, repository.FieldStatus, status)
			stats.ByStatus[i] = Count{Key: status, Value: n}
			return err
		})
	}
	for i, assignee := range constants.KnownAssignees {
		g.Go(func() error {
			n, err := s.taskRepo.Count(gctx, repository.FieldAssignee, assignee)
			stats.ByAssignee[i] = Count{Key: assignee, Value: n}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return stats, nil
}

// maxLengths mirrors the column sizes of the tasks table
var maxLengths = map[string]int{
	"title":      constants.MaxTitleLength,
	"assignee":   constants.MaxLabelLength,
	"status":     constants.MaxLabelLength,
	"priority":   constants.MaxPriorityLength,
	"category":   constants.MaxLabelLength,
	"created_by": constants.MaxLabelLength,
}

// checkLengths rejects values that would not fit their column.
// Fields are checked in a fixed order so the reported field is deterministic.
func checkLengths(values map[string]string) error {
	for _, field := range []string{"title", "assignee", "status", "priority", "category", "created_by"} {
		value, ok := values[field]
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(value); n > maxLengths[field] {
			return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLengths[field])}
		}
	}
	return nil
}

// withDefault treats an empty value as absent
func withDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
