package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Assignee    string     `json:"assignee"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
	CreatedBy   string     `json:"created_by"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Assignee    string     `json:"assignee" binding:"required"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"due_date"`
	CreatedBy   string     `json:"created_by" binding:"required"`
}

// UpdateTaskRequest is the body of PATCH /tasks/:id. Absent keys are left alone.
type UpdateTaskRequest struct {
	Title       Field[string]    `json:"title"`
	Description Field[string]    `json:"description"`
	Assignee    Field[string]    `json:"assignee"`
	Status      Field[string]    `json:"status"`
	Priority    Field[string]    `json:"priority"`
	Category    Field[string]    `json:"category"`
	DueDate     Field[time.Time] `json:"due_date"`
}

// StatsDTO is the body of GET /stats
type StatsDTO struct {
	Total      int64  `json:"total"`
	ByStatus   Counts `json:"by_status"`
	ByAssignee Counts `json:"by_assignee"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		Status:      task.Status,
		Priority:    task.Priority,
		Category:    task.Category,
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
		CreatedBy:   task.CreatedBy,
	}

	if task.DueDate != nil {
		due := task.DueDate.UTC()
		dto.DueDate = &due
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks; the result is never nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToStatsDTO converts service stats, keeping breakdown order
func ToStatsDTO(stats services.Stats) StatsDTO {
	return StatsDTO{
		Total:      stats.Total,
		ByStatus:   toCounts(stats.ByStatus),
		ByAssignee: toCounts(stats.ByAssignee),
	}
}

func toCounts(counts []services.Count) Counts {
	out := make(Counts, len(counts))
	for i, c := range counts {
		out[i] = Count{Key: c.Key, Value: c.Value}
	}
	return out
}

// ToPatch turns the request into a repository patch. null is only accepted
// for the nullable columns, description and due_date.
func (r UpdateTaskRequest) ToPatch() (repository.TaskPatch, error) {
	var patch repository.TaskPatch

	required := []struct {
		name  string
		field Field[string]
		dst   *repository.Optional[string]
	}{
		{"title", r.Title, &patch.Title},
		{"assignee", r.Assignee, &patch.Assignee},
		{"status", r.Status, &patch.Status},
		{"priority", r.Priority, &patch.Priority},
		{"category", r.Category, &patch.Category},
	}
	for _, f := range required {
		if !f.field.Set {
			continue
		}
		if f.field.Null {
			return repository.TaskPatch{}, &services.ValidationError{Field: f.name, Message: "cannot be null"}
		}
		*f.dst = repository.Some(f.field.Value)
	}

	if r.Description.Set {
		patch.Description = repository.Some(r.Description.Ptr())
	}
	if r.DueDate.Set {
		due := r.DueDate.Ptr()
		if due != nil {
			utc := due.UTC()
			due = &utc
		}
		patch.DueDate = repository.Some(due)
	}

	return patch, nil
}

// ToInput converts the request into service input
func (r CreateTaskRequest) ToInput() services.CreateTaskInput {
	input := services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
		Status:      r.Status,
		Priority:    r.Priority,
		Category:    r.Category,
		CreatedBy:   r.CreatedBy,
	}
	if r.DueDate != nil {
		due := r.DueDate.UTC()
		input.DueDate = &due
	}
	return input
}
