package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/models"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrConstraintViolation is returned when a required column is empty.
	ErrConstraintViolation = errors.New("constraint violation")
)

// TaskRepository defines the interface for task data access.
// Every call runs in its own session bound to ctx; mutations are a single transaction.
type TaskRepository interface {
	// Create inserts a fully populated task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update applies a partial update and refreshes updated_at
	Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*models.Task, error)

	// Delete hard deletes a task
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tasks whose field equals value
	Count(ctx context.Context, field TaskField, value string) (int64, error)

	// CountAll counts every task
	CountAll(ctx context.Context) (int64, error)
}

// TaskField names a column that can be used as an exact-match filter.
type TaskField string

const (
	FieldAssignee TaskField = "assignee"
	FieldStatus   TaskField = "status"
	FieldCategory TaskField = "category"
)

// Valid reports whether f is one of the filterable columns.
func (f TaskField) Valid() bool {
	switch f {
	case FieldAssignee, FieldStatus, FieldCategory:
		return true
	}
	return false
}

// TaskFilter holds exact-match filters for listing tasks. Empty fields are ignored.
type TaskFilter struct {
	Assignee string
	Status   string
	Category string
}
