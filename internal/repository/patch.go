package repository

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// Optional carries a value together with whether it was supplied at all.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a supplied Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// TaskPatch lists every mutable task field. Only fields with Set are applied.
// id, created_at, created_by and updated_at are not patchable.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[*string]
	Assignee    Optional[string]
	Status      Optional[string]
	Priority    Optional[string]
	Category    Optional[string]
	DueDate     Optional[*time.Time]
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Assignee.Set && !p.Status.Set &&
		!p.Priority.Set && !p.Category.Set && !p.DueDate.Set
}

// Apply copies the supplied fields onto task.
func (p TaskPatch) Apply(task *models.Task) {
	if p.Title.Set {
		task.Title = p.Title.Value
	}
	if p.Description.Set {
		task.Description = p.Description.Value
	}
	if p.Assignee.Set {
		task.Assignee = p.Assignee.Value
	}
	if p.Status.Set {
		task.Status = p.Status.Value
	}
	if p.Priority.Set {
		task.Priority = p.Priority.Value
	}
	if p.Category.Set {
		task.Category = p.Category.Value
	}
	if p.DueDate.Set {
		task.DueDate = p.DueDate.Value
	}
}
