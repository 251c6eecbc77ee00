package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/database"
	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db, now: time.Now}
}

// session scopes the shared pool to one caller. The connection it borrows is
// handed back to the pool when the statement or transaction finishes, on
// success and on error alike.
func (r *GormTaskRepository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := checkRequired(task); err != nil {
		return err
	}
	return r.session(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.session(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching every non-empty filter, newest first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	err := r.session(ctx).
		Scopes(
			database.Equals(string(FieldAssignee), filter.Assignee),
			database.Equals(string(FieldStatus), filter.Status),
			database.Equals(string(FieldCategory), filter.Category),
			database.NewestFirst,
		).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update applies patch to the task and refreshes updated_at in one transaction
func (r *GormTaskRepository) Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*models.Task, error) {
	var task models.Task

	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		patch.Apply(&task)
		if err := checkRequired(&task); err != nil {
			return err
		}
		task.UpdatedAt = nextUpdatedAt(r.now(), task.UpdatedAt)

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete removes a task permanently
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count counts tasks whose field equals value
func (r *GormTaskRepository) Count(ctx context.Context, field TaskField, value string) (int64, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("cannot count by %q", field)
	}

	var count int64
	err := r.session(ctx).Model(&models.Task{}).Where(string(field)+" = ?", value).Count(&count).Error
	return count, err
}

// CountAll counts every task
func (r *GormTaskRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.session(ctx).Model(&models.Task{}).Count(&count).Error
	return count, err
}

// checkRequired mirrors the NOT NULL columns of the tasks table.
func checkRequired(task *models.Task) error {
	required := []struct {
		column string
		value  string
	}{
		{"title", task.Title},
		{"assignee", task.Assignee},
		{"status", task.Status},
		{"priority", task.Priority},
		{"category", task.Category},
		{"created_by", task.CreatedBy},
	}

	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %s is required", ErrConstraintViolation, field.column)
		}
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: timestamps are required", ErrConstraintViolation)
	}
	return nil
}

// nextUpdatedAt returns a timestamp strictly after previous, normally now.
func nextUpdatedAt(now, previous time.Time) time.Time {
	next := now.UTC().Truncate(constants.TimestampPrecision)
	if !next.After(previous) {
		next = previous.Add(constants.TimestampPrecision)
	}
	return next
}
