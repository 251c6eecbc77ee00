package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is the single tracked unit of work.
// Status, priority and category are free-form at the storage layer.
type Task struct {
	ID          uuid.UUID  `gorm:"primarykey;size:36" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Assignee    string     `gorm:"size:50;not null" json:"assignee"`
	Status      string     `gorm:"size:50;not null;default:backlog" json:"status"`
	Priority    string     `gorm:"size:20;not null;default:medium" json:"priority"`
	Category    string     `gorm:"size:50;not null;default:dev" json:"category"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
	CreatedBy   string     `gorm:"size:50;not null" json:"created_by"`
}

// TableName returns the table name for Task model.
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate assigns a random id when the caller did not set one.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
