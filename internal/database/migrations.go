package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// taskIndexes cover the list filters and the newest-first ordering.
var taskIndexes = []struct {
	name    string
	columns string
}{
	{"idx_tasks_assignee", "assignee"},
	{"idx_tasks_status", "status"},
	{"idx_tasks_category", "category"},
	{"idx_tasks_created_at", "created_at"},
}

// AddIndexes adds the secondary indexes on the tasks table
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on tasks(%s)", idx.name, idx.columns)
	}

	return nil
}
