package constants

import "time"

// Service identity reported by the health check
const (
	ServiceName    = "TaskFlow API"
	ServiceVersion = "1.0.0"
)

// Task defaults applied on create
const (
	DefaultTaskStatus   = "backlog"
	DefaultTaskPriority = "medium"
	DefaultTaskCategory = "dev"
)

// Context keys
const (
	ContextKeyTaskID = "task_id"
)

// KnownStatuses is the workflow order used by the stats breakdown.
var KnownStatuses = []string{"backlog", "todo", "in-progress", "review", "done"}

// KnownAssignees is the team roster used by the stats breakdown.
var KnownAssignees = []string{"mira", "felix", "werner", "sophie", "martin", "jon"}

// KnownPriorities and KnownCategories are documented conventions only; the API does not enforce them.
var (
	KnownPriorities = []string{"low", "medium", "high", "urgent"}
	KnownCategories = []string{"dev", "finance", "marketing", "admin", "client"}
)

// TimestampPrecision is the resolution timestamps are stored with.
// Postgres and MySQL DATETIME(6) both keep microseconds.
const TimestampPrecision = time.Microsecond

// Column widths of the tasks table
const (
	MaxTitleLength    = 255
	MaxLabelLength    = 50
	MaxPriorityLength = 20
)
