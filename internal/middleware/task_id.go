package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/taskflow-api/internal/constants"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
)

// RequireTaskID parses the :id path parameter.
// An id that is not a UUID cannot name a task, so it is reported as not found.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the task ID parsed by RequireTaskID
func GetTaskID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyTaskID)
	if !exists {
		return uuid.Nil, false
	}

	taskID, ok := value.(uuid.UUID)
	return taskID, ok
}
