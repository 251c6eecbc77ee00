package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/middleware"
)

// RegisterRoutes mounts the TaskFlow API on r
func RegisterRoutes(r gin.IRouter, taskHandler *TaskHandler) {
	// Health check endpoints
	r.GET("/", Health)
	r.GET("/health", Health)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/by-assignee/:assignee", taskHandler.ListTasksByAssignee)
		tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
		tasks.PATCH("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
	}

	r.GET("/stats", taskHandler.GetStats)
}

// Health reports that the service is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.ServiceName,
		"version": constants.ServiceVersion,
	})
}
