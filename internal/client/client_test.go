package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskflow-api/internal/dto"
	"github.com/yukikurage/taskflow-api/internal/handlers"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ClientTestSuite struct {
	suite.Suite
	db     *gorm.DB
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func (suite *ClientTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(&models.Task{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.RegisterRoutes(router, handlers.NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db))))

	suite.server = httptest.NewServer(router)
	suite.client = New(suite.server.URL+"/", suite.server.Client())
	suite.ctx = context.Background()
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ClientTestSuite) TestHealth() {
	health, err := suite.client.Health(suite.ctx)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "ok", health.Status)
	assert.Equal(suite.T(), "TaskFlow API", health.Service)
}

func (suite *ClientTestSuite) TestTaskLifecycle() {
	desc := "Null pointer in parser"
	created, err := suite.client.CreateTask(suite.ctx, dto.CreateTaskRequest{
		Title:       "Fix bug",
		Description: &desc,
		Assignee:    "felix",
		CreatedBy:   "mira",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "backlog", created.Status)
	assert.Equal(suite.T(), desc, *created.Description)

	fetched, err := suite.client.GetTask(suite.ctx, created.ID.String())
	suite.Require().NoError(err)
	assert.Equal(suite.T(), created.ID, fetched.ID)

	status := "done"
	updated, err := suite.client.UpdateTask(suite.ctx, created.ID.String(), UpdateTaskParams{Status: &status})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "done", updated.Status)
	assert.Equal(suite.T(), desc, *updated.Description)
	assert.Equal(suite.T(), "Fix bug", updated.Title)

	suite.Require().NoError(suite.client.DeleteTask(suite.ctx, created.ID.String()))

	_, err = suite.client.GetTask(suite.ctx, created.ID.String())
	var apiErr *APIError
	suite.Require().True(errors.As(err, &apiErr))
	assert.Equal(suite.T(), http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(suite.T(), "NOT_FOUND", apiErr.Code)
	assert.Contains(suite.T(), apiErr.Error(), "Task not found")

	err = suite.client.DeleteTask(suite.ctx, created.ID.String())
	suite.Require().True(errors.As(err, &apiErr))
	assert.Equal(suite.T(), http.StatusNotFound, apiErr.StatusCode)
}

func (suite *ClientTestSuite) TestListTasks() {
	for _, assignee := range []string{"mira", "felix", "mira"} {
		_, err := suite.client.CreateTask(suite.ctx, dto.CreateTaskRequest{
			Title:     "Task for " + assignee,
			Assignee:  assignee,
			CreatedBy: "cli",
		})
		suite.Require().NoError(err)
	}

	all, err := suite.client.ListTasks(suite.ctx, ListFilter{})
	suite.Require().NoError(err)
	assert.Len(suite.T(), all, 3)

	mine, err := suite.client.ListTasks(suite.ctx, ListFilter{Assignee: "mira", Status: "backlog"})
	suite.Require().NoError(err)
	assert.Len(suite.T(), mine, 2)

	byPath, err := suite.client.ListTasksByAssignee(suite.ctx, "felix")
	suite.Require().NoError(err)
	suite.Require().Len(byPath, 1)
	assert.Equal(suite.T(), "felix", byPath[0].Assignee)

	none, err := suite.client.ListTasks(suite.ctx, ListFilter{Category: "finance"})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), none)
}

func (suite *ClientTestSuite) TestCreateTask_ValidationError() {
	_, err := suite.client.CreateTask(suite.ctx, dto.CreateTaskRequest{Title: "orphan"})

	var apiErr *APIError
	suite.Require().True(errors.As(err, &apiErr))
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(suite.T(), "VALIDATION_FAILED", apiErr.Code)
	assert.Contains(suite.T(), apiErr.Body, "created_by")
}

func (suite *ClientTestSuite) TestStats() {
	_, err := suite.client.CreateTask(suite.ctx, dto.CreateTaskRequest{
		Title:     "Count me",
		Assignee:  "jon",
		Status:    "review",
		CreatedBy: "cli",
	})
	suite.Require().NoError(err)

	stats, err := suite.client.Stats(suite.ctx)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(1), stats.Total)
	assert.Equal(suite.T(), int64(1), stats.ByStatus.Get("review"))
	assert.Equal(suite.T(), "backlog", stats.ByStatus[0].Key)
	assert.Equal(suite.T(), "mira", stats.ByAssignee[0].Key)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := New(baseURL, nil).Stats(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestTaskPath(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, "/tasks/"+id.String(), taskPath(strings.ToUpper(id.String())))
	assert.Equal(t, "/tasks/not-a-uuid", taskPath("not-a-uuid"))
}
