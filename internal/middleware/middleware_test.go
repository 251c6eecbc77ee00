package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/tasks/:id", RequireTaskID(), func(c *gin.Context) {
		taskID, ok := GetTaskID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, taskID.String())
	})
	return r
}

func TestRequireTaskID_Valid(t *testing.T) {
	id := uuid.New()
	w := httptest.NewRecorder()

	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/"+id.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())
}

func TestRequireTaskID_Malformed(t *testing.T) {
	w := httptest.NewRecorder()

	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestGetTaskID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetTaskID(c)
	assert.False(t, ok)
}

func TestCORS_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/tasks/"+uuid.NewString(), nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
