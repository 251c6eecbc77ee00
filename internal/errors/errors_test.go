package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestNotFound_DefaultMessage(t *testing.T) {
	w := respond(func(c *gin.Context) { NotFound(c, "") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Resource not found"}`, w.Body.String())
}

func TestUnprocessableEntity_Details(t *testing.T) {
	w := respond(func(c *gin.Context) {
		UnprocessableEntity(c, "", []FieldError{{Field: "title", Message: "field required"}})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeValidationFailed, body.Code)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []interface{}{map[string]interface{}{"field": "title", "message": "field required"}}, body.Details)
}

func TestInternalError(t *testing.T) {
	w := respond(func(c *gin.Context) { InternalError(c, "boom") })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"boom"}`, w.Body.String())
	assert.Equal(t, "boom", NewAPIError(ErrCodeInternalError, "boom").Error())
}
