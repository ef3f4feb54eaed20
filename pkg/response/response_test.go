package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Success(c, gin.H{"scan_id": "abc"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["code"])
	assert.Equal(t, "success", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", data["scan_id"])
}

func TestSuccessWithStatus(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		SuccessWithStatus(c, http.StatusAccepted, gin.H{"status": "pending"})
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "OK", body["code"])
}

func TestError(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["code"])
	assert.Equal(t, "boom", body["message"])
	assert.NotContains(t, body, "data")
}

func TestErrorWithStatus(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		ErrorWithStatus(c, http.StatusNotFound, "scan not found", "SCAN_NOT_FOUND")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SCAN_NOT_FOUND", body["code"])
	assert.Equal(t, "scan not found", body["message"])
}
