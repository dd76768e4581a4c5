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

	"resortdesk/internal/pkg/apperr"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.New(apperr.ErrNotFound, "X", "x"), http.StatusNotFound},
		{apperr.New(apperr.ErrInvalidInput, "X", "x"), http.StatusBadRequest},
		{apperr.New(apperr.ErrInvalidState, "X", "x"), http.StatusBadRequest},
		{apperr.New(apperr.ErrUnauthorized, "X", "x"), http.StatusUnauthorized},
		{apperr.New(apperr.ErrForbidden, "X", "x"), http.StatusForbidden},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestFromErrorHidesInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Len(t, c.Errors, 1)
}

func TestFromErrorUsesCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, apperr.New(apperr.ErrInvalidState, "ROOM_NOT_AVAILABLE", "room is not available"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ROOM_NOT_AVAILABLE")
	assert.Contains(t, w.Body.String(), "room is not available")
}
