package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.Validation("bad"), http.StatusBadRequest},
		{"unauthenticated", apperrors.Unauthenticated("who"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("no"), http.StatusForbidden},
		{"not found", apperrors.NotFound("gone"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("dup"), http.StatusConflict},
		{"backend", apperrors.Backend("down"), http.StatusBadGateway},
		{"configuration", apperrors.Configuration("unset"), http.StatusServiceUnavailable},
		{"timeout", apperrors.Wrap(context.DeadlineExceeded, apperrors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"wrapped", apperrors.Wrap(apperrors.NotFound("inner"), apperrors.ErrCodeForbidden, "outer"), http.StatusForbidden},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestWriteAppError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, apperrors.Wrap(errors.New("dial tcp: refused"), apperrors.ErrCodeBackend, "Inventory service unavailable."), "fallback")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "backend", body["error"])
	assert.Equal(t, "Inventory service unavailable.", body["message"], "cause must not leak")
}

func TestWriteAppError_PlainErrorUsesFallback(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, errors.New("secret detail"), "Something went wrong.")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal", body["error"])
	assert.Equal(t, "Something went wrong.", body["message"])
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
