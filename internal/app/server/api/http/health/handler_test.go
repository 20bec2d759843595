package health

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

type fixedCounter int

func (c fixedCounter) Count(context.Context) int { return int(c) }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name             string
		sessions         int
		expectedStatus   string
		expectedSessions int
	}{
		{
			name:             "no sessions",
			expectedStatus:   "OK",
			expectedSessions: 0,
		},
		{
			name:             "with sessions",
			sessions:         4,
			expectedStatus:   "OK",
			expectedSessions: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(fixedCounter(tt.sessions), slog.Default(), huma.Middlewares{})

			// Act
			output, err := handler.healthCheck(context.Background(), &Input{})

			// Assert
			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedSessions, output.Body.Sessions)
		})
	}
}

func TestHandler_Route(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(fixedCounter(1), slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/api/v1/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"OK"`)
}

func TestHandler_OperationDocs(t *testing.T) {
	h := NewHandler(fixedCounter(0), slog.Default(), nil)

	op := h.healthCheckOp()

	assert.Equal(t, "/api/v1/health", op.Path)
	assert.Equal(t, "Server status", op.Summary)
	assert.Contains(t, op.Description, "session count")
	assert.Empty(t, op.Security)
}
