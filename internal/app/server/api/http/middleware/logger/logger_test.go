package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		headers   []any
		wantLevel string
		wantSess  string
	}{
		{
			name:      "ok request",
			path:      "/ok",
			wantLevel: "INFO",
		},
		{
			name:      "session header is logged",
			path:      "/ok",
			headers:   []any{"X-Session-ID: abc"},
			wantLevel: "INFO",
			wantSess:  "abc",
		},
		{
			name:      "server error logs at error level",
			path:      "/boom",
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			mw := huma.Middlewares{New(log).Middleware()}

			_, api := humatest.New(t)
			huma.Register(api, huma.Operation{
				OperationID: "ok",
				Method:      http.MethodGet,
				Path:        "/ok",
				Middlewares: mw,
			}, func(context.Context, *struct{}) (*struct{}, error) {
				return nil, nil
			})
			huma.Register(api, huma.Operation{
				OperationID: "boom",
				Method:      http.MethodGet,
				Path:        "/boom",
				Middlewares: mw,
			}, func(context.Context, *struct{}) (*struct{}, error) {
				return nil, huma.Error500InternalServerError("boom")
			})

			api.Get(tt.path, tt.headers...)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, http.MethodGet, entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, "http_logger", entry["component"])
			if tt.wantSess != "" {
				assert.Equal(t, tt.wantSess, entry["session_id"])
			} else {
				assert.NotContains(t, entry, "session_id")
			}
		})
	}
}
