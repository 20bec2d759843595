package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
	"recordbook/internal/metrics"
)

type client struct {
	t       *testing.T
	srv     *httptest.Server
	session string
}

func newServer(t *testing.T) *client {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := slog.Default()

	sessions, err := session.NewService(session.NewRepo(log), log, m, session.Options{IDStart: -1})
	require.NoError(t, err)

	srv := httptest.NewServer(New(Deps{
		Records:     record.NewService(log, m),
		Sessions:    sessions,
		DefaultKind: record.KindTodo,
		Gatherer:    reg,
		Log:         log,
	}))
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.srv.URL+path, r)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.Header.Set("X-Session-ID", c.session)
	}

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, data
}

func (c *client) open(kind record.Kind) session.Info {
	c.t.Helper()

	code, data := c.do(http.MethodPost, "/api/v1/sessions", map[string]string{"kind": string(kind)})
	require.Equal(c.t, http.StatusCreated, code, string(data))

	var info session.Info
	require.NoError(c.t, json.Unmarshal(data, &info))
	c.session = info.SessionID
	return info
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestAPI_TodoFlow(t *testing.T) {
	c := newServer(t)
	info := c.open(record.KindTodo)
	assert.Equal(t, record.ID("3"), info.NextID)

	code, data := c.do(http.MethodPost, "/api/v1/records", map[string]any{"content": "진라면"})
	require.Equal(t, http.StatusCreated, code, string(data))
	created := decode[record.MutationResponse](t, data)
	require.NotNil(t, created.Record)
	assert.Equal(t, record.ID("3"), created.Record.ID)
	assert.Equal(t, 4, created.Total)

	code, data = c.do(http.MethodPost, "/api/v1/records/3/toggle", nil)
	require.Equal(t, http.StatusOK, code, string(data))
	assert.True(t, decode[record.MutationResponse](t, data).Record.IsDone)

	code, data = c.do(http.MethodGet, "/api/v1/records?q=%EB%9D%BC%EB%A9%B4", nil) // 라면
	require.Equal(t, http.StatusOK, code)
	list := decode[record.ListResponse](t, data)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, record.ID("3"), list.Records[0].ID)

	code, _ = c.do(http.MethodGet, "/api/v1/records/99", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, data = c.do(http.MethodDelete, "/api/v1/records/99", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, decode[record.MutationResponse](t, data).Affected)

	code, data = c.do(http.MethodPost, "/api/v1/actions", `{"type":"DELETE","targetId":0}`)
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, 1, decode[record.MutationResponse](t, data).Affected)

	code, data = c.do(http.MethodPost, "/api/v1/actions", `{"type":"RESET"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code, string(data))

	code, data = c.do(http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[record.StatsResponse](t, data)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Done)
	assert.Equal(t, record.ID("4"), stats.NextID)
}

func TestAPI_DiaryFlow(t *testing.T) {
	c := newServer(t)
	c.open(record.KindDiary)

	code, data := c.do(http.MethodPost, "/api/v1/records", map[string]any{"content": "맑음", "emotionId": 2, "date": 1700000000000})
	require.Equal(t, http.StatusCreated, code, string(data))
	assert.Equal(t, record.ID("0"), decode[record.MutationResponse](t, data).Record.ID)

	code, data = c.do(http.MethodPut, "/api/v1/records/mock2", map[string]any{"content": "수정", "emotionId": 5, "date": 1700000000000})
	require.Equal(t, http.StatusOK, code, string(data))

	code, data = c.do(http.MethodGet, "/api/v1/records/mock2", nil)
	require.Equal(t, http.StatusOK, code)
	item := decode[record.Item](t, data)
	assert.Equal(t, "수정", item.Content)
	assert.Equal(t, record.Emotion(5), item.EmotionID)

	code, data = c.do(http.MethodPatch, "/api/v1/records/mock1", map[string]any{"isDone": true})
	assert.Equal(t, http.StatusUnprocessableEntity, code, string(data))

	code, _ = c.do(http.MethodPost, "/api/v1/records", map[string]any{"content": "no mood"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestAPI_CreateAfterRawCreateOnCounterID(t *testing.T) {
	c := newServer(t)
	c.open(record.KindDiary)

	code, data := c.do(http.MethodPost, "/api/v1/actions", `{"type":"CREATE","data":{"id":0,"content":"raw","emotionId":1,"date":1700000000000}}`)
	require.Equal(t, http.StatusOK, code, string(data))

	for _, want := range []record.ID{"1", "2"} {
		code, data = c.do(http.MethodPost, "/api/v1/records", map[string]any{"content": "맑음", "emotionId": 3})
		require.Equal(t, http.StatusCreated, code, string(data))
		assert.Equal(t, want, decode[record.MutationResponse](t, data).Record.ID)
	}
}

func TestAPI_SessionsAreIsolated(t *testing.T) {
	c := newServer(t)
	first := c.open(record.KindTodo)

	code, _ := c.do(http.MethodDelete, "/api/v1/records/0", nil)
	require.Equal(t, http.StatusOK, code)

	c.open(record.KindTodo)
	code, data := c.do(http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, decode[record.ListResponse](t, data).Total)

	c.session = first.SessionID
	code, data = c.do(http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, decode[record.ListResponse](t, data).Total)
}

func TestAPI_RequiresSession(t *testing.T) {
	c := newServer(t)

	code, _ := c.do(http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	c := newServer(t)
	c.open(record.KindTodo)

	code, data := c.do(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(data), `"sessions":1`)

	code, data = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(data), `recordbook_sessions_created_total{kind="todo"} 1`)
}
