package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"recordbook/internal/app/client/config"
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

const sessionHeader = "X-Session-ID"

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	session   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	return &httpClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		log:       log,
		baseURL:   cfg.BaseURL(),
		userAgent: "recordbook-cli/1.0",
	}
}

func (h *httpClient) SetSession(id string) {
	h.session = id
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) OpenSession(ctx context.Context, kind record.Kind) (session.Info, error) {
	var info session.Info
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/sessions", map[string]record.Kind{"kind": kind})
	if err != nil {
		return info, err
	}
	err = h.parseResponse(resp, &info)
	return info, err
}

func (h *httpClient) SessionInfo(ctx context.Context, id string) (session.Info, error) {
	var info session.Info
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return info, err
	}
	err = h.parseResponse(resp, &info)
	return info, err
}

func (h *httpClient) CloseSession(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/v1/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListRecords(ctx context.Context, query string) (record.ListResponse, error) {
	path := "/api/v1/records"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}

	var list record.ListResponse
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return list, err
	}
	err = h.parseResponse(resp, &list)
	return list, err
}

func (h *httpClient) GetRecord(ctx context.Context, id record.ID) (record.Item, error) {
	var item record.Item
	resp, err := h.doRequest(ctx, http.MethodGet, recordPath(id), nil)
	if err != nil {
		return item, err
	}
	err = h.parseResponse(resp, &item)
	return item, err
}

func (h *httpClient) CreateRecord(ctx context.Context, req record.CreateRequest) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodPost, "/api/v1/records", req)
}

func (h *httpClient) PatchRecord(ctx context.Context, id record.ID, req record.PatchRequest) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodPatch, recordPath(id), req)
}

func (h *httpClient) ReplaceRecord(ctx context.Context, id record.ID, req record.ReplaceRequest) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodPut, recordPath(id), req)
}

func (h *httpClient) ToggleRecord(ctx context.Context, id record.ID) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodPost, recordPath(id)+"/toggle", nil)
}

func (h *httpClient) DeleteRecord(ctx context.Context, id record.ID) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodDelete, recordPath(id), nil)
}

// Dispatch sends a raw tagged action as is.
func (h *httpClient) Dispatch(ctx context.Context, action json.RawMessage) (record.MutationResponse, error) {
	return h.mutate(ctx, http.MethodPost, "/api/v1/actions", action)
}

func (h *httpClient) Stats(ctx context.Context) (record.StatsResponse, error) {
	var stats record.StatsResponse
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/stats", nil)
	if err != nil {
		return stats, err
	}
	err = h.parseResponse(resp, &stats)
	return stats, err
}

func (h *httpClient) mutate(ctx context.Context, method, path string, body any) (record.MutationResponse, error) {
	var out record.MutationResponse
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	err = h.parseResponse(resp, &out)
	return out, err
}

func recordPath(id record.ID) string {
	return "/api/v1/records/" + url.PathEscape(string(id))
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		reqBody = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.session != "" {
		req.Header.Set(sessionHeader, h.session)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("response received", "status", resp.StatusCode, "body", string(body))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(body, apiErr)
		apiErr.Status = resp.StatusCode

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return ErrNoSession
		case resp.StatusCode == http.StatusGone:
			return ErrSessionGone
		case resp.StatusCode == http.StatusNotFound && apiErr.Detail == "record does not exist":
			return ErrRecordNotFound
		case resp.StatusCode == http.StatusNotFound && apiErr.Detail == "session does not exist":
			return ErrSessionGone
		}
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
