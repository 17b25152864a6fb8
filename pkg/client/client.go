package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/requests"
	"scheduling-simulator/internal/responses"
)

// Client talks to a running simulator API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Config holds client configuration
type Config struct {
	BaseURL    string        // server root, e.g. http://localhost:9095
	Timeout    time.Duration // ignored when HTTPClient is set
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scheduler api: HTTP %d: %s", e.StatusCode, e.Message)
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:9095",
		Timeout: 10 * time.Second,
	}
}

func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		client:  httpClient,
		logger:  config.Logger,
	}
}

// Health reports whether the server answers its liveness check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) AddProcess(ctx context.Context, p requests.Process) (core.ProcessSpec, error) {
	var spec core.ProcessSpec
	err := c.do(ctx, http.MethodPost, "/api/v1/processes", p, &spec)
	if err == nil {
		c.logger.Debug("process registered", "pid", spec.ID)
	}
	return spec, err
}

func (c *Client) Processes(ctx context.Context) (responses.RegistryResponse, error) {
	var resp responses.RegistryResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/processes", nil, &resp)
	return resp, err
}

func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/processes/reset", nil, nil)
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/processes", nil, nil)
}

// Schedule runs policy over the processes of req on the server.
func (c *Client) Schedule(ctx context.Context, policy string, req requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	var resp responses.ScheduleResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/schedule/"+url.PathEscape(policy), req, &resp)
	return resp, err
}

func (c *Client) Compare(ctx context.Context, req requests.ScheduleRequest) (responses.ComparisonResponse, error) {
	var resp responses.ComparisonResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/compare", req, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "path", path)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var errorResp responses.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil && errorResp.Error != "" {
		apiErr.Message = errorResp.Error
	}
	c.logger.Error("API request failed", "error", apiErr.Message, "status", resp.StatusCode)
	return apiErr
}
