package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/requests"
	"scheduling-simulator/internal/responses"
)

const baseURL = "http://sim.test:9095"

func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	c := New(Config{
		BaseURL:    baseURL + "/",
		HTTPClient: &http.Client{Transport: transport},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, transport
}

func TestClient_AddProcess(t *testing.T) {
	c, transport := newMockClient(t)
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/processes",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"arrival":1,"burst":3,"priority":1}`, string(body))
			return httpmock.NewStringResponse(http.StatusCreated, `{"id":2,"arrival":1,"burst":3,"priority":1}`), nil
		})

	spec, err := c.AddProcess(context.Background(), requests.Process{ArrivalTime: 1, BurstTime: 3, Priority: 1})
	require.NoError(t, err)
	assert.Equal(t, core.ProcessSpec{ID: 2, Arrival: 1, Burst: 3, Priority: 1}, spec)
}

func TestClient_RegistryCalls(t *testing.T) {
	c, transport := newMockClient(t)
	transport.RegisterResponder(http.MethodGet, baseURL+"/api/v1/processes",
		httpmock.NewStringResponder(http.StatusOK, `{"capacity":100,"processes":[{"process_id":1,"burst_time":5,"remaining_time":5}]}`))
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/processes/reset",
		httpmock.NewStringResponder(http.StatusNoContent, ""))
	transport.RegisterResponder(http.MethodDelete, baseURL+"/api/v1/processes",
		httpmock.NewStringResponder(http.StatusNoContent, ""))
	transport.RegisterResponder(http.MethodGet, baseURL+"/healthz",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"ok"}`))

	ctx := context.Background()
	list, err := c.Processes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, list.Capacity)
	require.Len(t, list.Processes, 1)
	assert.Equal(t, 5, list.Processes[0].RemainingTime)

	require.NoError(t, c.Reset(ctx))
	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Health(ctx))
	assert.Equal(t, 4, transport.GetTotalCallCount())
}

func TestClient_ScheduleAndCompare(t *testing.T) {
	c, transport := newMockClient(t)
	want := responses.ScheduleResponse{
		Algorithm:          "rr",
		TimeQuantum:        4,
		TotalTime:          16,
		AverageWaitingTime: 16.0 / 3,
		Timeline:           []responses.IntervalResponse{{ProcessId: 1, Start: 0, End: 4}},
	}
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/schedule/rr",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, want))
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/compare",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, responses.ComparisonResponse{
			TimeQuantum: 4,
			Summary:     []responses.PolicySummary{{Algorithm: "fcfs"}},
			Advice:      []string{"a"},
		}))

	req := requests.ScheduleRequest{TimeQuantum: 4, Processes: []requests.Process{{BurstTime: 5}}}
	got, err := c.Schedule(context.Background(), "rr", req)
	require.NoError(t, err)
	assert.Equal(t, want.Timeline, got.Timeline)
	assert.InDelta(t, want.AverageWaitingTime, got.AverageWaitingTime, 1e-9)

	comparison, err := c.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, comparison.TimeQuantum)
	assert.Len(t, comparison.Summary, 1)
}

func TestClient_APIError(t *testing.T) {
	c, transport := newMockClient(t)
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/processes",
		httpmock.NewStringResponder(http.StatusConflict, `{"error":"process registry is at capacity: limit is 100"}`))
	transport.RegisterResponder(http.MethodPost, baseURL+"/api/v1/compare",
		httpmock.NewStringResponder(http.StatusBadGateway, `upstream down`))

	_, err := c.AddProcess(context.Background(), requests.Process{BurstTime: 1})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "capacity")

	_, err = c.Compare(context.Background(), requests.ScheduleRequest{})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	c, _ := newMockClient(t)
	// no responder registered
	err := c.Health(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, "http://localhost:9095", c.baseURL)
	assert.Equal(t, DefaultConfig().Timeout, c.client.Timeout)
	assert.NotNil(t, c.logger)
}
