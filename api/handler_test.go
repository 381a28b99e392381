package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/store"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

const twoProcesses = `{"processes":[{"id":1,"arrival":0,"burst":10},{"id":2,"arrival":1,"burst":5}]}`

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestPolicies_ListsAllPolicies(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/policies", "")

	require.Equal(t, http.StatusOK, status)
	var got []PolicyInfo
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 7)
	assert.Equal(t, PolicyInfo{Name: "fcfs", Description: "First-Come First-Served", NeedsQuantum: false}, got[0])
	assert.Equal(t, "rr", got[1].Name)
	assert.True(t, got[1].NeedsQuantum)
}

func TestSchedule_FCFS(t *testing.T) {
	// GIVEN A(0,10) and B(1,5)
	app := NewApp(sim.DefaultConfig(), nil)

	// WHEN scheduled FCFS over HTTP
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/schedule/fcfs", twoProcesses)

	// THEN the per-process metrics match the engine
	require.Equal(t, http.StatusOK, status, string(body))
	var got ScheduleResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "fcfs", got.Policy)
	assert.Empty(t, got.RunID)
	require.Len(t, got.Processes, 2)
	assert.Equal(t, int64(0), got.Processes[0].WaitingTime)
	assert.Equal(t, int64(9), got.Processes[1].WaitingTime)
	assert.Equal(t, int64(14), got.Processes[1].TurnaroundTime)
	assert.InDelta(t, 4.5, got.Summary.AvgWaiting, 1e-12)
	assert.Equal(t, []sim.SliceOutput{{ProcessID: 1, Start: 0, End: 10}, {ProcessID: 2, Start: 10, End: 15}}, got.Gantt)
}

func TestSchedule_QuantumFromBody(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)
	body := `{"quantum":4,"processes":[{"id":1,"arrival":0,"burst":10},{"id":2,"arrival":1,"burst":5}]}`

	status, data := doRequest(t, app, http.MethodPost, "/api/v1/schedule/rr", body)

	require.Equal(t, http.StatusOK, status, string(data))
	var got ScheduleResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, int64(4), got.Config.Quantum)
	assert.Equal(t, int64(5), got.Processes[0].WaitingTime)
	assert.Equal(t, int64(7), got.Processes[1].WaitingTime)
	assert.Len(t, got.Gantt, 5)
}

func TestSchedule_Errors(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown policy", "/api/v1/schedule/lottery", twoProcesses, http.StatusNotFound},
		{"malformed body", "/api/v1/schedule/fcfs", "{", http.StatusBadRequest},
		{"no processes", "/api/v1/schedule/fcfs", `{"processes":[]}`, http.StatusBadRequest},
		{"zero quantum", "/api/v1/schedule/rr", `{"quantum":0,"processes":[{"id":1,"arrival":0,"burst":1}]}`, http.StatusBadRequest},
		{"zero levels", "/api/v1/schedule/feedback", `{"levels":0,"processes":[{"id":1,"arrival":0,"burst":1}]}`, http.StatusBadRequest},
		{"zero burst", "/api/v1/schedule/spn", `{"processes":[{"id":1,"arrival":0,"burst":0}]}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(body))
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestCompare_AllPoliciesInOrder(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/compare", twoProcesses)

	require.Equal(t, http.StatusOK, status, string(body))
	var got CompareResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Results, len(sim.PolicyNames()))
	for i, name := range sim.PolicyNames() {
		assert.Equal(t, name, got.Results[i].Policy)
		assert.Equal(t, int64(15), got.Results[i].EndTime)
	}
}

func TestCompare_InvalidQuantum_Rejected(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)
	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/compare",
		`{"quantum":-1,"processes":[{"id":1,"arrival":0,"burst":1}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRuns_NotServedWithoutStore(t *testing.T) {
	app := NewApp(sim.DefaultConfig(), nil)
	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/runs", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRuns_StoredAndRetrievable(t *testing.T) {
	// GIVEN a server backed by a run store
	runs, err := store.Open(filepath.Join(t.TempDir(), "runs.sqlite3"))
	require.NoError(t, err)
	defer func() { _ = runs.Close() }()
	app := NewApp(sim.DefaultConfig(), runs)

	// WHEN a run is scheduled
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/schedule/srt", twoProcesses)
	require.Equal(t, http.StatusOK, status, string(body))
	var scheduled ScheduleResponse
	require.NoError(t, json.Unmarshal(body, &scheduled))
	require.NotEmpty(t, scheduled.RunID)

	// THEN it is listed and can be fetched by ID
	status, body = doRequest(t, app, http.MethodGet, "/api/v1/runs", "")
	require.Equal(t, http.StatusOK, status)
	var listed []store.RunRecord
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, scheduled.RunID, listed[0].ID)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/runs/"+scheduled.RunID, "")
	require.Equal(t, http.StatusOK, status)
	var fetched store.RunRecord
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "srt", fetched.Policy)
	assert.Equal(t, scheduled.Processes, fetched.Processes)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/runs/9m4e2mr0ui3e8a215n4g", "")
	assert.Equal(t, http.StatusNotFound, status)
}
