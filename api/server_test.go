package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledcat/activity"
	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/stream"
	"github.com/matt-g-everett/ledcat/workq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct{}

func (fakeDisplay) NewSurface(width, height int) (stream.Surface, error) {
	return stream.NewCanvas(width, height, colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{}), nil
}

type testEnv struct {
	api     *Api
	sim     *workq.Sim
	monitor *activity.Monitor
	widget  *stream.CatWidget
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := stream.DefaultConfig()
	sim := workq.NewSim()
	bus := event.NewBus(sim.Submit)
	monitor := activity.NewMonitor(bus, sim, cfg.InitialActivity(), cfg.IdleTimeout(), cfg.SleepTimeout())
	widget, err := stream.NewCatWidget(fakeDisplay{}, sim, bus, cfg.CatOptions())
	require.NoError(t, err)
	monitor.Start()
	sim.Flush()

	return &testEnv{api: NewApi(cfg, widget, monitor), sim: sim, monitor: monitor, widget: widget}
}

func (e *testEnv) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.api.Handler().ServeHTTP(w, req)
	e.sim.Flush()
	return w
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) StatusData {
	t.Helper()
	var resp struct {
		Status string     `json:"status"`
		Data   StatusData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	return resp.Data
}

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeStatus(t, w)
	assert.Equal(t, 1, data.Frame)
	assert.Equal(t, 2, data.Frames)
	assert.True(t, data.Running)
	assert.Equal(t, "active", data.Activity)
}

func TestSetActivityPausesWidget(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/activity", []byte(`{"state":"idle"}`))
	require.Equal(t, http.StatusAccepted, w.Code)

	env.sim.Advance(5 * time.Second)
	data := decodeStatus(t, env.do(http.MethodGet, "/status", nil))
	assert.False(t, data.Running)
	assert.Equal(t, 1, data.Frame)
	assert.Equal(t, "idle", data.Activity)

	w = env.do(http.MethodPost, "/touch", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	data = decodeStatus(t, env.do(http.MethodGet, "/status", nil))
	assert.True(t, data.Running)
	assert.Equal(t, 0, data.Frame)
	assert.Equal(t, event.Active.String(), data.Activity)
}

func TestSetActivityRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `state=idle`},
		{"missing state", `{}`},
		{"unknown state", `{"state":"napping"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/activity", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.NotEmpty(t, resp.Error)
		})
	}
	assert.Equal(t, event.Active, env.monitor.State())
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/status", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	env.api.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
