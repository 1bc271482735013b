package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-gaze/pkg/detect"
	"github.com/teslashibe/go-gaze/pkg/executor"
	"github.com/teslashibe/go-gaze/pkg/pipeline"
)

func testPipeline() *pipeline.Pipeline {
	src := detect.StaticFace(640, 480, 280, 200, 80, 80)
	return pipeline.New(pipeline.DefaultConfig(), src, executor.NewRecorder())
}

func TestHandleState_BeforeFirstFrame(t *testing.T) {
	srv := NewServer("0", testPipeline())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.NotEmpty(t, state.Session)
	assert.Nil(t, state.Snapshot, "no snapshot before the pipeline runs")
	assert.Equal(t, 0, state.Clients)
}

func TestHandleState_AfterPipelineRuns(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.SensorInterval = time.Millisecond
	cfg.ControlInterval = 2 * time.Millisecond
	pipe := pipeline.New(cfg, detect.StaticFace(640, 480, 280, 200, 80, 80), executor.NewRecorder())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	pipe.Run(ctx)

	srv := NewServer("0", pipe)
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var state State
	require.NoError(t, json.Unmarshal(body, &state))
	require.NotNil(t, state.Snapshot)
	assert.NotEmpty(t, state.Snapshot.Tracks)
	require.NotNil(t, state.Snapshot.Primary)
	assert.NotZero(t, state.Command.Duration)
}

func TestWebsocketRoute_RequiresUpgrade(t *testing.T) {
	srv := NewServer("0", testPipeline())

	req := httptest.NewRequest(http.MethodGet, "/ws/state", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestHub_BroadcastAndDropSlowClients(t *testing.T) {
	h := newHub()

	fast := h.register()
	slow := h.register()
	assert.Equal(t, 2, h.clientCount())

	// Fill the slow client's buffer, then overflow it.
	for i := 0; i < cap(slow)+1; i++ {
		h.broadcast([]byte("tick"))
		// Drain only the fast client.
		<-fast
	}

	assert.Equal(t, 1, h.clientCount(), "slow client should have been dropped")

	// The dropped client's channel is closed.
	drained := 0
	for range slow {
		drained++
	}
	assert.Equal(t, cap(slow), drained)

	h.unregister(fast)
	assert.Equal(t, 0, h.clientCount())
	// Unregistering twice is harmless.
	h.unregister(fast)
}
