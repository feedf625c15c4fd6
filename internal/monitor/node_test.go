package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNodeSource struct {
	mu    sync.Mutex
	n     int
	fail  bool
	calls int
}

func (f *fakeNodeSource) FetchNode(ctx context.Context) (NodeSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return NodeSample{}, NewTransportError("GET /node", errors.New("refused"))
	}
	f.n++
	return NodeSample{
		Timestamp: time.Unix(int64(1700000000+f.n), 0),
		CPUUsage:  float64(f.n),
	}, nil
}

func (f *fakeNodeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNodeMonitor_KeepsLastSamples(t *testing.T) {
	src := &fakeNodeSource{}
	m := NewNodeMonitor(src, WithCapacity(3), WithInterval(2*time.Millisecond))
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	require.Eventually(t, func() bool { return m.State().Version >= 5 }, waitFor, pollDur)
	m.Stop()

	state := m.State()
	require.Len(t, state.Samples, 3)
	assert.Less(t, state.Samples[0].CPUUsage, state.Samples[2].CPUUsage, "oldest first")
	assert.Equal(t, float64(state.Version), state.Samples[2].CPUUsage)
}

func TestNodeMonitor_ErrorAndPause(t *testing.T) {
	src := &fakeNodeSource{fail: true}
	m := NewNodeMonitor(src, WithInterval(2*time.Millisecond))
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	require.Eventually(t, func() bool { return m.State().Err != "" }, waitFor, pollDur)

	assert.False(t, m.TogglePause())
	assert.Equal(t, StatePaused, m.State().Polling)
	time.Sleep(10 * time.Millisecond)
	frozen := src.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, src.callCount())

	assert.True(t, m.TogglePause())
	require.Eventually(t, func() bool { return src.callCount() > frozen }, waitFor, pollDur)
}

func TestNodeMonitor_Defaults(t *testing.T) {
	m := NewNodeMonitor(&fakeNodeSource{})
	assert.Equal(t, DefaultNodeInterval, m.Interval())
	assert.Equal(t, StateIdle, m.State().Polling)
}
