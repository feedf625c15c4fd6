package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned records per query and records every call
type fakeSource struct {
	mu      sync.Mutex
	byQuery map[Query][]LogRecord
	err     error
	calls   []Query
	gate    chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{byQuery: make(map[Query][]LogRecord)}
}

func (f *fakeSource) set(q Query, records []LogRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byQuery[q] = records
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) lastCall() Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeSource) FetchLogs(ctx context.Context, q Query) ([]LogRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[q], nil
}

func startMonitor(t *testing.T, src LogSource, opts ...Option) *LogMonitor {
	t.Helper()
	m := NewLogMonitor(src, opts...)
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(m.Stop)
	return m
}

func TestLogMonitor_PollsIntoBuffer(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a", "b", "c", "d", "e"))

	m := startMonitor(t, src, WithCapacity(3), WithInterval(5*time.Millisecond))

	require.Eventually(t, func() bool { return m.State().Version >= 1 }, waitFor, pollDur)
	state := m.State()
	require.Len(t, state.Rows, 3)
	assert.Equal(t, "c", state.Rows[0].Time)
	assert.Equal(t, "e", state.Rows[2].Time)
	assert.True(t, state.AutoScroll)
	assert.Empty(t, state.Err)
	assert.Equal(t, StateActive, state.Polling)
}

func TestLogMonitor_ErrorIsDisplayedAndPollingContinues(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a"))
	src.setErr(NewTransportError("GET /logs/intruder", context.DeadlineExceeded))

	m := startMonitor(t, src, WithInterval(5*time.Millisecond))

	require.Eventually(t, func() bool { return m.State().Err == FetchFailedMessage }, waitFor, pollDur)
	calls := src.callCount()
	require.Eventually(t, func() bool { return src.callCount() > calls+1 }, waitFor, pollDur)

	src.setErr(nil)
	require.Eventually(t, func() bool {
		s := m.State()
		return s.Err == "" && len(s.Rows) == 1
	}, waitFor, pollDur)
}

func TestLogMonitor_SubmitFilter(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a", "b"))
	src.set(ByPort("443"), recs("https"))

	m := startMonitor(t, src, WithInterval(5*time.Millisecond))
	require.Eventually(t, func() bool { return len(m.State().Rows) == 2 }, waitFor, pollDur)

	require.NoError(t, m.SubmitFilter(FilterByPort, "443"))
	assert.Equal(t, ByPort("443"), m.Query())

	require.Eventually(t, func() bool {
		rows := m.State().Rows
		return len(rows) == 1 && rows[0].Time == "https"
	}, waitFor, pollDur)
	assert.Equal(t, ByPort("443"), src.lastCall())

	require.NoError(t, m.SubmitFilter(FilterNone, ""))
	assert.Equal(t, All(), m.Query())
	require.Eventually(t, func() bool { return len(m.State().Rows) == 2 }, waitFor, pollDur)
}

func TestLogMonitor_SubmitFilterRejectsEmptyValue(t *testing.T) {
	src := newFakeSource()
	m := NewLogMonitor(src)

	err := m.SubmitFilter(FilterBySourceIP, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, All(), m.Query())
	assert.Zero(t, src.callCount(), "no fetch for an empty filter value")
}

func TestLogMonitor_ResubmitSameFilterKeepsRows(t *testing.T) {
	src := newFakeSource()
	src.set(ByPort("22"), recs("ssh-1", "ssh-2"))

	m := startMonitor(t, src, WithInterval(time.Hour))
	require.Eventually(t, func() bool {
		return m.State().Version >= 1 && !m.poller.InFlight()
	}, waitFor, pollDur)
	require.NoError(t, m.SubmitFilter(FilterByPort, "22"))
	require.Eventually(t, func() bool { return len(m.State().Rows) == 2 }, waitFor, pollDur)

	before := m.State()
	gen := m.filter.Generation()

	require.NoError(t, m.SubmitFilter(FilterByPort, " 22 "))

	after := m.State()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, gen, m.filter.Generation())
	assert.Len(t, after.Rows, 2)
	assert.Equal(t, ByPort("22"), m.Query())
}

func TestLogMonitor_SubmitAllWhileUnfilteredIsNoop(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a"))

	m := startMonitor(t, src, WithInterval(time.Hour))
	require.Eventually(t, func() bool { return len(m.State().Rows) == 1 }, waitFor, pollDur)
	version := m.State().Version

	require.NoError(t, m.SubmitFilter(FilterNone, ""))
	assert.Equal(t, version, m.State().Version)
	assert.Len(t, m.State().Rows, 1)
}

func TestLogMonitor_FilterChangeClearsBufferAndDropsPending(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("old-1", "old-2"))
	src.set(BySourceIP("10.0.0.5"), recs("new"))

	m := startMonitor(t, src, WithInterval(time.Hour))
	require.Eventually(t, func() bool { return len(m.State().Rows) == 2 }, waitFor, pollDur)

	// hold the next fetch for All in flight
	src.mu.Lock()
	src.gate = make(chan struct{})
	src.mu.Unlock()
	require.True(t, m.poller.Trigger())
	require.Eventually(t, func() bool { return src.callCount() == 2 }, waitFor, pollDur)

	versionBefore := m.State().Version
	require.NoError(t, m.SubmitFilter(FilterBySourceIP, "10.0.0.5"))

	state := m.State()
	assert.Empty(t, state.Rows, "filter change clears the buffer")
	assert.Greater(t, state.Version, versionBefore)

	// release the stale All fetch; its result must be dropped
	src.mu.Lock()
	close(src.gate)
	src.gate = nil
	src.mu.Unlock()
	require.Eventually(t, func() bool { return !m.poller.InFlight() }, waitFor, pollDur)
	assert.Empty(t, m.State().Rows)

	require.True(t, m.poller.Trigger())
	require.Eventually(t, func() bool {
		rows := m.State().Rows
		return len(rows) == 1 && rows[0].Time == "new"
	}, waitFor, pollDur)
}

func TestLogMonitor_ToggleAutoScrollPausesPolling(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a"))
	m := startMonitor(t, src, WithInterval(5*time.Millisecond))
	require.Eventually(t, func() bool { return src.callCount() >= 2 }, waitFor, pollDur)

	assert.False(t, m.ToggleAutoScroll())
	state := m.State()
	assert.False(t, state.AutoScroll)
	assert.Equal(t, StatePaused, state.Polling)

	require.Eventually(t, func() bool { return !m.poller.InFlight() }, waitFor, pollDur)
	frozen := src.callCount()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, frozen, src.callCount())

	assert.True(t, m.ToggleAutoScroll())
	assert.Equal(t, StateActive, m.State().Polling)
	require.Eventually(t, func() bool { return src.callCount() > frozen }, waitFor, pollDur)
}

func TestLogMonitor_SetAutoScroll(t *testing.T) {
	m := startMonitor(t, newFakeSource(), WithInterval(time.Hour))

	m.SetAutoScroll(false)
	assert.False(t, m.State().AutoScroll)
	assert.Equal(t, StatePaused, m.State().Polling)

	m.SetAutoScroll(false)
	assert.Equal(t, StatePaused, m.State().Polling)

	m.SetAutoScroll(true)
	assert.True(t, m.State().AutoScroll)
	assert.Equal(t, StateActive, m.State().Polling)
}

func TestLogMonitor_ShouldScroll(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a"))
	m := startMonitor(t, src, WithInterval(time.Hour))
	require.Eventually(t, func() bool { return m.State().Version == 1 }, waitFor, pollDur)

	assert.True(t, m.ShouldScroll(1))
	assert.False(t, m.ShouldScroll(1))

	m.ToggleAutoScroll()
	assert.False(t, m.ShouldScroll(2))
}

func TestLogMonitor_StopHaltsFetching(t *testing.T) {
	src := newFakeSource()
	m := NewLogMonitor(src, WithInterval(5*time.Millisecond))
	require.NoError(t, m.Start(context.Background()))
	require.Eventually(t, func() bool { return src.callCount() >= 2 }, waitFor, pollDur)

	m.Stop()
	m.Stop()
	after := src.callCount()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, after, src.callCount())
	assert.Equal(t, StateStopped, m.State().Polling)
}

func TestLogMonitor_UpdatesCoalesce(t *testing.T) {
	src := newFakeSource()
	src.set(All(), recs("a"))
	m := startMonitor(t, src, WithInterval(2*time.Millisecond))

	select {
	case <-m.Updates():
	case <-time.After(waitFor):
		t.Fatal("no update signal")
	}

	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, len(m.Updates()), 1)
}

func TestLogMonitor_Defaults(t *testing.T) {
	m := NewLogMonitor(newFakeSource())
	assert.Equal(t, DefaultLogCapacity, m.Capacity())
	assert.Equal(t, DefaultLogInterval, m.Interval())
	assert.Equal(t, StateIdle, m.State().Polling)
	assert.True(t, m.State().AutoScroll)
}
