package simulation

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

type recordingNotifier struct {
	mu     sync.Mutex
	ticks  []TickReport
	events []messages.PlotEvent
}

func (r *recordingNotifier) NotifyTick(rep TickReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, rep)
}

func (r *recordingNotifier) NotifyEvent(evt messages.PlotEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingNotifier) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

var quiet = log.New(io.Discard, "", 0)

func newTestEngine(t *testing.T, cfg Config, src Source, plots []entities.Plot, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithSource(src), WithLogger(quiet)}, opts...)
	e, err := NewEngine(cfg, plots, opts...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEngineStartsSeededWithFirstPlotSelected(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), NewSeededSource(5), DefaultPlots())

	assert.Equal(t, "plot1", e.Selected())
	for _, p := range e.Plots() {
		s, ok := e.Series(p.ID)
		require.True(t, ok)
		assert.Len(t, s, 8)
		assert.Equal(t, "06:00", s[0].Time)
		assert.Equal(t, "20:00", s[7].Time)
	}
}

func TestEngineSelectKnownAndUnknown(t *testing.T) {
	n := &recordingNotifier{}
	e := newTestEngine(t, DefaultConfig(), Fixed(0.5), DefaultPlots(), WithNotifier(n))

	assert.True(t, e.Select("plot4"))
	assert.Equal(t, "plot4", e.Selected())

	assert.False(t, e.Select("plot42"))
	assert.Equal(t, "plot4", e.Selected())

	require.Len(t, n.events, 2)
	assert.Equal(t, messages.EventSelect, n.events[0].Kind)
	assert.True(t, n.events[0].Applied)
	assert.False(t, n.events[1].Applied)
}

func TestEngineTickAppendsThenFreezesAtEndOfDay(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), Fixed(0.5), DefaultPlots())

	rep := e.Tick()
	assert.Len(t, rep.Appended, 5)
	assert.Empty(t, rep.Frozen)
	for _, sd := range rep.Appended {
		assert.Equal(t, "22:00", sd.Time)
		assert.Equal(t, 22, sd.Hour)
	}

	s, _ := e.Series("plot1")
	require.Len(t, s, 8)
	assert.Equal(t, "08:00", s[0].Time, "oldest sample evicted")
	assert.Equal(t, "22:00", s[7].Time)

	rep = e.Tick()
	assert.Empty(t, rep.Appended)
	assert.Len(t, rep.Frozen, 5)
	again, _ := e.Series("plot1")
	assert.Equal(t, s, again, "frozen series unchanged")
}

func TestEngineTickUsesLiveReadingAndKeepsHistory(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), Fixed(0.5), DefaultPlots())
	before, _ := e.Series("plot1")

	e.ApplyRain() // plot1: 28 → 45.5
	afterRain, _ := e.Series("plot1")
	assert.Equal(t, before, afterRain, "events never rewrite history")

	e.Tick()
	s, _ := e.Series("plot1")
	assert.InDelta(t, 45.5, s[7].Moisture, 1e-9)
	assert.Equal(t, before[1:], s[:7])
}

func TestEngineWindowNeverExceedsCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LastHour = 10_000
	e := newTestEngine(t, cfg, NewSeededSource(9), DefaultPlots())

	for i := 0; i < 100; i++ {
		e.Tick()
		for _, p := range e.Plots() {
			s, _ := e.Series(p.ID)
			require.LessOrEqual(t, len(s), cfg.WindowSize)
		}
	}
}

func TestEngineOperationsEmitEvents(t *testing.T) {
	n := &recordingNotifier{}
	e := newTestEngine(t, DefaultConfig(), Fixed(0.2), DefaultPlots(), WithNotifier(n))

	e.ApplyRain()
	assert.True(t, e.IrrigateSelected())
	assert.False(t, e.ApplyIrrigation("ghost"))
	e.ResetAll()
	e.Tick()

	require.Len(t, n.events, 4)
	kinds := []messages.EventKind{n.events[0].Kind, n.events[1].Kind, n.events[2].Kind, n.events[3].Kind}
	assert.Equal(t, []messages.EventKind{messages.EventRain, messages.EventIrrigation, messages.EventIrrigation, messages.EventReset}, kinds)
	assert.Equal(t, "plot1", n.events[1].PlotID)
	assert.False(t, n.events[2].Applied)
	assert.Len(t, n.events[3].Plots, 5)
	assert.NotEmpty(t, n.events[0].ID)
	assert.Equal(t, 1, n.tickCount())
}

func TestEngineIrrigationLeavesOtherPlotsUntouched(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), NewSeededSource(11), DefaultPlots())
	before := e.Plots()

	require.True(t, e.ApplyIrrigation("plot2"))
	after := e.Plots()
	for i := range before {
		if before[i].ID != "plot2" {
			assert.Equal(t, before[i], after[i])
		}
	}
}

func TestEngineSnapshotIsDefensiveCopy(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	e := newTestEngine(t, DefaultConfig(), Fixed(0.5), DefaultPlots(), WithClock(func() time.Time { return now }))

	snap := e.Snapshot()
	assert.Equal(t, "plot1", snap.Selected)
	assert.Len(t, snap.Series, 8)
	assert.Equal(t, now, snap.UpdatedAt)

	snap.Plots[0].Moisture = 999
	snap.Series[0].Moisture = 999
	fresh := e.Snapshot()
	assert.Equal(t, 28.0, fresh.Plots[0].Moisture)
	assert.InDelta(t, 28.0, fresh.Series[0].Moisture, 1e-9)
}

func TestEngineEmptyPlotListIsStable(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), Fixed(0.5), nil)

	assert.Equal(t, "", e.Selected())
	e.ApplyRain()
	e.ResetAll()
	assert.False(t, e.IrrigateSelected())
	assert.False(t, e.Select("plot1"))
	rep := e.Tick()
	assert.Empty(t, rep.Appended)

	snap := e.Snapshot()
	assert.Empty(t, snap.Plots)
	assert.NotNil(t, snap.Series)
}

func TestEngineRejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 0
	_, err := NewEngine(cfg, DefaultPlots(), WithLogger(quiet))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewEngine(DefaultConfig(), []entities.Plot{{ID: "a"}, {ID: "a"}}, WithLogger(quiet))
	require.ErrorIs(t, err, ErrDuplicatePlot)
}

func TestEngineStartAndClose(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = 5 * time.Millisecond
	cfg.LastHour = 1 << 20
	n := &recordingNotifier{}
	e := newTestEngine(t, cfg, NewSeededSource(2), DefaultPlots(), WithNotifier(n))

	e.Start(context.Background())
	e.Start(context.Background()) // no second loop
	require.Eventually(t, func() bool { return n.tickCount() >= 3 }, time.Second, 5*time.Millisecond)

	e.Close()
	stopped := n.tickCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, n.tickCount(), "no tick after Close")
	e.Close()
}

func TestEngineRestartsAfterContextCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = 2 * time.Millisecond
	cfg.LastHour = 1 << 20
	n := &recordingNotifier{}
	e := newTestEngine(t, cfg, NewSeededSource(4), DefaultPlots(), WithNotifier(n))

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)
	require.Eventually(t, func() bool { return n.tickCount() >= 1 }, time.Second, time.Millisecond)
	cancel()
	require.Eventually(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return !e.sched.Running()
	}, time.Second, time.Millisecond)

	before := n.tickCount()
	e.Start(context.Background())
	require.Eventually(t, func() bool { return n.tickCount() >= before+2 }, time.Second, time.Millisecond)
}

func TestEngineEventsArriveInApplyOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoistureMax = 1e9 // every irrigation strictly raises plot1
	n := &recordingNotifier{}
	e := newTestEngine(t, cfg, Fixed(0.5), DefaultPlots(), WithNotifier(n))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				e.ApplyIrrigation("plot1")
			}
		}()
	}
	wg.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	require.Len(t, n.events, 200)
	prev := 0.0
	for i, evt := range n.events {
		m := evt.Plots[0].Moisture
		require.Greater(t, m, prev, "event %d delivered out of order", i)
		prev = m
	}
}
