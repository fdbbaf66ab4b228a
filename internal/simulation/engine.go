package simulation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

// Notifier receives engine output after the state change is visible.
// Calls are serialized and arrive in the order the changes were applied.
// Implementations must not call back into the engine synchronously.
type Notifier interface {
	NotifyTick(rep TickReport)
	NotifyEvent(evt messages.PlotEvent)
}

// TickReport describes one periodic step.
type TickReport struct {
	Appended []messages.SampleData
	Frozen   []string // plots whose series did not advance (end of day)
}

// Snapshot is an immutable copy of everything a view needs.
type Snapshot struct {
	Plots     []entities.Plot   `json:"plots"`
	Selected  string            `json:"selected"`
	Series    []entities.Sample `json:"series"` // series of the selected plot
	UpdatedAt time.Time         `json:"updated_at"`
}

type Option func(*Engine)

func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifiers = append(e.notifiers, n)
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine owns the plot registry, every plot's series and the selection.
// All operations are serialized by one mutex and complete synchronously;
// readers only ever get copies.
type Engine struct {
	mu        sync.Mutex
	emitMu    sync.Mutex // serializes notifier delivery
	cfg       Config
	source    Source
	registry  *Registry
	generator *Generator
	series    map[string]*TimeSeries
	selected  string
	updatedAt time.Time

	notifiers []Notifier
	logger    *log.Logger
	now       func() time.Time
	sched     *Scheduler
}

// NewEngine validates cfg, seeds every plot's window and selects the first plot.
func NewEngine(cfg Config, plots []entities.Plot, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if e.source == nil {
		e.source = NewSeededSource(0)
	}

	reg, err := NewRegistry(cfg, e.source, plots)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.registry = reg
	e.generator = NewGenerator(cfg, e.source)
	e.series = make(map[string]*TimeSeries, reg.Len())
	for _, p := range reg.Plots() {
		e.series[p.ID] = e.generator.Seed(p)
	}
	if reg.Len() > 0 {
		e.selected = reg.plots[0].ID
	} else {
		e.logger.Printf("engine: started with an empty plot list")
	}
	e.updatedAt = e.now()
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// ===== operations =====

// Select changes the selected plot. Unknown ids keep the current selection.
func (e *Engine) Select(id string) bool {
	e.mu.Lock()
	ok := e.registry.Has(id)
	if ok {
		e.selected = id
	}
	evt := e.eventLocked(messages.EventSelect, id, ok)
	e.handOffLocked()

	e.emit(evt)
	return ok
}

// ApplyRain raises moisture and lowers temperature on every plot.
func (e *Engine) ApplyRain() {
	e.mu.Lock()
	e.registry.ApplyRain()
	evt := e.eventLocked(messages.EventRain, "", e.registry.Len() > 0)
	e.handOffLocked()

	e.logger.Printf("engine: rain applied to %d plots", len(evt.Plots))
	e.emit(evt)
}

// ApplyIrrigation raises moisture on the plot with the given id only.
// An unknown id is a no-op and returns false.
func (e *Engine) ApplyIrrigation(id string) bool {
	e.mu.Lock()
	ok := e.registry.ApplyIrrigation(id)
	evt := e.eventLocked(messages.EventIrrigation, id, ok)
	e.handOffLocked()

	if ok {
		e.logger.Printf("engine: irrigation applied to %s", id)
	} else {
		e.logger.Printf("engine: irrigation skipped, unknown plot %q", id)
	}
	e.emit(evt)
	return ok
}

// IrrigateSelected irrigates the currently selected plot.
func (e *Engine) IrrigateSelected() bool {
	return e.ApplyIrrigation(e.Selected())
}

// ResetAll overwrites every plot's readings with fresh random values.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	e.registry.ResetAll()
	evt := e.eventLocked(messages.EventReset, "", e.registry.Len() > 0)
	e.handOffLocked()

	e.logger.Printf("engine: readings reset for %d plots", len(evt.Plots))
	e.emit(evt)
}

// Tick appends one sample per plot, read against the live registry.
// Past samples are never touched.
func (e *Engine) Tick() TickReport {
	e.mu.Lock()
	now := e.now()
	var rep TickReport
	for _, p := range e.registry.plots {
		ts, ok := e.series[p.ID]
		if !ok || ts.Len() == 0 {
			continue
		}
		s, ok := e.generator.Next(p, ts)
		if !ok {
			rep.Frozen = append(rep.Frozen, p.ID)
			continue
		}
		ts.Append(s)
		hour, _ := s.Hour()
		rep.Appended = append(rep.Appended, messages.SampleData{
			PlotID:      p.ID,
			Crop:        p.Crop,
			Time:        s.Time,
			Hour:        hour,
			Moisture:    s.Moisture,
			Temperature: s.Temperature,
			Timestamp:   now,
		})
	}
	if len(rep.Appended) > 0 {
		e.updatedAt = now
	}
	e.handOffLocked()
	defer e.emitMu.Unlock()

	for _, n := range e.notifiers {
		n.NotifyTick(rep)
	}
	return rep
}

// ===== read accessors =====

func (e *Engine) Plots() []entities.Plot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Plots()
}

func (e *Engine) Plot(id string) (entities.Plot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Get(id)
}

// Series returns a copy of the plot's window.
func (e *Engine) Series(id string) ([]entities.Sample, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ts, ok := e.series[id]
	if !ok {
		return nil, false
	}
	return ts.Samples(), true
}

func (e *Engine) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		Plots:     e.registry.Plots(),
		Selected:  e.selected,
		Series:    []entities.Sample{},
		UpdatedAt: e.updatedAt,
	}
	if ts, ok := e.series[e.selected]; ok {
		snap.Series = ts.Samples()
	}
	return snap
}

// ===== lifecycle =====

// Start runs the periodic tick until ctx is done or Close is called.
// Calling Start on a running engine does nothing; after ctx is done the
// engine can be started again.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.sched != nil && e.sched.Running() {
		e.mu.Unlock()
		return
	}
	e.sched = NewScheduler(e, e.cfg.TickInterval, e.logger)
	e.sched.Start(ctx)
	e.mu.Unlock()
}

// Close stops the scheduler and waits for it; no tick runs after Close returns.
func (e *Engine) Close() {
	e.mu.Lock()
	s := e.sched
	e.sched = nil
	e.mu.Unlock()

	if s != nil {
		s.Stop()
	}
}

// ===== helpers =====

func (e *Engine) eventLocked(kind messages.EventKind, plotID string, applied bool) messages.PlotEvent {
	now := e.now()
	if applied {
		e.updatedAt = now
	}
	return messages.PlotEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		PlotID:    plotID,
		Applied:   applied,
		Plots:     e.registry.Plots(),
		Timestamp: now,
	}
}

// handOffLocked swaps the state lock for the delivery lock, so notifiers
// see events and ticks in the order the state changed.
func (e *Engine) handOffLocked() {
	e.emitMu.Lock()
	e.mu.Unlock()
}

// emit delivers evt and releases the lock taken by handOffLocked.
// notifiers is fixed by NewEngine and read without e.mu.
func (e *Engine) emit(evt messages.PlotEvent) {
	defer e.emitMu.Unlock()
	for _, n := range e.notifiers {
		n.NotifyEvent(evt)
	}
}
