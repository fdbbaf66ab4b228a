package exporter

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/metrics"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

const defaultQueueSize = 256

type job struct {
	samples []messages.SampleData
	event   *messages.PlotEvent
}

// Dispatcher receives engine notifications and forwards them to the sinks
// from its own goroutine. Enqueue never blocks: when the queue is full the
// job is dropped and counted, so a slow sink cannot stall the engine.
type Dispatcher struct {
	queue   chan job
	sinks   []Sink
	metrics *metrics.Metrics
	logger  *log.Logger
	dropped atomic.Int64

	flushTimeout time.Duration
}

var _ simulation.Notifier = (*Dispatcher)(nil)

type DispatcherConfig struct {
	QueueSize    int
	FlushTimeout time.Duration
	Metrics      *metrics.Metrics // optional
	Logger       *log.Logger      // optional
}

func NewDispatcher(cfg DispatcherConfig, sinks ...Sink) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{
		queue:        make(chan job, cfg.QueueSize),
		sinks:        sinks,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		flushTimeout: cfg.FlushTimeout,
	}
}

func (d *Dispatcher) NotifyTick(rep simulation.TickReport) {
	if len(rep.Appended) == 0 {
		return
	}
	d.enqueue(job{samples: rep.Appended})
}

func (d *Dispatcher) NotifyEvent(evt messages.PlotEvent) {
	d.enqueue(job{event: &evt})
}

// Dropped returns how many jobs were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.queue <- j:
	default:
		n := d.dropped.Add(1)
		if d.metrics != nil {
			d.metrics.ExportDropped.Inc()
		}
		if n == 1 || n%100 == 0 {
			d.logger.Printf("exporter: queue full, dropped=%d", n)
		}
	}
}

// Run drains the queue until ctx is done, then flushes what is left
// with a short deadline.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.flush()
			return
		case j := <-d.queue:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), d.flushTimeout)
	defer cancel()
	for {
		select {
		case j := <-d.queue:
			d.deliver(ctx, j)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	for _, s := range d.sinks {
		var err error
		if j.event != nil {
			err = s.WriteEvent(ctx, *j.event)
		} else {
			err = s.WriteSamples(ctx, j.samples)
		}
		if err != nil {
			if d.metrics != nil {
				d.metrics.ExportFailures.WithLabelValues(s.Name()).Inc()
			}
			d.logger.Printf("exporter: sink %s: %v", s.Name(), err)
		}
	}
}
