package exporter

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

// GuardConfig tunes the breaker and retry wrapped around a sink.
type GuardConfig struct {
	Fails      int           // consecutive failures before opening
	OpenFor    time.Duration // how long the breaker stays open
	Interval   time.Duration // closed-state counter reset, 0 = never
	Retries    uint64        // extra attempts per write, inside one breaker call
	RetryDelay time.Duration
}

func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Fails:      3,
		OpenFor:    30 * time.Second,
		Interval:   time.Minute,
		Retries:    2,
		RetryDelay: 200 * time.Millisecond,
	}
}

// Guarded wraps a Sink with a circuit breaker and a bounded retry.
// While the breaker is open writes fail fast with gobreaker.ErrOpenState.
type Guarded struct {
	sink Sink
	cb   *gobreaker.CircuitBreaker
	cfg  GuardConfig
}

var _ Sink = (*Guarded)(nil)

func mkCB(name string, cfg GuardConfig) *gobreaker.CircuitBreaker {
	fails := cfg.Fails
	if fails < 1 {
		fails = 1
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: cfg.Interval,
		Timeout:  cfg.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(fails)
		},
	})
}

func Guard(s Sink, cfg GuardConfig) *Guarded {
	return &Guarded{sink: s, cb: mkCB(s.Name()+"-sink", cfg), cfg: cfg}
}

func (g *Guarded) Name() string { return g.sink.Name() }

// State reports the breaker state, mainly for readiness checks.
func (g *Guarded) State() gobreaker.State { return g.cb.State() }

func (g *Guarded) WriteSamples(ctx context.Context, samples []messages.SampleData) error {
	return g.run(ctx, func() error { return g.sink.WriteSamples(ctx, samples) })
}

func (g *Guarded) WriteEvent(ctx context.Context, evt messages.PlotEvent) error {
	return g.run(ctx, func() error { return g.sink.WriteEvent(ctx, evt) })
}

func (g *Guarded) run(ctx context.Context, op func() error) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		bo := backoff.NewExponentialBackOff()
		if g.cfg.RetryDelay > 0 {
			bo.InitialInterval = g.cfg.RetryDelay
		}
		return nil, backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, g.cfg.Retries), ctx))
	})
	return err
}
