package simulation

import (
	"context"
	"log"
	"sync"
	"time"
)

// Ticker is whatever the scheduler drives; the engine reads its live state
// on every call, so no baseline is captured ahead of time.
type Ticker interface {
	Tick() TickReport
}

// Scheduler fires Tick on a fixed period. Missed periods are not caught up.
type Scheduler struct {
	target   Ticker
	interval time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(target Ticker, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{target: target, interval: interval, logger: logger}
}

// Start launches the loop in a goroutine. A second Start is ignored.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.logger.Printf("scheduler: tick loop started (every %s)", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("scheduler: tick loop stopped")
			return
		case <-t.C:
			// select sceglie a caso se entrambi pronti
			if ctx.Err() != nil {
				s.logger.Printf("scheduler: tick loop stopped")
				return
			}
			rep := s.target.Tick()
			s.logger.Printf("scheduler: tick appended=%d frozen=%d", len(rep.Appended), len(rep.Frozen))
		}
	}
}

// Running reports whether the loop has been started and has not exited yet.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Stop cancels the loop and blocks until it has exited.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
