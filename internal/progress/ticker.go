package progress

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the time between simulated steps.
const DefaultInterval = 2 * time.Second

// Ticker drives a Simulator from a time.Ticker in its own goroutine. onStep
// is called with the new step each time the simulator advances.
type Ticker struct {
	sim      *Simulator
	interval time.Duration
	onStep   func(step int)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a Ticker. A non-positive interval uses DefaultInterval.
// onStep may be nil.
func NewTicker(sim *Simulator, interval time.Duration, onStep func(step int)) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{sim: sim, interval: interval, onStep: onStep}
}

// Start begins ticking until Stop is called or ctx is done. Starting a
// running Ticker restarts it.
func (t *Ticker) Start(ctx context.Context) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go t.run(ctx, done)
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if t.sim.Tick() && t.onStep != nil {
				t.onStep(t.sim.Step())
			}
		}
	}
}

// Stop halts the goroutine and waits for it to exit. It does not touch the
// simulator's state.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
