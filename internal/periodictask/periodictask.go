package periodictask

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// PeriodicTask manages a background task that runs at regular intervals
type PeriodicTask struct {
	interval time.Duration
	task     func()
	clock    clock.Clock
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// New creates a new PeriodicTask driven by the wall clock
func New(interval time.Duration, task func()) *PeriodicTask {
	return NewWithClock(interval, task, clock.New())
}

// NewWithClock creates a new PeriodicTask driven by the given clock
func NewWithClock(interval time.Duration, task func(), clk clock.Clock) *PeriodicTask {
	return &PeriodicTask{
		interval: interval,
		task:     task,
		clock:    clk,
	}
}

// Start begins executing the task at the specified interval.
// Calling Start on a running task is a no-op.
func (pt *PeriodicTask) Start() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	pt.cancel = cancel
	pt.running = true

	// Created before the goroutine starts so a mock clock sees the ticker immediately
	ticker := pt.clock.Ticker(pt.interval)

	pt.wg.Add(1)
	go func() {
		defer pt.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				pt.task()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the periodic task execution and waits for it to exit
func (pt *PeriodicTask) Stop() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.running {
		return
	}

	pt.cancel()
	pt.wg.Wait()
	pt.running = false
}

// IsRunning returns true if the task is currently running
func (pt *PeriodicTask) IsRunning() bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.running
}

// Interval returns the configured tick interval
func (pt *PeriodicTask) Interval() time.Duration {
	return pt.interval
}
