package viewmodels

import (
	"context"
	"sync"
	"time"
)

// PollHandle owns a running poll. Stop must be called when the view goes away.
type PollHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// startPolling calls tick every interval on its own goroutine. A tick runs to
// completion before the next one is taken, so ticks never overlap.
func startPolling(interval time.Duration, tick func(ctx context.Context)) *PollHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &PollHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick(ctx)
			}
		}
	}()

	return h
}

// Stop cancels the poll, including an in-flight tick, and waits for it to exit.
// It is safe to call more than once.
func (h *PollHandle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the poll has exited
func (h *PollHandle) Done() <-chan struct{} {
	return h.done
}

// Stopped reports whether the poll has exited
func (h *PollHandle) Stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
