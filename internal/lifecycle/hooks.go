// Package lifecycle runs cleanup callbacks when the process is asked to exit.
// It knows nothing about the shell that delivers the exit request; every exit
// path ends in Hooks.Shutdown.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type hook struct {
	name string
	fn   func()
}

// Hooks is an ordered set of shutdown callbacks. Shutdown runs them at most
// once; callbacks registered after shutdown has started are never run.
type Hooks struct {
	mu       sync.Mutex
	hooks    []hook
	once     sync.Once
	onRun    func(name string)
	shutdown bool
}

// NewHooks creates an empty hook set.
func NewHooks() *Hooks {
	return &Hooks{}
}

// OnShutdown registers fn to run on shutdown under the given name.
// It reports false if shutdown has already begun.
func (h *Hooks) OnShutdown(name string, fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shutdown {
		return false
	}
	h.hooks = append(h.hooks, hook{name: name, fn: fn})
	return true
}

// Trace sets a function called with each hook's name just before it runs.
func (h *Hooks) Trace(fn func(name string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRun = fn
}

// Shutdown runs every registered hook synchronously in registration order.
// Concurrent and repeated calls block until the first call has finished and
// then return without running anything again.
func (h *Hooks) Shutdown() {
	h.once.Do(func() {
		h.mu.Lock()
		h.shutdown = true
		hooks := h.hooks
		trace := h.onRun
		h.mu.Unlock()

		for _, hk := range hooks {
			if trace != nil {
				trace(hk.name)
			}
			hk.fn()
		}
	})
}

// NotifyOnSignal runs Shutdown when the process receives one of signals
// (SIGINT and SIGTERM when none are given). The returned context is canceled
// after the hooks have finished, or when parent is done. stop releases the
// signal handler without running the hooks; hooks must not call it.
func (h *Hooks) NotifyOnSignal(parent context.Context, signals ...os.Signal) (ctx context.Context, stop func()) {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			h.Shutdown()
			cancel()
		case <-ctx.Done():
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}
