package lifecycle

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHooks_Shutdown(t *testing.T) {
	t.Run("runs hooks in registration order", func(t *testing.T) {
		h := NewHooks()
		var got []string
		h.OnShutdown("first", func() { got = append(got, "first") })
		h.OnShutdown("second", func() { got = append(got, "second") })

		h.Shutdown()

		if !slices.Equal(got, []string{"first", "second"}) {
			t.Errorf("hooks ran as %v, want [first second]", got)
		}
	})

	t.Run("runs hooks only once", func(t *testing.T) {
		h := NewHooks()
		calls := 0
		h.OnShutdown("count", func() { calls++ })

		h.Shutdown()
		h.Shutdown()

		if calls != 1 {
			t.Errorf("hook ran %d times, want 1", calls)
		}
	})

	t.Run("concurrent callers wait for completion", func(t *testing.T) {
		h := NewHooks()
		release := make(chan struct{})
		finished := false
		h.OnShutdown("slow", func() {
			<-release
			finished = true
		})

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.Shutdown()
				if !finished {
					t.Error("Shutdown() returned before hook finished")
				}
			}()
		}
		close(release)
		wg.Wait()
	})

	t.Run("rejects registration after shutdown", func(t *testing.T) {
		h := NewHooks()
		h.Shutdown()

		ran := false
		if h.OnShutdown("late", func() { ran = true }) {
			t.Error("OnShutdown() = true after shutdown, want false")
		}
		h.Shutdown()
		if ran {
			t.Error("late hook ran")
		}
	})

	t.Run("traces hook names", func(t *testing.T) {
		h := NewHooks()
		var traced []string
		h.Trace(func(name string) { traced = append(traced, name) })
		h.OnShutdown("clear-staging", func() {})

		h.Shutdown()

		if !slices.Equal(traced, []string{"clear-staging"}) {
			t.Errorf("traced = %v, want [clear-staging]", traced)
		}
	})

}

func TestHooks_NotifyOnSignal_Stop(t *testing.T) {
	h := NewHooks()
	ran := false
	h.OnShutdown("hook", func() { ran = true })

	ctx, stop := h.NotifyOnSignal(context.Background())
	stop()
	stop()

	if ctx.Err() == nil {
		t.Error("context not canceled after stop")
	}
	if ran {
		t.Error("stop ran the shutdown hooks")
	}
}

func TestHooks_NotifyOnSignal_ParentCanceled(t *testing.T) {
	h := NewHooks()
	parent, cancel := context.WithCancel(context.Background())

	ctx, stop := h.NotifyOnSignal(parent)
	defer stop()
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled with parent")
	}
}
