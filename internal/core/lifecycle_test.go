package core

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func countingRun(n int) RunFunc[int] {
	return func(stop *atomic.Bool, emit func(int), _ func() time.Duration) {
		for i := 0; i < n; i++ {
			if stop.Load() {
				return
			}
			emit(i)
		}
	}
}

func TestLifecycleStartJoinResults(t *testing.T) {
	lc := newLifecycle[int](zap.NewNop(), true, countingRun(5))

	if err := lc.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := lc.join(); err != nil {
		t.Fatalf("join: %v", err)
	}
	if !lc.finished() {
		t.Fatalf("expected finished() after join")
	}
	if lc.busy() {
		t.Fatalf("expected busy()==false after join")
	}

	got := lc.results(false)
	if len(got) != 5 {
		t.Fatalf("results = %d items, want 5", len(got))
	}
}

func TestLifecycleJoinWithoutStart(t *testing.T) {
	lc := newLifecycle[int](zap.NewNop(), true, countingRun(1))
	if err := lc.join(); err != ErrThreadNotRunning {
		t.Errorf("join() before start = %v, want ErrThreadNotRunning", err)
	}
}

func TestLifecycleStoreFalseNeverRetains(t *testing.T) {
	lc := newLifecycle[int](zap.NewNop(), false, countingRun(3))
	lc.collect()

	// §3 invariant 7: store=false drains-and-discards on every call, so a
	// second results() call on an already-drained run returns nothing new,
	// never stale leftovers from an accumulator that was never populated.
	again := lc.results(false)
	if len(again) != 0 {
		t.Errorf("results() after drain with store=false = %d, want 0", len(again))
	}
}

func TestLifecycleStoreTrueAccumulates(t *testing.T) {
	lc := newLifecycle[int](zap.NewNop(), true, countingRun(3))
	lc.collect()

	all := lc.results(false)
	if len(all) != 3 {
		t.Errorf("results(false) after collect = %d, want 3", len(all))
	}
	onlyNew := lc.results(true)
	if len(onlyNew) != 0 {
		t.Errorf("results(true) with nothing newly pending = %d, want 0", len(onlyNew))
	}
}

func TestLifecycleClearRejectsWhileBusy(t *testing.T) {
	blocker := make(chan struct{})
	lc := newLifecycle[int](zap.NewNop(), true, func(stop *atomic.Bool, emit func(int), _ func() time.Duration) {
		<-blocker
	})
	if err := lc.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		close(blocker)
		_ = lc.join()
	}()

	if err := lc.clear(); err != ErrBusy {
		t.Errorf("clear() while busy = %v, want ErrBusy", err)
	}
}

func TestLifecycleStopSetsStopFlag(t *testing.T) {
	lc := newLifecycle[int](zap.NewNop(), true, func(stop *atomic.Bool, emit func(int), _ func() time.Duration) {
		for i := 0; ; i++ {
			if stop.Load() {
				return
			}
			emit(i)
			time.Sleep(time.Millisecond)
		}
	})
	if err := lc.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := lc.stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if lc.busy() {
		t.Fatalf("expected busy()==false after stop()")
	}
}
