package core

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// RunFunc is a driver's worker body: it runs on the lifecycle's background
// goroutine, polls stop cooperatively, and emits items via emit. elapsed
// reports time since the current run's start() call, for drivers (Count)
// that need it for periodic snapshots (§4.F).
type RunFunc[T any] func(stop *atomic.Bool, emit func(T), elapsed func() time.Duration)

// lifecycle implements the shared start/stop/join/busy/finished/duration/
// results/collect/clear/enter-exit state machine of §4.I, generic over the
// driver-specific message type T. All three drivers (Count, Walk, Scandir)
// embed one of these instead of re-implementing the same logic three times —
// the original source (original_source/scandir/src/{count,walk,scandir}.rs)
// triplicates this method-for-method; this is the single generalization of
// that pattern.
type lifecycle[T any] struct {
	mu      sync.Mutex
	started bool
	done    chan struct{}
	pending []T
	accum   []T
	// store mirrors Options.Store (§3 invariant 7): when false, results()
	// never retains drained items in accum — each call drains and discards.
	store bool

	alive    atomic.Bool
	stopFlag atomic.Bool

	durMu    sync.Mutex
	duration float64

	logger *zap.Logger
	run    RunFunc[T]

	// accumulate controls how drained items fold into accum. Defaults to
	// append, which all three drivers use; Count keeps every snapshot and
	// reads the last one.
	accumulate func(accum []T, drained []T) []T
}

func newLifecycle[T any](logger *zap.Logger, store bool, run RunFunc[T]) *lifecycle[T] {
	return &lifecycle[T]{
		logger:     logger,
		run:        run,
		store:      store,
		accumulate: func(accum []T, drained []T) []T { return append(accum, drained...) },
	}
}

func (l *lifecycle[T]) start() error {
	l.mu.Lock()
	if l.started && l.alive.Load() {
		l.mu.Unlock()
		return ErrThreadAlreadyRunning
	}
	l.started = true
	l.pending = nil
	l.accum = nil
	l.done = make(chan struct{})
	l.mu.Unlock()

	l.stopFlag.Store(false)
	l.alive.Store(true)
	l.setDuration(0)

	startedAt := time.Now()
	l.logger.Debug("starting traversal")

	go func() {
		defer func() {
			l.setDuration(time.Since(startedAt).Seconds())
			l.alive.Store(false)
			close(l.done)
		}()

		emit := func(item T) {
			l.mu.Lock()
			l.pending = append(l.pending, item)
			l.mu.Unlock()
		}
		elapsed := func() time.Duration { return time.Since(startedAt) }
		l.run(&l.stopFlag, emit, elapsed)
	}()
	return nil
}

func (l *lifecycle[T]) join() error {
	l.mu.Lock()
	started := l.started
	done := l.done
	l.mu.Unlock()
	if !started {
		return ErrThreadNotRunning
	}
	<-done
	return nil
}

func (l *lifecycle[T]) stop() error {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return ErrThreadNotRunning
	}
	l.stopFlag.Store(true)
	return l.join()
}

func (l *lifecycle[T]) busy() bool {
	return l.alive.Load()
}

func (l *lifecycle[T]) finished() bool {
	return l.getDuration() > 0
}

func (l *lifecycle[T]) duration() float64 {
	return l.getDuration()
}

func (l *lifecycle[T]) getDuration() float64 {
	l.durMu.Lock()
	defer l.durMu.Unlock()
	return l.duration
}

func (l *lifecycle[T]) setDuration(d float64) {
	l.durMu.Lock()
	l.duration = d
	l.durMu.Unlock()
}

// results drains pending items into the accumulator (§4.I) and returns
// either the newly-drained slice (onlyNew=true) or a copy of the full
// accumulator.
func (l *lifecycle[T]) results(onlyNew bool) []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.pending
	l.pending = nil

	if !l.store {
		// §3 invariant 7: store=false never retains — every call drains and
		// discards, so onlyNew and "everything" coincide.
		return drained
	}

	l.accum = l.accumulate(l.accum, drained)
	if onlyNew {
		return drained
	}
	out := make([]T, len(l.accum))
	copy(out, l.accum)
	return out
}

func (l *lifecycle[T]) hasResults(onlyNew bool) bool {
	return len(l.results(onlyNew)) > 0
}

func (l *lifecycle[T]) resultsCnt(onlyNew bool) int {
	return len(l.results(onlyNew))
}

// collect implements §4.I's convenience: start if idle, join, then return
// everything accumulated.
func (l *lifecycle[T]) collect() []T {
	if !l.finished() {
		if !l.busy() {
			_ = l.start()
		}
		_ = l.join()
	}
	return l.results(false)
}

func (l *lifecycle[T]) clear() error {
	if l.busy() {
		return ErrBusy
	}
	l.mu.Lock()
	l.pending = nil
	l.accum = nil
	l.started = false
	l.done = nil
	l.mu.Unlock()
	l.setDuration(0)
	return nil
}

// enter/exit model the scoped-acquisition protocol of §6/§9: enter is
// start(), exit is stop()+join() with InvalidInput-kind failures swallowed.
func (l *lifecycle[T]) enter() error {
	return l.start()
}

func (l *lifecycle[T]) exit() error {
	err := l.stop()
	if err != nil && isInvalidInput(err) {
		return nil
	}
	return err
}
