package core

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Walk drives the walker to produce one (relative_dir, TOC) message per
// directory whose filtered child list is non-empty (§4.G).
type Walk struct {
	opts        Options
	rootAbs     string
	rootPathLen int
	filter      *Filter
	logger      *zap.Logger

	lc        *lifecycle[TocEntry]
	hasErrors atomic.Bool
}

// NewWalk constructs a Walk driver.
func NewWalk(opts Options) (*Walk, error) {
	// follow_links is a Scandir-only option; Walk always reports a symlink
	// to a directory as a symlink, never descends into it as one.
	opts.FollowLinks = false

	rootAbs, rootPathLen, filter, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	logger := createLogger(opts.LogLevel)

	w := &Walk{
		opts:        opts,
		rootAbs:     rootAbs,
		rootPathLen: rootPathLen,
		filter:      filter,
		logger:      logger,
	}
	w.lc = newLifecycle[TocEntry](logger, opts.Store, w.runWorker)
	return w, nil
}

func (w *Walk) Options() Options { return w.opts }

func (w *Walk) Start() error      { return w.lc.start() }
func (w *Walk) Stop() error       { return w.lc.stop() }
func (w *Walk) Join() error       { return w.lc.join() }
func (w *Walk) Busy() bool        { return w.lc.busy() }
func (w *Walk) Finished() bool    { return w.lc.finished() }
func (w *Walk) Duration() float64 { return w.lc.duration() }
func (w *Walk) Clear() error {
	w.hasErrors.Store(false)
	return w.lc.clear()
}
func (w *Walk) Enter() error { return w.lc.enter() }
func (w *Walk) Exit() error  { return w.lc.exit() }

func (w *Walk) Results(onlyNew bool) []TocEntry { return w.lc.results(onlyNew) }
func (w *Walk) HasResults(onlyNew bool) bool    { return w.lc.hasResults(onlyNew) }
func (w *Walk) ResultsCnt(onlyNew bool) int     { return w.lc.resultsCnt(onlyNew) }

// HasErrors returns the recorded flag directly. §9 item 1: one original
// implementation of this method returned `!self.has_errors`, a typo this
// port does not replicate.
func (w *Walk) HasErrors() bool { return w.hasErrors.Load() }

// Err folds every directory's TOC.Errors into a single multierr-joined error.
func (w *Walk) Err() error { return combineErrors(w.Statistics().Errors) }

// Statistics derives lightweight per-kind counts from the accumulated TOCs.
// Walk has no size/usage/hardlink accounting of its own; this is a
// convenience the original source exposes alongside results_cnt (§6).
func (w *Walk) Statistics() *Statistics {
	entries := w.lc.results(false)
	stats := &Statistics{Duration: w.Duration()}
	for _, e := range entries {
		stats.Dirs += int32(len(e.Toc.Dirs))
		stats.Files += int32(len(e.Toc.Files))
		stats.Slinks += int32(len(e.Toc.Symlinks))
		stats.Errors = append(stats.Errors, e.Toc.Errors...)
	}
	return stats
}

// Collect implements §4.I's collect() plus §9 item 2's fix: when
// store=false, the flat TOC is folded from the drained batch (what
// results(true) or results(false) returns when store=false always drains),
// never read back out of an accumulator that, with store=false, is never
// populated in the first place.
func (w *Walk) Collect() *TOC {
	if !w.lc.finished() {
		if !w.lc.busy() {
			_ = w.lc.start()
		}
		_ = w.lc.join()
	}
	entries := w.lc.results(false)
	folded := &TOC{}
	for _, e := range entries {
		folded.extend(e.RelDir, &e.Toc)
	}
	return folded
}

func (w *Walk) runWorker(stop *atomic.Bool, emit func(TocEntry), _ func() time.Duration) {
	cancel := &atomic.Bool{}

	cb := func(batch *DirBatch) {
		if stop.Load() {
			cancel.Store(true)
			return
		}
		toc := TOC{}
		if batch.ReadErr != nil {
			toc.Errors = append(toc.Errors, batch.ReadErr.Error())
			emit(TocEntry{RelDir: batch.RelDir, Toc: toc})
			w.hasErrors.Store(true)
			return
		}

		applyChildFilter(batch.RelDir, batch.Children, w.filter)
		for _, child := range batch.Children {
			if stop.Load() {
				cancel.Store(true)
				return
			}
			if !child.Keep {
				continue
			}
			switch child.Kind {
			case KindSymlink:
				toc.Symlinks = append(toc.Symlinks, child.Name)
			case KindDir:
				toc.Dirs = append(toc.Dirs, child.Name)
			case KindFile:
				toc.Files = append(toc.Files, child.Name)
			default:
				toc.Other = append(toc.Other, child.Name)
			}
		}

		if !toc.IsEmpty() {
			if len(toc.Errors) > 0 {
				w.hasErrors.Store(true)
			}
			emit(TocEntry{RelDir: batch.RelDir, Toc: toc})
		}
	}

	wopts := w.opts.walkerOptions()
	wopts.Cancel = cancel
	runWalk(w.rootAbs, wopts, cb)
}
