package core

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// snapshotEntryInterval and snapshotTimeInterval implement §4.F's periodic
// snapshot cadence: every 1,000 entries, or whenever 10ms have elapsed.
const (
	snapshotEntryInterval = 1000
	snapshotTimeInterval  = 10 * time.Millisecond
)

type hlinkKey struct {
	dev, ino uint64
}

// Count drives the walker while accumulating Statistics (§4.F).
type Count struct {
	opts        Options
	rootAbs     string
	rootPathLen int
	filter      *Filter
	logger      *zap.Logger
	extended    atomic.Bool

	lc *lifecycle[*Statistics]
}

// NewCount constructs a Count driver. Path validation and filter compilation
// happen synchronously here (§7 class 1: configuration errors).
func NewCount(opts Options) (*Count, error) {
	// follow_links is a Scandir-only option (spec.md: a symlink to a
	// directory is counted as a symlink unless follow_links=true on
	// Scandir); Count never follows one into a directory.
	opts.FollowLinks = false

	rootAbs, rootPathLen, filter, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	logger := createLogger(opts.LogLevel)

	c := &Count{
		opts:        opts,
		rootAbs:     rootAbs,
		rootPathLen: rootPathLen,
		filter:      filter,
		logger:      logger,
	}
	c.extended.Store(opts.Extended)
	c.lc = newLifecycle[*Statistics](logger, true, c.runWorker)
	return c, nil
}

// Extended toggles whether stat-based fields (size, usage, hardlinks,
// devices, pipes) are collected on the next run (§6: "Count exposes
// extended(bool)").
func (c *Count) Extended(enabled bool) {
	c.extended.Store(enabled)
}

func (c *Count) Options() Options { return c.opts }

func (c *Count) Start() error    { return c.lc.start() }
func (c *Count) Stop() error     { return c.lc.stop() }
func (c *Count) Join() error     { return c.lc.join() }
func (c *Count) Busy() bool      { return c.lc.busy() }
func (c *Count) Finished() bool  { return c.lc.finished() }
func (c *Count) Duration() float64 { return c.lc.duration() }
func (c *Count) Clear() error   { return c.lc.clear() }
func (c *Count) Enter() error   { return c.lc.enter() }
func (c *Count) Exit() error    { return c.lc.exit() }

// Results returns the snapshot history the worker has pushed so far.
func (c *Count) Results(onlyNew bool) []*Statistics     { return c.lc.results(onlyNew) }
func (c *Count) HasResults(onlyNew bool) bool           { return c.lc.hasResults(onlyNew) }
func (c *Count) ResultsCnt(onlyNew bool) int            { return c.lc.resultsCnt(onlyNew) }
func (c *Count) HasErrors() bool                        { return len(c.Statistics().Errors) > 0 }

// Err folds the accumulated traversal error strings into a single
// multierr-joined error, or nil if none were recorded.
func (c *Count) Err() error { return combineErrors(c.Statistics().Errors) }

// Collect starts (if idle), joins, and returns the final Statistics.
func (c *Count) Collect() *Statistics {
	snaps := c.lc.collect()
	return latestStatistics(snaps)
}

// Statistics returns the most recently drained snapshot (the "current"
// aggregate), without forcing a join.
func (c *Count) Statistics() *Statistics {
	snaps := c.lc.results(false)
	return latestStatistics(snaps)
}

func latestStatistics(snaps []*Statistics) *Statistics {
	if len(snaps) == 0 {
		return &Statistics{}
	}
	return snaps[len(snaps)-1]
}

func (c *Count) runWorker(stop *atomic.Bool, emit func(*Statistics), elapsed func() time.Duration) {
	var mu sync.Mutex
	stats := &Statistics{}
	hardlinks := xsync.NewMapOf[hlinkKey, struct{}]()
	var fileCount atomic.Int64
	var entriesSeen atomic.Int64
	var lastSnapshot atomic.Int64 // unix nanos
	lastSnapshot.Store(time.Now().UnixNano())

	combinedCancel := &atomic.Bool{}

	snapshot := func() {
		mu.Lock()
		snap := stats.clone()
		mu.Unlock()
		snap.Duration = elapsed().Seconds()
		emit(snap)
		lastSnapshot.Store(time.Now().UnixNano())
	}

	maybeSnapshot := func() {
		n := entriesSeen.Add(1)
		elapsedSinceSnap := time.Duration(time.Now().UnixNano() - lastSnapshot.Load())
		if n%snapshotEntryInterval == 0 || elapsedSinceSnap >= snapshotTimeInterval {
			snapshot()
		}
	}

	cb := func(batch *DirBatch) {
		if stop.Load() {
			combinedCancel.Store(true)
			return
		}
		if batch.ReadErr != nil {
			mu.Lock()
			stats.Errors = append(stats.Errors, batch.ReadErr.Error())
			mu.Unlock()
			return
		}

		extended := c.extended.Load()
		applyChildFilter(batch.RelDir, batch.Children, c.filter)
		for _, child := range batch.Children {
			if stop.Load() {
				combinedCancel.Store(true)
				return
			}
			if !child.Keep {
				continue
			}

			switch child.Kind {
			case KindDir:
				mu.Lock()
				stats.Dirs++
				mu.Unlock()
			case KindSymlink:
				mu.Lock()
				stats.Slinks++
				mu.Unlock()
			case KindFile:
				mu.Lock()
				stats.Files++
				mu.Unlock()
			}

			if extended {
				abs := filepath.Join(batch.ParentAbs, child.Name)
				meta, err := extractMetadata(abs, nil)
				if err != nil {
					mu.Lock()
					stats.Errors = append(stats.Errors, err.Error())
					mu.Unlock()
				} else {
					child.Meta = meta
					if meta.Nlink > 1 {
						key := hlinkKey{dev: meta.Dev, ino: meta.Ino}
						if _, loaded := hardlinks.LoadOrStore(key, struct{}{}); loaded {
							mu.Lock()
							stats.Hlinks++
							mu.Unlock()
						}
					}
					mu.Lock()
					stats.Size += uint64(meta.Size)
					stats.Usage += meta.blockUsage()
					if meta.isDevice() {
						stats.Devices++
					}
					if meta.isPipe() {
						stats.Pipes++
					}
					mu.Unlock()
				}
			}

			if child.Kind == KindFile {
				n := fileCount.Add(1)
				if c.opts.MaxFileCount > 0 && n >= int64(c.opts.MaxFileCount) {
					combinedCancel.Store(true)
				}
			}

			maybeSnapshot()
		}
	}

	wopts := c.opts.walkerOptions()
	wopts.Cancel = combinedCancel
	runWalk(c.rootAbs, wopts, cb)
	snapshot()

	c.logger.Debug("count run finished",
		zap.Int32("dirs", stats.Dirs),
		zap.Int32("files", stats.Files),
		zap.String("size", humanize.Bytes(stats.Size)),
		zap.String("usage", humanize.Bytes(stats.Usage)),
	)
}
