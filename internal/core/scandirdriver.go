package core

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Scandir drives the walker to emit one ScandirResult per filtered child,
// shaped by return_type (§4.H).
type Scandir struct {
	opts        Options
	rootAbs     string
	rootPathLen int
	filter      *Filter
	logger      *zap.Logger

	lc       *lifecycle[ScandirResult]
	errCount atomic.Int64
}

// NewScandir constructs a Scandir driver. ReturnWalk is not a valid return
// type for Scandir (§4.H only names Fast/Base/Ext) and is rejected as
// InvalidInput.
func NewScandir(opts Options) (*Scandir, error) {
	if opts.ReturnType == ReturnWalk {
		return nil, &InvalidInputError{Field: "return_type", Message: "Scandir does not support the Walk return type"}
	}
	rootAbs, rootPathLen, filter, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	logger := createLogger(opts.LogLevel)

	s := &Scandir{
		opts:        opts,
		rootAbs:     rootAbs,
		rootPathLen: rootPathLen,
		filter:      filter,
		logger:      logger,
	}
	s.lc = newLifecycle[ScandirResult](logger, opts.Store, s.runWorker)
	return s, nil
}

func (s *Scandir) Options() Options { return s.opts }

func (s *Scandir) Start() error      { return s.lc.start() }
func (s *Scandir) Stop() error       { return s.lc.stop() }
func (s *Scandir) Join() error       { return s.lc.join() }
func (s *Scandir) Busy() bool        { return s.lc.busy() }
func (s *Scandir) Finished() bool    { return s.lc.finished() }
func (s *Scandir) Duration() float64 { return s.lc.duration() }
func (s *Scandir) Clear() error {
	s.errCount.Store(0)
	return s.lc.clear()
}
func (s *Scandir) Enter() error { return s.lc.enter() }
func (s *Scandir) Exit() error  { return s.lc.exit() }

// Entries returns the ScandirResult items delivered so far.
func (s *Scandir) Entries(onlyNew bool) []ScandirResult {
	all := s.lc.results(onlyNew)
	out := make([]ScandirResult, 0, len(all))
	for _, r := range all {
		if r.Kind != ResultError {
			out = append(out, r)
		}
	}
	return out
}

func (s *Scandir) EntriesCnt(onlyNew bool) int { return len(s.Entries(onlyNew)) }
func (s *Scandir) HasEntries() bool            { return len(s.Entries(false)) > 0 }

// Errors returns the accumulated per-path traversal errors (§7 class 2:
// Scandir "separates them into errors" in addition to emitting
// ScandirResult::Error entries inline).
func (s *Scandir) Errors(onlyNew bool) []PathError {
	all := s.lc.results(onlyNew)
	out := make([]PathError, 0)
	for _, r := range all {
		if r.Kind == ResultError && r.Err != nil {
			out = append(out, *r.Err)
		}
	}
	return out
}

func (s *Scandir) ErrorsCnt() int    { return int(s.errCount.Load()) }
func (s *Scandir) HasErrors() bool   { return s.ErrorsCnt() > 0 }
func (s *Scandir) Results(onlyNew bool) []ScandirResult { return s.lc.results(onlyNew) }
func (s *Scandir) HasResults(onlyNew bool) bool         { return s.lc.hasResults(onlyNew) }
func (s *Scandir) ResultsCnt(onlyNew bool) int          { return s.lc.resultsCnt(onlyNew) }

// Err folds the accumulated per-path errors into a single multierr-joined error.
func (s *Scandir) Err() error {
	messages := make([]string, 0)
	for _, e := range s.Errors(false) {
		messages = append(messages, e.Message)
	}
	return combineErrors(messages)
}

// Statistics derives per-kind counts from accumulated entries, the same
// convenience Walk.Statistics offers (§6).
func (s *Scandir) Statistics() *Statistics {
	entries := s.lc.results(false)
	stats := &Statistics{Duration: s.Duration()}
	for _, r := range entries {
		switch {
		case r.Kind == ResultError:
			if r.Err != nil {
				stats.Errors = append(stats.Errors, r.Err.Message)
			}
		case r.Kind == ResultDirEntry && r.Entry != nil:
			tallyKind(stats, r.Entry.IsDir, r.Entry.IsSymlink)
		case r.Kind == ResultDirEntryExt && r.ExtEntry != nil:
			tallyKind(stats, r.ExtEntry.IsDir, r.ExtEntry.IsSymlink)
		}
	}
	return stats
}

func tallyKind(stats *Statistics, isDir, isSymlink bool) {
	switch {
	case isSymlink:
		stats.Slinks++
	case isDir:
		stats.Dirs++
	default:
		stats.Files++
	}
}

// Collect starts (if idle), joins, and returns the full ScandirResults pair.
func (s *Scandir) Collect() *ScandirResults {
	if !s.lc.finished() {
		if !s.lc.busy() {
			_ = s.lc.start()
		}
		_ = s.lc.join()
	}
	all := s.lc.results(false)
	out := &ScandirResults{}
	for _, r := range all {
		out.Entries = append(out.Entries, r)
		if r.Kind == ResultError && r.Err != nil {
			out.Errors = append(out.Errors, *r.Err)
		}
	}
	return out
}

func (s *Scandir) runWorker(stop *atomic.Bool, emit func(ScandirResult), _ func() time.Duration) {
	cancel := &atomic.Bool{}

	cb := func(batch *DirBatch) {
		if stop.Load() {
			cancel.Store(true)
			return
		}
		if batch.ReadErr != nil {
			s.errCount.Add(1)
			emit(ScandirResult{Kind: ResultError, Err: &PathError{Path: relPath(batch.ParentAbs, s.rootPathLen, batch.ParentAbs), Message: batch.ReadErr.Error()}})
			return
		}

		applyChildFilter(batch.RelDir, batch.Children, s.filter)
		for _, child := range batch.Children {
			if stop.Load() {
				cancel.Store(true)
				return
			}
			if !child.Keep {
				continue
			}

			abs := filepath.Join(batch.ParentAbs, child.Name)
			path := relPath(abs, s.rootPathLen, child.Name)

			meta, err := extractMetadata(abs, nil)
			if err != nil {
				s.errCount.Add(1)
				emit(ScandirResult{Kind: ResultError, Err: &PathError{Path: path, Message: err.Error()}})
				continue
			}

			isSymlink := child.Kind == KindSymlink
			isDir := child.Kind == KindDir
			isFile := child.Kind == KindFile

			entry := DirEntry{
				Path:      path,
				IsSymlink: isSymlink,
				IsDir:     isDir,
				IsFile:    isFile,
				STCtime:   unixSeconds(meta.Ctime),
				STMtime:   unixSeconds(meta.Mtime),
				STAtime:   unixSeconds(meta.Atime),
				STSize:    meta.Size,
			}
			if s.opts.ReturnType == ReturnFast {
				entry.STSize = 0
			}

			if s.opts.ReturnType == ReturnExt {
				emit(ScandirResult{Kind: ResultDirEntryExt, ExtEntry: &DirEntryExt{
					DirEntry:  entry,
					STMode:    meta.Mode,
					STIno:     meta.Ino,
					STDev:     meta.Dev,
					STNlink:   meta.Nlink,
					STBlksize: meta.Blksize,
					STBlocks:  meta.Blocks,
					STUid:     meta.Uid,
					STGid:     meta.Gid,
					STRdev:    meta.Rdev,
				}})
			} else {
				emit(ScandirResult{Kind: ResultDirEntry, Entry: &entry})
			}
		}
	}

	wopts := s.opts.walkerOptions()
	wopts.Cancel = cancel
	runWalk(s.rootAbs, wopts, cb)
}
