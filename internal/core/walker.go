package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/karrick/godirwalk"
)

// DefaultConcurrentWalks is the default cap on concurrently processed
// directories, matching the teacher's DefaultConcurrentWalks in stride.go.
const DefaultConcurrentWalks = 100

// EntryKind classifies a directory child the way §3's TOC/DirEntry shapes
// require: dir/file/symlink/other.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindSymlink
	KindOther
)

// ChildEntry is one mutable slot in a directory's child list, passed to the
// per-read-dir callback of §4.C so a driver can filter it (Keep), attach
// metadata as client state (Meta), or record a per-entry lookup error (Err).
type ChildEntry struct {
	Name string
	Kind EntryKind
	Keep bool
	Meta *Metadata
	Err  error
}

// DirBatch is the unit the walker hands to its callback once per directory:
// the full (pre-filter) child list plus enough addressing information for
// the driver to compute relative paths (§4.A/§4.D).
type DirBatch struct {
	ParentAbs string
	RelDir    string
	Depth     int
	Children  []*ChildEntry
	ReadErr   error
}

// Callback is invoked once per directory, before descent, with the mutable
// children list (§4.C). Implementations must be safe to call concurrently
// across sibling directories — the walker never calls it twice for the same
// DirBatch concurrently, but different DirBatches for sibling directories
// may be in flight on different goroutines at once.
type Callback func(batch *DirBatch)

// WalkerOptions configures the parallel recursive walk of §4.C.
type WalkerOptions struct {
	SkipHidden  bool
	Sorted      bool
	MaxDepth    int // 0 means unlimited
	FollowLinks bool
	Concurrency int
	Cancel      *atomic.Bool
}

// semaphore bounds concurrent directory processing, grounded on
// ivoronin-dupedog/internal/types.Semaphore's Acquire/Release shape.
type semaphore chan struct{}

func newSemaphore(n int) semaphore {
	if n < 1 {
		n = 1
	}
	return make(semaphore, n)
}

func (s semaphore) acquire() { s <- struct{}{} }
func (s semaphore) release() { <-s }

type walker struct {
	opts WalkerOptions
	cb   Callback
	sem  semaphore
	wg   sync.WaitGroup
}

// runWalk drives a parallel recursive traversal of rootAbs, invoking cb once
// per directory. It returns once every spawned directory goroutine has
// finished (or cooperative cancellation has been observed).
func runWalk(rootAbs string, opts WalkerOptions, cb Callback) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrentWalks
	}
	w := &walker{opts: opts, cb: cb, sem: newSemaphore(concurrency)}
	w.wg.Add(1)
	go w.spawn(rootAbs, "", 0)
	w.wg.Wait()
}

func (w *walker) canceled() bool {
	return w.opts.Cancel != nil && w.opts.Cancel.Load()
}

func (w *walker) spawn(absPath, relDir string, depth int) {
	defer w.wg.Done()
	w.sem.acquire()
	defer w.sem.release()
	w.processDir(absPath, relDir, depth)
}

func (w *walker) processDir(absPath, relDir string, depth int) {
	if w.canceled() {
		return
	}

	batch := &DirBatch{ParentAbs: absPath, RelDir: relDir, Depth: depth}

	dirents, err := godirwalk.ReadDirents(absPath, nil)
	if err != nil {
		batch.ReadErr = err
		w.cb(batch)
		return
	}

	children := make([]*ChildEntry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if w.opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		children = append(children, &ChildEntry{Name: name, Kind: kindOf(de), Keep: true})
	}
	if w.opts.Sorted {
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	}
	batch.Children = children

	if w.canceled() {
		return
	}
	w.cb(batch)

	// A child directory spawned from here would itself sit at tree-depth
	// depth+1; once that equals MaxDepth, its own contents (depth+2) would
	// exceed the cap, so stop recursing without ever entering it. The
	// directory itself was already reported as a child in this batch.
	atMaxDepth := w.opts.MaxDepth > 0 && depth+1 >= w.opts.MaxDepth
	if atMaxDepth {
		return
	}

	for _, c := range children {
		if !c.Keep {
			continue
		}
		if w.canceled() {
			return
		}

		childAbs := filepath.Join(absPath, c.Name)
		descend := c.Kind == KindDir

		if c.Kind == KindSymlink && w.opts.FollowLinks {
			if fi, statErr := os.Stat(childAbs); statErr == nil && fi.IsDir() {
				// Spec §8: "followed and counted as a directory" when
				// follow_links is set.
				c.Kind = KindDir
				descend = true
			}
		}
		if !descend {
			continue
		}

		childRel := c.Name
		if relDir != "" {
			childRel = relDir + string(filepath.Separator) + c.Name
		}

		w.wg.Add(1)
		go w.spawn(childAbs, childRel, depth+1)
	}
}

func kindOf(de *godirwalk.Dirent) EntryKind {
	switch {
	case de.IsSymlink():
		return KindSymlink
	case de.IsDir():
		return KindDir
	case de.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
