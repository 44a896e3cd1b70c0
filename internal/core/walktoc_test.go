package core

import "testing"

func TestWalkCollectStoreTrue(t *testing.T) {
	root, want := buildFixture(t)

	w, err := NewWalk(Options{RootPath: root, Store: true})
	if err != nil {
		t.Fatalf("NewWalk: %v", err)
	}

	toc := w.Collect()

	if len(toc.Dirs) != want.Dirs {
		t.Errorf("dirs = %d, want %d", len(toc.Dirs), want.Dirs)
	}
	if len(toc.Files) != want.Files {
		t.Errorf("files = %d, want %d", len(toc.Files), want.Files)
	}
	if len(toc.Symlinks) != want.Symlinks {
		t.Errorf("symlinks = %d, want %d", len(toc.Symlinks), want.Symlinks)
	}
	if w.HasErrors() {
		t.Errorf("expected HasErrors()==false on a clean fixture")
	}

	// Collecting again with store=true should reproduce the same totals:
	// the accumulator already holds every TocEntry from the finished run.
	second := w.Collect()
	if len(second.Dirs) != len(toc.Dirs) || len(second.Files) != len(toc.Files) {
		t.Errorf("second Collect() diverged from first: %+v vs %+v", second, toc)
	}
}

func TestWalkCollectStoreFalse(t *testing.T) {
	root, want := buildFixture(t)

	w, err := NewWalk(Options{RootPath: root, Store: false})
	if err != nil {
		t.Fatalf("NewWalk: %v", err)
	}

	toc := w.Collect()
	if len(toc.Dirs) != want.Dirs {
		t.Errorf("dirs = %d, want %d", len(toc.Dirs), want.Dirs)
	}
	if len(toc.Files) != want.Files {
		t.Errorf("files = %d, want %d", len(toc.Files), want.Files)
	}

	// §3 invariant 7: store=false never retains. The run already finished and
	// drained its one batch above, so a second Collect() — with no
	// intervening Clear() to start a fresh run — finds nothing pending and
	// folds an empty TOC. This matches TestLifecycleStoreFalseNeverRetains.
	second := w.Collect()
	if len(second.Dirs) != 0 || len(second.Files) != 0 {
		t.Errorf("second Collect() with store=false = %+v, want an empty TOC", second)
	}
}

func TestWalkSkipHiddenFalse(t *testing.T) {
	root, _ := buildFixture(t)

	w, err := NewWalk(Options{RootPath: root, SkipHidden: false})
	if err != nil {
		t.Fatalf("NewWalk: %v", err)
	}
	toc := w.Collect()
	if len(toc.Dirs) == 0 && len(toc.Files) == 0 {
		t.Fatalf("expected a non-empty TOC")
	}
}

func TestWalkStatisticsMatchesTOC(t *testing.T) {
	root, want := buildFixture(t)

	w, err := NewWalk(Options{RootPath: root, Store: true})
	if err != nil {
		t.Fatalf("NewWalk: %v", err)
	}
	w.Collect()
	stats := w.Statistics()

	if int(stats.Dirs) != want.Dirs {
		t.Errorf("stats.Dirs = %d, want %d", stats.Dirs, want.Dirs)
	}
	if int(stats.Files) != want.Files {
		t.Errorf("stats.Files = %d, want %d", stats.Files, want.Files)
	}
}
