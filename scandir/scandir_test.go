package scandir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/traverse-go/scandir/scandir"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "a"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "one.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "top.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestNewOptionsDefaults(t *testing.T) {
	opts := scandir.NewOptions("/tmp")
	if !opts.SkipHidden {
		t.Errorf("expected SkipHidden default true")
	}
	if opts.ReturnType != scandir.ReturnBase {
		t.Errorf("expected ReturnBase default")
	}
	if !opts.Store {
		t.Errorf("expected Store default true")
	}
}

func TestCountEndToEnd(t *testing.T) {
	root := buildTree(t)
	opts := scandir.NewOptions(root)
	c, err := scandir.NewCount(opts)
	if err != nil {
		t.Fatalf("NewCount: %v", err)
	}
	stats := c.Collect()
	if stats.Dirs != 1 {
		t.Errorf("dirs = %d, want 1", stats.Dirs)
	}
	if stats.Files != 2 {
		t.Errorf("files = %d, want 2", stats.Files)
	}
}

func TestWalkEndToEnd(t *testing.T) {
	root := buildTree(t)
	opts := scandir.NewOptions(root)
	w, err := scandir.NewWalk(opts)
	if err != nil {
		t.Fatalf("NewWalk: %v", err)
	}
	toc := w.Collect()
	if len(toc.Dirs) != 1 {
		t.Errorf("dirs = %d, want 1", len(toc.Dirs))
	}
	if len(toc.Files) != 2 {
		t.Errorf("files = %d, want 2 (top.txt and a/one.txt)", len(toc.Files))
	}
}

func TestScandirEndToEnd(t *testing.T) {
	root := buildTree(t)
	opts := scandir.NewOptions(root)
	opts.ReturnType = scandir.ReturnExt
	s, err := scandir.NewScandir(opts)
	if err != nil {
		t.Fatalf("NewScandir: %v", err)
	}
	results := s.Collect()
	if len(results.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(results.Entries))
	}
	for _, e := range results.Entries {
		if e.Kind != scandir.ResultDirEntryExt {
			t.Errorf("expected ResultDirEntryExt entries under ReturnExt")
		}
	}
}
