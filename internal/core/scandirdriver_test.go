package core

import "testing"

func TestScandirBaseReturnType(t *testing.T) {
	root, want := buildFixture(t)

	s, err := NewScandir(Options{RootPath: root, ReturnType: ReturnBase})
	if err != nil {
		t.Fatalf("NewScandir: %v", err)
	}
	results := s.Collect()

	wantTotal := want.Dirs + want.Files + want.Symlinks + want.Fifos
	if len(results.Entries) != wantTotal {
		t.Errorf("entries = %d, want %d", len(results.Entries), wantTotal)
	}
	if len(results.Errors) != 0 {
		t.Errorf("errors = %v, want none", results.Errors)
	}

	for _, r := range results.Entries {
		if r.Kind != ResultDirEntry {
			t.Fatalf("expected ResultDirEntry, got kind %v", r.Kind)
		}
		if r.Entry == nil {
			t.Fatalf("Entry is nil for a ResultDirEntry")
		}
		if r.Entry.Path == "" {
			t.Errorf("expected a non-empty relative path")
		}
	}
}

func TestScandirExtReturnType(t *testing.T) {
	root, _ := buildFixture(t)

	s, err := NewScandir(Options{RootPath: root, ReturnType: ReturnExt})
	if err != nil {
		t.Fatalf("NewScandir: %v", err)
	}
	results := s.Collect()
	if len(results.Entries) == 0 {
		t.Fatalf("expected entries")
	}
	for _, r := range results.Entries {
		if r.Kind != ResultDirEntryExt {
			t.Fatalf("expected ResultDirEntryExt, got kind %v", r.Kind)
		}
		if r.ExtEntry == nil {
			t.Fatalf("ExtEntry is nil")
		}
		if r.ExtEntry.STBlksize != BlockSize && r.ExtEntry.STBlksize == 0 {
			t.Errorf("expected a non-zero block size")
		}
	}
}

func TestScandirFastReturnTypeZeroesSize(t *testing.T) {
	root, _ := buildFixture(t)

	s, err := NewScandir(Options{RootPath: root, ReturnType: ReturnFast})
	if err != nil {
		t.Fatalf("NewScandir: %v", err)
	}
	results := s.Collect()
	for _, r := range results.Entries {
		if r.Entry != nil && r.Entry.STSize != 0 {
			t.Errorf("ReturnFast should zero STSize, got %d", r.Entry.STSize)
		}
	}
}

func TestScandirRejectsReturnWalk(t *testing.T) {
	root, _ := buildFixture(t)

	_, err := NewScandir(Options{RootPath: root, ReturnType: ReturnWalk})
	if err == nil {
		t.Fatal("expected an error constructing Scandir with ReturnWalk")
	}
	if _, ok := err.(*InvalidInputError); !ok {
		t.Errorf("err = %T, want *InvalidInputError", err)
	}
}

func TestScandirFileIncludeFilter(t *testing.T) {
	root, _ := buildFixture(t)

	s, err := NewScandir(Options{
		RootPath:    root,
		ReturnType:  ReturnBase,
		FileInclude: []string{"*.txt"},
	})
	if err != nil {
		t.Fatalf("NewScandir: %v", err)
	}
	results := s.Collect()
	for _, r := range results.Entries {
		if r.Entry != nil && r.Entry.IsFile && r.Entry.Path[len(r.Entry.Path)-4:] != ".txt" {
			t.Errorf("unexpected file passed the *.txt include filter: %s", r.Entry.Path)
		}
	}
}
