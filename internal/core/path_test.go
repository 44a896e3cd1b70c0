package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRootPathMissing(t *testing.T) {
	_, _, err := validateRootPath("/does/not/exist/at/all")
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("err = %T, want *NotFoundError", err)
	}
}

func TestValidateRootPathRelPathRoundTrip(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	abs, length, err := validateRootPath(dir)
	if err != nil {
		t.Fatalf("validateRootPath: %v", err)
	}

	childAbs := filepath.Join(abs, "a", "b")
	rel := relPath(childAbs, length, "b")
	joined := filepath.Join(abs, rel)
	if joined != childAbs {
		t.Errorf("joining root+relPath = %s, want %s", joined, childAbs)
	}
}

func TestRelPathFallback(t *testing.T) {
	if got := relPath("short", 100, "fallback"); got != "fallback" {
		t.Errorf("relPath with rootPathLen past abs length = %q, want fallback", got)
	}
}

func TestExpandHomeNoTilde(t *testing.T) {
	got, err := expandHome("/tmp/foo")
	if err != nil {
		t.Fatalf("expandHome: %v", err)
	}
	if got != "/tmp/foo" {
		t.Errorf("expandHome(no tilde) = %q, want unchanged", got)
	}
}
