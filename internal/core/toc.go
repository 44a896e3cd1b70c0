package core

import "path/filepath"

// TOC is the Walk driver's per-directory classification tuple (§3/glossary):
// five ordered sequences of basenames/relative paths.
type TOC struct {
	Dirs     []string `json:"dirs"`
	Files    []string `json:"files"`
	Symlinks []string `json:"symlinks"`
	Other    []string `json:"other"`
	Errors   []string `json:"errors"`
}

// IsEmpty reports whether every field is empty — an empty TOC is never
// emitted by the Walk TOC emitter (§4.G).
func (t *TOC) IsEmpty() bool {
	return len(t.Dirs) == 0 && len(t.Files) == 0 && len(t.Symlinks) == 0 &&
		len(t.Other) == 0 && len(t.Errors) == 0
}

// extend appends other's entries into t, joining root onto every name —
// the fold operation behind Walk's collect() (§4.G, original_source's
// Toc::extend).
func (t *TOC) extend(root string, other *TOC) {
	join := func(name string) string {
		if root == "" {
			return name
		}
		return filepath.Join(root, name)
	}
	for _, d := range other.Dirs {
		t.Dirs = append(t.Dirs, join(d))
	}
	for _, f := range other.Files {
		t.Files = append(t.Files, join(f))
	}
	for _, s := range other.Symlinks {
		t.Symlinks = append(t.Symlinks, join(s))
	}
	for _, o := range other.Other {
		t.Other = append(t.Other, join(o))
	}
	t.Errors = append(t.Errors, other.Errors...)
}

// TocEntry is one (relative_dir, TOC) item emitted by the Walk driver's
// channel (§4.G).
type TocEntry struct {
	RelDir string
	Toc    TOC
}
