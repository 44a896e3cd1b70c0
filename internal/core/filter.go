package core

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchOptions carries the case-sensitivity setting a compiled Filter was
// built with.
type MatchOptions struct {
	CaseSensitive bool
}

// Filter is the compiled form of Options' four glob lists. A nil Filter is
// the "absent" filter: every child is retained.
type Filter struct {
	DirInclude  []string
	DirExclude  []string
	FileInclude []string
	FileExclude []string
	Match       MatchOptions
}

var foldCaser = cases.Fold()

// compileFilter validates the four pattern lists and returns nil when all
// four are empty, matching §4.B: "Return an empty (absent) filter only if
// all four lists are empty."
func compileFilter(dirInclude, dirExclude, fileInclude, fileExclude []string, caseSensitive bool) (*Filter, error) {
	if len(dirInclude) == 0 && len(dirExclude) == 0 && len(fileInclude) == 0 && len(fileExclude) == 0 {
		return nil, nil
	}

	lists := []struct {
		name     string
		patterns []string
	}{
		{"dir_include", dirInclude},
		{"dir_exclude", dirExclude},
		{"file_include", fileInclude},
		{"file_exclude", fileExclude},
	}
	for _, l := range lists {
		for _, p := range l.patterns {
			if _, err := doublestar.Match(p, ""); err != nil {
				return nil, &InvalidInputError{Field: l.name, Message: err.Error()}
			}
		}
	}

	return &Filter{
		DirInclude:  dirInclude,
		DirExclude:  dirExclude,
		FileInclude: fileInclude,
		FileExclude: fileExclude,
		Match:       MatchOptions{CaseSensitive: caseSensitive},
	}, nil
}

// normalizeKey applies NFC Unicode normalization and, when the filter is
// case-insensitive, Unicode case folding, mirroring the teacher's use of
// norm.NFC for filename matching in find.go.
func normalizeKey(key string, caseSensitive bool) string {
	key = norm.NFC.String(key)
	if !caseSensitive {
		key = foldCaser.String(key)
	}
	return key
}

func normalizePattern(pattern string, caseSensitive bool) string {
	pattern = norm.NFC.String(pattern)
	if !caseSensitive {
		pattern = foldCaser.String(pattern)
	}
	return pattern
}

// matchDirentry implements §4.B's filter_direntry matching rule: an empty
// pattern list or an empty key falls back to emptyResult; otherwise the key
// matches if any pattern matches it, with the documented "**"-suffix
// workaround for the glob library's quirk of not matching a bare separator
// against a trailing "**".
func matchDirentry(key string, patterns []string, emptyResult bool, caseSensitive bool) bool {
	if len(patterns) == 0 || key == "" {
		return emptyResult
	}

	normKey := normalizeKey(key, caseSensitive)
	sep := string(filepath.Separator)

	for _, pattern := range patterns {
		normPattern := normalizePattern(pattern, caseSensitive)

		ok, err := doublestar.Match(normPattern, normKey)
		if err == nil && ok {
			return true
		}

		if len(normPattern) >= 2 && normPattern[len(normPattern)-2:] == "**" && normKey[len(normKey)-1:] != sep {
			if ok2, err2 := doublestar.Match(normPattern, normKey+sep); err2 == nil && ok2 {
				return true
			}
		}
	}
	return false
}

// childKeepDir applies §4.B's directory policy: kept iff not excluded and
// included.
func childKeepDir(relPath string, f *Filter) bool {
	if f == nil {
		return true
	}
	if matchDirentry(relPath, f.DirExclude, false, f.Match.CaseSensitive) {
		return false
	}
	return matchDirentry(relPath, f.DirInclude, true, f.Match.CaseSensitive)
}

// childKeepFile applies §4.B's file policy against the child's basename.
func childKeepFile(baseName string, f *Filter) bool {
	if f == nil {
		return true
	}
	if matchDirentry(baseName, f.FileExclude, false, f.Match.CaseSensitive) {
		return false
	}
	return matchDirentry(baseName, f.FileInclude, true, f.Match.CaseSensitive)
}

// applyChildFilter is §4.D's child-list filter: it sets Keep on every child
// of a batch, using the directory policy for KindDir entries and the file
// policy for everything else. The three drivers (Count, Walk, Scandir) all
// call this instead of inlining the same two-branch switch.
func applyChildFilter(relDir string, children []*ChildEntry, f *Filter) {
	for _, child := range children {
		rel := childRelPath(relDir, child.Name)
		switch child.Kind {
		case KindDir:
			child.Keep = childKeepDir(rel, f)
		default:
			child.Keep = childKeepFile(child.Name, f)
		}
	}
}
