// Package scandir provides a high-throughput, concurrent directory
// traversal engine with three driver types built on the same lifecycle:
//
//   - Count aggregates per-kind statistics (dirs, files, symlinks,
//     hardlinks, size, allocated storage) without retaining individual
//     entries.
//   - Walk groups each directory's children into a table-of-contents record,
//     classified by kind.
//   - Scandir emits one typed record per filtered entry, optionally with
//     full platform-specific stat metadata.
//
// All three share start/stop/join/collect/clear lifecycle methods and a
// common glob-based include/exclude filter compiled from Options.
package scandir

import (
	internal "github.com/traverse-go/scandir/internal/core"
)

// Re-export the core types so callers never need to import internal/core.
type (
	Options        = internal.Options
	Statistics     = internal.Statistics
	TOC            = internal.TOC
	TocEntry       = internal.TocEntry
	DirEntry       = internal.DirEntry
	DirEntryExt    = internal.DirEntryExt
	PathError      = internal.PathError
	ScandirResult  = internal.ScandirResult
	ScandirResults = internal.ScandirResults
	ReturnType     = internal.ReturnType
	LogLevel       = internal.LogLevel

	Count   = internal.Count
	Walk    = internal.Walk
	Scandir = internal.Scandir
)

// Re-export the return-type and log-level constants.
const (
	ReturnFast = internal.ReturnFast
	ReturnBase = internal.ReturnBase
	ReturnExt  = internal.ReturnExt
	ReturnWalk = internal.ReturnWalk

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// ResultKind constants for ScandirResult.Kind.
const (
	ResultDirEntry    = internal.ResultDirEntry
	ResultDirEntryExt = internal.ResultDirEntryExt
	ResultError       = internal.ResultError
)

// BlockSize is the page-quantization unit used by the usage accounting in
// Count and DirEntryExt's st_blksize fallback (§9 item 4: named, not
// hard-coded).
const BlockSize = internal.BlockSize
