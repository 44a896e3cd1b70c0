package scandir

import (
	internal "github.com/traverse-go/scandir/internal/core"
)

// NewOptions returns Options seeded with the engine's defaults, the same
// convenience walk.NewWalkOptions()/NewFilterOptions() provide in the
// teacher package.
func NewOptions(rootPath string) Options {
	return Options{
		RootPath:      rootPath,
		Sorted:        false,
		SkipHidden:    true,
		MaxDepth:      0,
		MaxFileCount:  0,
		CaseSensitive: true,
		ReturnType:    ReturnBase,
		Store:         true,
		Concurrency:   internal.DefaultConcurrentWalks,
		LogLevel:      LogLevelInfo,
	}
}

// NewCount constructs a Count driver: aggregate statistics only (§4.F).
func NewCount(opts Options) (*Count, error) {
	return internal.NewCount(opts)
}

// NewWalk constructs a Walk driver: per-directory TOC emission (§4.G).
func NewWalk(opts Options) (*Walk, error) {
	return internal.NewWalk(opts)
}

// NewScandir constructs a Scandir driver: per-entry typed records (§4.H).
func NewScandir(opts Options) (*Scandir, error) {
	return internal.NewScandir(opts)
}
