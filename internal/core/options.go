package core

// Options is the immutable-after-start configuration shared by all three
// drivers (§3). Fields not meaningful to a given driver are ignored by its
// constructor (e.g. Extended only matters to Count, FollowLinks only to
// Scandir) — this mirrors the original source exposing one broad Options
// struct to every driver (original_source/scandir/src/def.rs).
type Options struct {
	RootPath      string
	Sorted        bool
	SkipHidden    bool
	MaxDepth      int
	MaxFileCount  int
	DirInclude    []string
	DirExclude    []string
	FileInclude   []string
	FileExclude   []string
	CaseSensitive bool
	FollowLinks   bool
	ReturnType    ReturnType
	Store         bool
	Extended      bool
	Concurrency   int
	LogLevel      LogLevel
}

// prepare validates the root path and compiles the glob filter — the two
// synchronous, constructor-time steps common to Count/Walk/Scandir (§4.A/§4.B).
func prepare(opts Options) (rootAbs string, rootPathLen int, filter *Filter, err error) {
	rootAbs, rootPathLen, err = validateRootPath(opts.RootPath)
	if err != nil {
		return "", 0, nil, err
	}
	filter, err = compileFilter(opts.DirInclude, opts.DirExclude, opts.FileInclude, opts.FileExclude, opts.CaseSensitive)
	if err != nil {
		return "", 0, nil, err
	}
	return rootAbs, rootPathLen, filter, nil
}

func (o Options) walkerOptions() WalkerOptions {
	return WalkerOptions{
		SkipHidden:  o.SkipHidden,
		Sorted:      o.Sorted,
		MaxDepth:    o.MaxDepth,
		FollowLinks: o.FollowLinks,
		Concurrency: o.Concurrency,
	}
}

// childRelPath joins a directory's relative path with a child name the way
// §4.D expects for the directory policy check.
func childRelPath(relDir, name string) string {
	if relDir == "" {
		return name
	}
	return relDir + "/" + name
}
