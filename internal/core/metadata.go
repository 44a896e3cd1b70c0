package core

import (
	"math"
	"os"
	"time"
)

// BlockSize is the page-quantization unit used to compute `usage` on
// platforms lacking a native allocated-block count (§9 item 4 — the
// original source hard-codes this as a bare literal).
const BlockSize = 4096

// Metadata holds the per-entry extended stat fields of §4.E/§3's
// DirEntryExt, normalized to a single platform-independent shape. Fields
// with no meaning on the current platform are left at their zero value,
// per §9's "platform conditional fields" guidance.
type Metadata struct {
	Size    int64
	Mode    uint32
	Ino     uint64
	Dev     uint64
	Nlink   uint64
	Blksize int64
	Blocks  int64
	Uid     uint32
	Gid     uint32
	Rdev    uint64

	Ctime time.Time
	Mtime time.Time
	Atime time.Time
}

// unixSeconds converts t to the float-seconds-since-epoch representation
// some serialization sinks want, with the §4.E fallback of 0.0 when the
// timestamp is the zero value (missing).
func unixSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.Unix()) + float64(t.Nanosecond())*1e-9
}

// extractMetadata stats path and normalizes the result. fi, when non-nil, is
// used instead of calling os.Lstat; the Linux and Darwin platformMetadata
// still issue their own lstat for the raw stat fields.
func extractMetadata(path string, fi os.FileInfo) (*Metadata, error) {
	if fi == nil {
		var err error
		fi, err = os.Lstat(path)
		if err != nil {
			return nil, err
		}
	}
	return platformMetadata(path, fi)
}

// ceilBlockUsage rounds size up to the next BlockSize boundary, the formula
// used on platforms without a native st_blocks field (§4.E Windows branch,
// §8 "usage ≡ ceil(st_size/4096)*4096").
func ceilBlockUsage(size int64) uint64 {
	if size <= 0 {
		return 0
	}
	return uint64(math.Ceil(float64(size)/float64(BlockSize))) * BlockSize
}
