//go:build darwin

package core

import (
	"os"
	"syscall"
	"time"
)

// platformMetadata is Darwin's Stat_t shape, grounded on the field names
// TFMV-stride's stride.go reaches for (Atimespec/Birthtimespec) — the
// platform those names are actually valid on.
func platformMetadata(path string, fi os.FileInfo) (*Metadata, error) {
	var st syscall.Stat_t
	if err := syscall.Lstat(path, &st); err != nil {
		return nil, err
	}

	m := &Metadata{
		Size:    fi.Size(),
		Mode:    uint32(st.Mode),
		Ino:     st.Ino,
		Dev:     uint64(st.Dev),
		Nlink:   uint64(st.Nlink),
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
		Uid:     st.Uid,
		Gid:     st.Gid,
		Rdev:    uint64(st.Rdev),
		Ctime:   ts2time(st.Ctimespec),
		Mtime:   ts2time(st.Mtimespec),
		Atime:   ts2time(st.Atimespec),
	}
	return m, nil
}

func ts2time(ts syscall.Timespec) time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}

func (m *Metadata) isDevice() bool {
	return m.Rdev > 0
}

func (m *Metadata) isPipe() bool {
	const sIFIFO = 0o010000
	return m.Mode&sIFIFO != 0
}

func (m *Metadata) blockUsage() uint64 {
	if m.Blocks > 0 {
		return uint64(m.Blocks) * BlockSize
	}
	return ceilBlockUsage(m.Size)
}
