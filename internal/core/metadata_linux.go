//go:build linux

package core

import (
	"os"
	"syscall"
	"time"
)

// platformMetadata fills Metadata from syscall.Stat_t, the same struct
// opencoff-go-fio's Info.Stat reads fields off of. Unlike the teacher's
// stride.go (which reaches for Darwin-only field names such as
// Atimespec/Birthtimespec), this branch uses the Linux Stat_t shape
// (Atim/Mtim/Ctim) so the module actually builds on the platform it runs on.
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
		Ctime:   ts2time(st.Ctim),
		Mtime:   ts2time(st.Mtim),
		Atime:   ts2time(st.Atim),
	}
	return m, nil
}

// ts2time mirrors opencoff-go-fio/info.go's helper of the same name.
func ts2time(ts syscall.Timespec) time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}

// isDevice reports whether the entry is a device node (§4.F Unix branch:
// devices += 1 when st_rdev > 0).
func (m *Metadata) isDevice() bool {
	return m.Rdev > 0
}

// isPipe reports whether the entry is a named pipe (§4.F: st_mode & 0o10000).
func (m *Metadata) isPipe() bool {
	const sIFIFO = 0o010000
	return m.Mode&sIFIFO != 0
}

// blockUsage implements §4.F's Unix usage formula, st_blocks * 4096; when
// st_blocks is 0 it falls back to the size rounded up to BlockSize.
func (m *Metadata) blockUsage() uint64 {
	if m.Blocks > 0 {
		return uint64(m.Blocks) * BlockSize
	}
	return ceilBlockUsage(m.Size)
}
