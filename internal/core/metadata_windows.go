//go:build windows

package core

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// platformMetadata implements §4.E's Windows branch via
// GetFileInformationByHandle, the idiomatic way to reach file_attributes,
// file_index, volume_serial_number, and number_of_links — none of which
// syscall.Stat_t exposes on this platform.
func platformMetadata(path string, fi os.FileInfo) (*Metadata, error) {
	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateFile(
		pathp,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return nil, err
	}

	size := int64(info.FileSizeHigh)<<32 | int64(info.FileSizeLow)
	ino := uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow)

	m := &Metadata{
		Size:    size,
		Mode:    info.FileAttributes,
		Ino:     ino,
		Dev:     uint64(info.VolumeSerialNumber),
		Nlink:   uint64(info.NumberOfLinks),
		Blksize: BlockSize,
		Blocks:  int64(ceilBlockUsage(size) / BlockSize),
		Ctime:   filetimeToTime(info.CreationTime),
		Mtime:   filetimeToTime(info.LastWriteTime),
		Atime:   filetimeToTime(info.LastAccessTime),
	}
	return m, nil
}

func filetimeToTime(ft windows.Filetime) time.Time {
	return time.Unix(0, ft.Nanoseconds())
}

// isDevice/isPipe have no Windows analogue; §4.F only counts these on the
// Unix-like branch.
func (m *Metadata) isDevice() bool { return false }
func (m *Metadata) isPipe() bool   { return false }

func (m *Metadata) blockUsage() uint64 {
	return ceilBlockUsage(m.Size)
}
