//go:build windows

package analysis

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

// ReadStat returns the size and the creation, modification, and access
// timestamps of path. Windows reports all three natively through the Win32
// file attribute data.
func ReadStat(path string) (Stat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stat{}, fmt.Errorf("stat %s: %w", path, err)
	}

	// Sys is documented to be *syscall.Win32FileAttributeData on Windows.
	attrs := info.Sys().(*syscall.Win32FileAttributeData)
	return Stat{
		Size:     info.Size(),
		Created:  FormatTime(filetimeTime(attrs.CreationTime)),
		Modified: FormatTime(filetimeTime(attrs.LastWriteTime)),
		Accessed: FormatTime(filetimeTime(attrs.LastAccessTime)),
	}, nil
}

func filetimeTime(ft syscall.Filetime) time.Time {
	return time.Unix(0, ft.Nanoseconds())
}
