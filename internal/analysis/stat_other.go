//go:build !unix && !windows

package analysis

import (
	"fmt"
	"os"
)

// ReadStat returns the size and timestamps of path. The remaining platforms
// expose only the modification time through os.FileInfo, so it stands in for
// all three timestamps.
func ReadStat(path string) (Stat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stat{}, fmt.Errorf("stat %s: %w", path, err)
	}

	mtime := FormatTime(info.ModTime())
	return Stat{
		Size:     info.Size(),
		Created:  mtime,
		Modified: mtime,
		Accessed: mtime,
	}, nil
}
