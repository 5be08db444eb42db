//go:build unix

package analysis

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ReadStat returns the size and the creation, modification, and access
// timestamps of path. "Created" carries st_ctime, which Unix filesystems
// report as the inode change time.
func ReadStat(path string) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Stat{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return Stat{
		Size:     st.Size,
		Created:  FormatTime(timespecTime(st.Ctim)),
		Modified: FormatTime(timespecTime(st.Mtim)),
		Accessed: FormatTime(timespecTime(st.Atim)),
	}, nil
}

func timespecTime(ts unix.Timespec) time.Time {
	sec, nsec := ts.Unix()
	return time.Unix(sec, nsec)
}
