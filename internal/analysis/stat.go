package analysis

// Stat reports the filesystem attributes captured for a path. Timestamps are
// already rendered in the pipeline's shared local-time layout; filesystems may
// report inconsistent or missing values, and no ordering between the three is
// assumed. Querying the access time may itself update it on some filesystems;
// that side effect is accepted.
//
// ReadStat is implemented per platform in stat_unix.go, stat_windows.go,
// and stat_other.go.
type Stat struct {
	Size     int64
	Created  string
	Modified string
	Accessed string
}
