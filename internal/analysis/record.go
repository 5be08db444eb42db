// Package analysis implements the per-file inspection pipeline: content
// hashing, signature-based type classification, filesystem attribute capture,
// and tolerant EXIF extraction, combined into one Record per path.
package analysis

import "time"

// NotAvailable marks an EXIF field that the source image did not carry.
// It is stored and exported verbatim so the sink schemas stay fixed-width.
const NotAvailable = "N/A"

// timeLayout is the representation shared by every timestamp the pipeline
// emits, so the database and the CSV report render identical values.
const timeLayout = "2006-01-02 15:04:05"

// Record captures everything the pipeline observed about a single file.
type Record struct {
	Path     string
	Hash     string
	Type     string
	Size     int64
	Created  string
	Modified string
	Accessed string

	// Exif is nil for files without a parseable EXIF segment, including
	// every file whose extension is not on the image allow-list.
	Exif *ExifData
}

// ExifData holds the embedded image metadata fields the pipeline extracts.
// Fields the image does not carry keep the NotAvailable marker.
type ExifData struct {
	DateTime  string
	Latitude  string
	Longitude string
	Make      string
	Model     string
}

// NewExifData returns an ExifData with every field marked NotAvailable.
func NewExifData() *ExifData {
	return &ExifData{
		DateTime:  NotAvailable,
		Latitude:  NotAvailable,
		Longitude: NotAvailable,
		Make:      NotAvailable,
		Model:     NotAvailable,
	}
}

// FormatTime renders a timestamp in the pipeline's shared local-time layout.
func FormatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
