package analysis

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// SniffType classifies the file at path by its content signature and returns
// the detected MIME string. Files matching no known signature classify as
// application/octet-stream rather than failing; only I/O problems are errors.
func SniffType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("sniff %s: %w", path, err)
	}
	return mtype.String(), nil
}
