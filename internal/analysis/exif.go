package analysis

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// imageExtensions lists the extensions worth probing for an EXIF segment.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// IsImagePath reports whether path carries one of the image extensions
// probed for EXIF metadata. The check is case-insensitive.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ExtractExif parses the EXIF segment of the image at path. It returns nil
// when the file cannot be opened, holds no EXIF segment, or the segment is
// malformed. Tags that decode individually are kept even when siblings are
// absent or corrupt, with NotAvailable filling the gaps.
func ExtractExif(path string) (data *ExifData) {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	// Malformed TIFF structures can make the decoder panic instead of
	// returning an error. Treat that the same as a missing segment.
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}

	data = NewExifData()
	if v, err := tagString(x, exif.DateTimeOriginal); err == nil {
		data.DateTime = v
	} else if v, err := tagString(x, exif.DateTime); err == nil {
		data.DateTime = v
	}
	if lat, long, err := x.LatLong(); err == nil {
		data.Latitude = strconv.FormatFloat(lat, 'f', 6, 64)
		data.Longitude = strconv.FormatFloat(long, 'f', 6, 64)
	}
	if v, err := tagString(x, exif.Make); err == nil {
		data.Make = v
	}
	if v, err := tagString(x, exif.Model); err == nil {
		data.Model = v
	}
	return data
}

func tagString(x *exif.Exif, name exif.FieldName) (string, error) {
	tag, err := x.Get(name)
	if err != nil {
		return "", err
	}
	return tag.StringVal()
}
