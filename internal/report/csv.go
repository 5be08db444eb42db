// Package report serializes analysis records into flat tabular exports.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"forenscan/internal/analysis"
)

// csvHeader is the fixed 12-column export schema.
var csvHeader = []string{
	"path", "hash", "type", "size", "created", "modified", "accessed",
	"exif_datetime", "exif_gps_latitude", "exif_gps_longitude", "exif_make", "exif_model",
}

// WriteCSV writes the record sequence to path as a comma-delimited export
// with a header row, overwriting any existing file. Records without an EXIF
// structure leave the five exif columns empty; present EXIF fields render
// their string form, the not-available marker included.
func WriteCSV(path string, records []analysis.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(csvRow(record)); err != nil {
			f.Close()
			return fmt.Errorf("write row %s: %w", record.Path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	return nil
}

func csvRow(record analysis.Record) []string {
	row := []string{
		record.Path,
		record.Hash,
		record.Type,
		strconv.FormatInt(record.Size, 10),
		record.Created,
		record.Modified,
		record.Accessed,
	}
	if record.Exif == nil {
		return append(row, "", "", "", "", "")
	}
	return append(row,
		record.Exif.DateTime,
		record.Exif.Latitude,
		record.Exif.Longitude,
		record.Exif.Make,
		record.Exif.Model,
	)
}
