package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"forenscan/internal/analysis"

	_ "modernc.org/sqlite"
)

// Store persists analysis records inside a SQLite database.
type Store struct {
	db *sql.DB
}

// Stats summarizes the stored row counts.
type Stats struct {
	Files    int
	ExifRows int
}

// Open initializes (or reuses) a SQLite database at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS files (
        path TEXT PRIMARY KEY,
        hash TEXT,
        type TEXT,
        size INTEGER,
        created TEXT,
        modified TEXT,
        accessed TEXT
);

CREATE TABLE IF NOT EXISTS exif_data (
        file_path TEXT PRIMARY KEY,
        datetime TEXT,
        gps_latitude TEXT,
        gps_longitude TEXT,
        make TEXT,
        model TEXT
);
`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// SaveAll writes the full record sequence in one transaction, inserting or
// replacing rows by path. EXIF rows are written only for records carrying an
// EXIF structure. Replaying the same records leaves the stored state
// unchanged.
func (s *Store) SaveAll(ctx context.Context, records []analysis.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	fileStmt, err := tx.PrepareContext(ctx, `
INSERT INTO files(path, hash, type, size, created, modified, accessed)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
        hash=excluded.hash,
        type=excluded.type,
        size=excluded.size,
        created=excluded.created,
        modified=excluded.modified,
        accessed=excluded.accessed
`)
	if err != nil {
		return fmt.Errorf("prepare file upsert: %w", err)
	}
	defer fileStmt.Close()

	exifStmt, err := tx.PrepareContext(ctx, `
INSERT INTO exif_data(file_path, datetime, gps_latitude, gps_longitude, make, model)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(file_path) DO UPDATE SET
        datetime=excluded.datetime,
        gps_latitude=excluded.gps_latitude,
        gps_longitude=excluded.gps_longitude,
        make=excluded.make,
        model=excluded.model
`)
	if err != nil {
		return fmt.Errorf("prepare exif upsert: %w", err)
	}
	defer exifStmt.Close()

	for _, record := range records {
		if _, execErr := fileStmt.ExecContext(ctx,
			record.Path, record.Hash, record.Type, record.Size,
			record.Created, record.Modified, record.Accessed); execErr != nil {
			return fmt.Errorf("upsert file %s: %w", record.Path, execErr)
		}

		if record.Exif == nil {
			continue
		}
		if _, execErr := exifStmt.ExecContext(ctx,
			record.Path, record.Exif.DateTime, record.Exif.Latitude,
			record.Exif.Longitude, record.Exif.Make, record.Exif.Model); execErr != nil {
			return fmt.Errorf("upsert exif %s: %w", record.Path, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

// LoadAll retrieves every persisted record ordered by path, rejoining EXIF
// rows onto their file rows.
func (s *Store) LoadAll(ctx context.Context) ([]analysis.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT f.path, f.hash, f.type, f.size, f.created, f.modified, f.accessed,
       e.file_path, e.datetime, e.gps_latitude, e.gps_longitude, e.make, e.model
FROM files f
LEFT JOIN exif_data e ON e.file_path = f.path
ORDER BY f.path
`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []analysis.Record
	for rows.Next() {
		var (
			record    analysis.Record
			exifPath  sql.NullString
			datetime  sql.NullString
			latitude  sql.NullString
			longitude sql.NullString
			exifMake  sql.NullString
			exifModel sql.NullString
		)
		if scanErr := rows.Scan(
			&record.Path, &record.Hash, &record.Type, &record.Size,
			&record.Created, &record.Modified, &record.Accessed,
			&exifPath, &datetime, &latitude, &longitude, &exifMake, &exifModel); scanErr != nil {
			return nil, fmt.Errorf("scan record: %w", scanErr)
		}

		if exifPath.Valid {
			record.Exif = &analysis.ExifData{
				DateTime:  datetime.String,
				Latitude:  latitude.String,
				Longitude: longitude.String,
				Make:      exifMake.String,
				Model:     exifModel.String,
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Stats reports the row counts of both tables.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&stats.Files); err != nil {
		return Stats{}, fmt.Errorf("count files: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exif_data`).Scan(&stats.ExifRows); err != nil {
		return Stats{}, fmt.Errorf("count exif rows: %w", err)
	}
	return stats, nil
}
