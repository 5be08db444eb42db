package app

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"forenscan/internal/analysis"
	"forenscan/internal/config"
	"forenscan/internal/report"
	"forenscan/internal/scanner"
	"forenscan/internal/storage/sqlite"
)

// App ties together configuration, the scanner, and both sinks.
type App struct {
	cfg     config.Config
	scanner *scanner.Scanner
}

// New constructs an App using the provided configuration.
func New(cfg config.Config) (*App, error) {
	analyzer, err := analysis.NewAnalyzer(cfg.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}

	scan, err := scanner.New(cfg.Root, analyzer)
	if err != nil {
		return nil, fmt.Errorf("create scanner: %w", err)
	}

	return &App{cfg: cfg, scanner: scan}, nil
}

// Run executes the scan and, once it completes in full, persists the record
// sequence to the database and the CSV report. Progress is printed at each
// stage; the first fatal error aborts before any sink output exists.
func (a *App) Run(ctx context.Context) error {
	fmt.Printf("Scanning %s\n", a.scanner.Root())

	records, err := a.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	var totalBytes int64
	for _, record := range records {
		totalBytes += record.Size
	}
	fmt.Printf("Analyzed %s files (%s)\n",
		humanize.Comma(int64(len(records))), humanize.Bytes(uint64(totalBytes)))

	fmt.Printf("Writing database %s\n", a.cfg.DBPath)
	stats, err := a.writeDatabase(ctx, records)
	if err != nil {
		return err
	}

	fmt.Printf("Writing report %s\n", a.cfg.CSVPath)
	if err := report.WriteCSV(a.cfg.CSVPath, records); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Printf("Done: %d file rows, %d exif rows\n", stats.Files, stats.ExifRows)
	return nil
}

// writeDatabase holds the store open for exactly the duration of the
// persistence step.
func (a *App) writeDatabase(ctx context.Context, records []analysis.Record) (sqlite.Stats, error) {
	store, err := sqlite.Open(a.cfg.DBPath)
	if err != nil {
		return sqlite.Stats{}, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.SaveAll(ctx, records); err != nil {
		return sqlite.Stats{}, fmt.Errorf("save records: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return sqlite.Stats{}, fmt.Errorf("read store stats: %w", err)
	}
	return stats, nil
}
