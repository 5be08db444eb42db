package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"forenscan/internal/analysis"
)

// Defaults for the sink destinations, overridable through the environment
// and flags.
const (
	DefaultDBPath  = "forensics.db"
	DefaultCSVPath = "forensics_report.csv"
)

// Config captures runtime configuration for the forenscan application.
type Config struct {
	// Root is the directory tree to inventory.
	Root string

	// DBPath is the SQLite destination of the relational snapshot.
	DBPath string

	// CSVPath is the destination of the tabular export.
	CSVPath string

	// HashAlgorithm names the digest applied to every file's content.
	HashAlgorithm string
}

// FromFlags parses configuration from command line arguments. Flags win over
// FORENSCAN_* environment variables, which win over the built-in defaults. A
// .env file in the working directory seeds the environment when present.
func FromFlags(args []string) (Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("forenscan", flag.ContinueOnError)

	var cfg Config
	fs.StringVar(&cfg.DBPath, "db", envOr("FORENSCAN_DB", DefaultDBPath), "relational store destination")
	fs.StringVar(&cfg.CSVPath, "csv", envOr("FORENSCAN_CSV", DefaultCSVPath), "tabular export destination")
	fs.StringVar(&cfg.HashAlgorithm, "hash", envOr("FORENSCAN_HASH", analysis.DefaultAlgorithm),
		fmt.Sprintf("digest algorithm (%s)", strings.Join(analysis.SupportedAlgorithms(), ", ")))
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: forenscan [flags] <directory>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return Config{}, errors.New("a directory to scan is required")
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected one directory to scan, got %d arguments", fs.NArg())
	}

	root, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return Config{}, fmt.Errorf("resolve directory %q: %w", fs.Arg(0), err)
	}
	cfg.Root = filepath.Clean(root)

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
