// Package scanner walks a directory tree and feeds every regular file it
// finds through an analyzer, collecting the resulting records in traversal
// order.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"forenscan/internal/analysis"
)

// FileAnalyzer produces one record for a single file path.
type FileAnalyzer interface {
	Analyze(path string) (analysis.Record, error)
}

// Scanner enumerates the regular files under a root directory.
type Scanner struct {
	root     string
	analyzer FileAnalyzer
}

// New constructs a Scanner rooted at the given directory. The root is
// normalized to an absolute clean path and must exist.
func New(root string, analyzer FileAnalyzer) (*Scanner, error) {
	if root == "" {
		return nil, errors.New("scan root is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}

	return &Scanner{root: abs, analyzer: analyzer}, nil
}

// Root returns the normalized scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree under the root and analyzes every regular file in the
// order the traversal yields them. Symbolic links are analyzed only when
// they resolve to regular files, and linked directories are not descended
// into. The first analysis or traversal failure aborts the whole scan.
func (s *Scanner) Scan(ctx context.Context) ([]analysis.Record, error) {
	var records []analysis.Record

	walker := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		record, analyzeErr := s.analyzer.Analyze(path)
		if analyzeErr != nil {
			return analyzeErr
		}
		records = append(records, record)
		return nil
	}

	if err := filepath.WalkDir(s.root, walker); err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, err)
	}
	return records, nil
}
