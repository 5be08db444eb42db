package analysis

import "strings"

// Analyzer runs the full inspection pipeline against individual files.
type Analyzer struct {
	algorithm string
}

// NewAnalyzer constructs an Analyzer using the named hash algorithm. An
// unknown name is rejected here so misconfiguration surfaces before any
// file is touched.
func NewAnalyzer(algorithm string) (*Analyzer, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	algorithm = strings.ToLower(algorithm)
	if _, err := NewDigest(algorithm); err != nil {
		return nil, err
	}
	return &Analyzer{algorithm: algorithm}, nil
}

// Algorithm returns the hash algorithm the analyzer applies.
func (a *Analyzer) Algorithm() string {
	return a.algorithm
}

// Analyze inspects the regular file at path and assembles its Record. Any
// failure to read content or filesystem attributes aborts the analysis; a
// missing or unreadable EXIF segment does not.
func (a *Analyzer) Analyze(path string) (Record, error) {
	hash, err := HashFile(path, a.algorithm)
	if err != nil {
		return Record{}, err
	}

	fileType, err := SniffType(path)
	if err != nil {
		return Record{}, err
	}

	st, err := ReadStat(path)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Path:     path,
		Hash:     hash,
		Type:     fileType,
		Size:     st.Size,
		Created:  st.Created,
		Modified: st.Modified,
		Accessed: st.Accessed,
	}
	if IsImagePath(path) {
		record.Exif = ExtractExif(path)
	}
	return record, nil
}
