package analysis

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	blake2b "github.com/minio/blake2b-simd"
)

// hashChunkSize bounds how much of a file is held in memory while hashing,
// regardless of file size.
const hashChunkSize = 4096

// DefaultAlgorithm is the digest used when no algorithm is configured.
const DefaultAlgorithm = "sha256"

// ErrUnknownAlgorithm reports a digest identifier outside the registry.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var digests = map[string]func() hash.Hash{
	"md5":     md5.New,
	"sha1":    sha1.New,
	"sha256":  sha256.New,
	"sha512":  sha512.New,
	"blake2b": blake2b.New256,
}

// SupportedAlgorithms lists the registry identifiers in sorted order.
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDigest returns a fresh digest for the given identifier. The lookup is
// case-insensitive; an empty identifier selects DefaultAlgorithm.
func NewDigest(algo string) (hash.Hash, error) {
	if algo == "" {
		algo = DefaultAlgorithm
	}
	constructor, ok := digests[strings.ToLower(algo)]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)",
			ErrUnknownAlgorithm, algo, strings.Join(SupportedAlgorithms(), ", "))
	}
	return constructor(), nil
}

// HashFile streams the file at path through the selected digest in
// fixed-size chunks and returns the lowercase hex encoding of the sum.
func HashFile(path, algo string) (string, error) {
	digest, err := NewDigest(algo)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, hashChunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
