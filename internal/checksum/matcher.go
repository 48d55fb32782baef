// Package checksum fingerprints generated artifacts. The run report
// carries the workbook's digest so whoever picks the file up later can
// prove it is the exact one the run produced.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
)

// FileDigest returns the hex SHA-256 of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Matcher verifies artifacts against a known digest.
type Matcher struct {
	expected string
}

func NewMatcher(expected string) *Matcher {
	return &Matcher{expected: expected}
}

// MatchFile reports whether the file at path still hashes to the
// expected digest.
func (m *Matcher) MatchFile(path string) (bool, error) {
	if m.expected == "" {
		return false, errors.New("expected digest is not set")
	}
	actual, err := FileDigest(path)
	if err != nil {
		return false, err
	}
	return actual == m.expected, nil
}
