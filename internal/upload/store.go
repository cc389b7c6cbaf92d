// Package upload persists request files under collision-resistant names.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeRunes = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Store writes uploaded and generated files into a single directory.
// Stored names have the form "<uuid>_<sanitized-original-name>", so two
// uploads with identical original names never collide.
type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Dir returns the upload directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the reader to a new uniquely named file and returns its path.
// Data beyond the configured size cap is rejected and the partial file
// removed.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + SanitizeFilename(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	case closeErr != nil:
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", closeErr)
	case n > s.maxBytes:
		os.Remove(path)
		return "", fmt.Errorf("upload exceeds %d bytes", s.maxBytes)
	}

	return path, nil
}

// WriteGenerated stores produced output (synthesized audio) under the given
// name and returns the name back once the bytes are on disk.
func (s *Store) WriteGenerated(name string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write generated file: %w", err)
	}
	return name, nil
}

// Path resolves a stored name to its on-disk path.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// VerifyNonEmpty reports an error unless the named file exists and has
// size > 0. Silent empty-output failures are a known provider failure mode,
// so callers must check before reporting success.
func (s *Store) VerifyNonEmpty(name string) error {
	info, err := os.Stat(s.Path(name))
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", name)
	}
	return nil
}

// SanitizeFilename strips path components and collapses anything outside
// [A-Za-z0-9_.-], keeping the result safe to join into the upload dir.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeRunes.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}
