package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Store writes metadata files under a local base directory as
// {base}/{locale}/{filename}
type Store struct {
	baseDir string
}

// New creates a filesystem store. The base directory is created lazily by Put.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes content verbatim, creating the locale directory when absent and
// truncating any existing file
func (s *Store) Put(ctx context.Context, locale, filename string, content []byte) error {
	dir := filepath.Join(s.baseDir, locale)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create locale directory", goerr.V("dir", dir))
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return goerr.Wrap(err, "failed to write metadata file", goerr.V("path", path))
	}

	return nil
}

// Path returns the local path of a metadata file
func (s *Store) Path(locale, filename string) string {
	return filepath.Join(s.baseDir, locale, filename)
}
