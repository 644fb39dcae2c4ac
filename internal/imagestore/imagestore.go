// Package imagestore keeps uploaded map images on local disk. File removal
// is always best effort for callers: the database transaction, not the
// filesystem, is the authoritative record of a map.
package imagestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is a disk-backed image store rooted at one directory.
type Store struct {
	dir     string
	baseURL string
}

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/uploads/maps"

// New creates the storage directory if needed and returns a store.
// baseURL may be empty; PublicURL then falls back to the per-request base.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the storage directory, for static-serving wiring.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded image under a generated name derived from the
// map code, never from the client-supplied filename. It returns the stored
// filename.
func (s *Store) Save(src io.Reader, mapCode, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s-%s%s", strings.ToLower(mapCode), uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image by filename. A missing file is not an
// error; an empty filename is a no-op.
func (s *Store) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	// Reject anything that could escape the storage directory.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid stored filename %q", filename)
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// PublicURL resolves a stored filename to the URL clients load it from.
// requestBase is used when no base URL is configured.
func (s *Store) PublicURL(filename, requestBase string) string {
	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(requestBase, "/")
	}
	return base + URLPrefix + "/" + filename
}
