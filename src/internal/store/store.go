package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"refman/src/internal/bibtex"
)

// DefaultFile is used when neither an argument nor configuration names a
// library file.
const DefaultFile = "library.bib"

// SkippedError is returned alongside a usable collection when some entries
// of a file could not be parsed. Err holds the joined per-entry errors.
type SkippedError struct {
	Path string
	Err  error
}

func (e *SkippedError) Error() string {
	return fmt.Sprintf("%s: some entries were skipped: %v", e.Path, e.Err)
}

func (e *SkippedError) Unwrap() error { return e.Err }

// Load reads the whole file at path and parses it. When only some entries
// fail, the collection holds the rest and the error is a *SkippedError.
func Load(path string, opts ...bibtex.Option) (*bibtex.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c := bibtex.NewCollection(opts...)
	if perr := c.Parse(string(data)); perr != nil {
		return c, &SkippedError{Path: path, Err: perr}
	}
	return c, nil
}

// LoadOrEmpty is Load, except a missing file yields an empty collection.
func LoadOrEmpty(path string, opts ...bibtex.Option) (*bibtex.Collection, error) {
	c, err := Load(path, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		return bibtex.NewCollection(opts...), nil
	}
	return c, err
}

// Save replaces the file at path with the serialized collection. The write
// goes through a temporary file and a rename, so readers never observe a
// partially written document.
func Save(path string, c *bibtex.Collection) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IsSkipped reports whether err only describes skipped entries, meaning the
// accompanying collection is still usable.
func IsSkipped(err error) bool {
	var se *SkippedError
	return errors.As(err, &se)
}
