package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"temario/internal/codec"
	"temario/internal/model"

	"github.com/natefinch/atomic"
)

// IoError wraps a failed file operation. The previously persisted outline is intact,
// so the caller may retry.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

func (e *IoError) Retryable() bool { return true }

// ConflictError is returned by SaveOutline when the file changed on disk since it was
// loaded and conflict checking is enabled.
type ConflictError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("outline %s was modified by another editor (expected revision %.12s, found %.12s)", e.Path, e.Expected, e.Actual)
}

// Loaded is an outline together with the revision of the bytes it was decoded from.
type Loaded struct {
	Outline  *model.Outline
	Path     string
	Revision string
}

// LoadOptions tunes how an outline file is read.
type LoadOptions struct {
	Codec codec.Options
}

// SaveOptions tunes how an outline file is written.
type SaveOptions struct {
	// Backup keeps a copy of the previous content at <path>.bak (best effort).
	Backup bool
	// ExpectRevision, when set, makes the save fail with ConflictError if the file on
	// disk no longer has this revision. Empty means last-write-wins.
	ExpectRevision string
}

// Revision returns the content hash used for optimistic conflict detection.
func Revision(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// LoadOutline reads and decodes an outline file. A missing or blank file is (re)written
// with an empty body and yields an empty outline.
func LoadOutline(path string, opt LoadOptions) (*Loaded, error) {
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		b = codec.EmptyDocument()
		if err := writeAtomic(path, b); err != nil {
			return nil, err
		}
		log.Infof("created empty outline %s", path)
	}
	items, err := codec.DecodeBytes(b, opt.Codec)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Loaded{
		Outline:  model.NewOutline(items),
		Path:     path,
		Revision: Revision(b),
	}, nil
}

// SaveOutline serializes the outline and atomically replaces path (temp file in the same
// directory, fsync, rename). On any failure the previous file is left untouched.
func SaveOutline(o *model.Outline, path string, opt SaveOptions) (string, error) {
	b := codec.Marshal(o.Records())

	prev, readErr := os.ReadFile(path)
	if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
		return "", &IoError{Op: "read", Path: path, Err: readErr}
	}
	if opt.ExpectRevision != "" && readErr == nil {
		if cur := Revision(prev); cur != opt.ExpectRevision {
			return "", &ConflictError{Path: path, Expected: opt.ExpectRevision, Actual: cur}
		}
	}
	if readErr == nil && bytes.Equal(prev, b) {
		return Revision(b), nil
	}

	if opt.Backup && readErr == nil && len(prev) > 0 {
		if err := atomic.WriteFile(path+".bak", bytes.NewReader(prev)); err != nil {
			log.Warningf("backup of %s failed: %v", path, err)
		}
	}
	if err := writeAtomic(path, b); err != nil {
		return "", err
	}
	log.Debugf("saved %d items to %s", o.Len(), path)
	return Revision(b), nil
}

func writeAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IoError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}
	if errors.Is(statErr, os.ErrNotExist) {
		// atomic.WriteFile only carries over the mode of an existing file.
		_ = os.Chmod(path, 0o644)
	}
	return nil
}
