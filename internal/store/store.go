package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

const (
	storeDirName    = ".temario"
	indexFileName   = "index.sqlite"
	DefaultFileName = "temario.lista"
)

var log = commonlog.GetLogger("temario.store")

// Store is a data directory holding outline files and the SQLite index that records
// each outline's source type and edit history.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .temario directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the nearest .temario directory, or ./.temario when none exists yet.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) indexPath() string {
	return filepath.Join(s.Dir, indexFileName)
}

// Resolve maps a user-supplied outline path to an absolute file path. Relative paths
// are taken relative to the store directory; an empty name selects the default file.
func (s Store) Resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.Dir, name)
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}

// outlineKey identifies an outline in the index: its path relative to the store when
// possible so a moved store keeps its flags.
func (s Store) outlineKey(path string) string {
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return filepath.Clean(path)
	}
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(filepath.Clean(path))
}
