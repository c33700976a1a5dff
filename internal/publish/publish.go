package publish

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"temario/internal/model"

	"github.com/natefinch/atomic"
)

type WriteOptions struct {
	Title        string
	HeadingDepth int
	// WithTree also writes a <name>.tree.txt rendering.
	WithTree  bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteOutline writes <toDir>/<name>.md (and optionally <name>.tree.txt) for an outline.
func WriteOutline(o *model.Outline, name string, toDir string, opt WriteOptions) (WriteResult, error) {
	if o == nil {
		return WriteResult{}, errors.New("missing outline")
	}
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		return WriteResult{}, errors.New("missing outline name")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	title := opt.Title
	if strings.TrimSpace(title) == "" {
		title = name
	}
	md := RenderMarkdown(o, RenderOptions{Title: title, HeadingDepth: opt.HeadingDepth, Numbered: true})
	mdPath := filepath.Join(toDir, name+".md")
	if err := writeFile(mdPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{mdPath}

	if opt.WithTree {
		treePath := filepath.Join(toDir, name+".tree.txt")
		if err := writeFile(treePath, []byte(RenderTree(o, title)), opt.Overwrite); err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, treePath)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return atomic.WriteFile(path, bytes.NewReader(b))
}
