package store

import (
	"context"
	"fmt"
	"os"

	"temario/internal/codec"
	"temario/internal/model"
	"temario/internal/mutate"
)

// History receives one event per applied edit.
type History interface {
	AppendEdit(ctx context.Context, outlineKey, op string, index int, payload any, revision string) (EditEvent, error)
}

// Gateway ties one load -> edit -> save cycle together and flips the source-type flag.
// It holds no outline state between calls: every Edit reloads from disk.
type Gateway struct {
	Store   Store
	Flags   SourceFlags
	History History

	LoadOptions LoadOptions
	Backup      bool
	// CheckConflicts turns last-write-wins into optimistic concurrency: a save fails
	// when the file changed between this cycle's load and its save.
	CheckConflicts bool
}

// NewGateway builds a gateway backed by the store's SQLite index.
func NewGateway(s Store, cfg Config) *Gateway {
	return &Gateway{
		Store:          s,
		Flags:          SQLiteFlags{Store: s},
		History:        s,
		LoadOptions:    LoadOptions{Codec: codec.Options{MaxTextBytes: cfg.MaxTextBytes}},
		Backup:         cfg.Backup,
		CheckConflicts: cfg.CheckConflicts,
	}
}

// Outcome is the result of one Edit cycle.
type Outcome struct {
	Outline  *model.Outline `json:"outline"`
	Result   mutate.Result  `json:"result"`
	Saved    bool           `json:"saved"`
	Revision string         `json:"revision"`
	Path     string         `json:"path"`
}

// Open loads the named outline (creating it when missing).
func (g *Gateway) Open(name string) (*Loaded, error) {
	if err := g.Store.Ensure(); err != nil {
		return nil, &IoError{Op: "mkdir", Path: g.Store.Dir, Err: err}
	}
	return LoadOutline(g.Store.Resolve(name), g.LoadOptions)
}

// Edit loads the outline, applies exactly one operation, and on a real change saves it,
// marks it as editor-produced and appends a history event. ifRevision, when set, must
// match the revision on disk before the operation is applied.
func (g *Gateway) Edit(ctx context.Context, name string, ed mutate.Editor, op mutate.Op, ifRevision string) (*Outcome, error) {
	ld, err := g.Open(name)
	if err != nil {
		return nil, err
	}
	if ifRevision != "" && ifRevision != ld.Revision {
		return nil, &ConflictError{Path: ld.Path, Expected: ifRevision, Actual: ld.Revision}
	}

	out := &Outcome{Outline: ld.Outline, Revision: ld.Revision, Path: ld.Path}
	res, err := ed.Apply(ld.Outline, op)
	if err != nil {
		if mutate.IsNoop(err) {
			log.Debugf("%s on %s: no-op (%v)", op, ld.Path, err)
		}
		out.Result = mutate.Result{Op: op.Kind, Index: op.Index}
		return out, err
	}
	out.Result = res
	if !res.Changed {
		return out, nil
	}

	if err := g.commit(ctx, ld, op.Kind, res.Index, op, SourceEditor, out); err != nil {
		return out, err
	}
	return out, nil
}

// Import replaces the named outline with the content of an external file, marking the
// outline as imported. The source must decode cleanly.
func (g *Gateway) Import(ctx context.Context, src, name string) (*Outcome, error) {
	b, err := os.ReadFile(src)
	if err != nil {
		return nil, &IoError{Op: "read", Path: src, Err: err}
	}
	items, err := codec.DecodeBytes(b, g.LoadOptions.Codec)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", src, err)
	}
	imported := model.NewOutline(items)
	if bad := imported.Validate(); bad >= 0 {
		log.Warningf("imported outline %s breaks nesting at item %d; keeping it as-is", src, bad+1)
	}

	ld, err := g.Open(name)
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		Outline:  imported,
		Result:   mutate.Result{Op: "import", Index: -1, Changed: true},
		Revision: ld.Revision,
		Path:     ld.Path,
	}
	ld.Outline = imported
	if err := g.commit(ctx, ld, "import", -1, map[string]any{"source": src, "items": imported.Len()}, SourceImported, out); err != nil {
		return out, err
	}
	return out, nil
}

// SourceType reports the recorded source type of the named outline.
func (g *Gateway) SourceType(ctx context.Context, name string) (SourceType, error) {
	return g.Flags.SourceType(ctx, g.Store.outlineKey(g.Store.Resolve(name)))
}

// Edits returns the recorded history of the named outline, newest first.
func (g *Gateway) Edits(ctx context.Context, name string, limit int) ([]EditEvent, error) {
	return g.Store.ListEdits(ctx, g.Store.outlineKey(g.Store.Resolve(name)), limit)
}

func (g *Gateway) commit(ctx context.Context, ld *Loaded, op string, index int, payload any, src SourceType, out *Outcome) error {
	opt := SaveOptions{Backup: g.Backup}
	if g.CheckConflicts {
		opt.ExpectRevision = ld.Revision
	}
	rev, err := SaveOutline(ld.Outline, ld.Path, opt)
	if err != nil {
		return err
	}
	out.Saved = true
	out.Revision = rev

	key := g.Store.outlineKey(ld.Path)
	if g.Flags != nil {
		if err := g.Flags.SetSourceType(ctx, key, src); err != nil {
			return fmt.Errorf("set source type of %s: %w", key, err)
		}
	}
	if g.History != nil {
		if _, err := g.History.AppendEdit(ctx, key, op, index, payload, rev); err != nil {
			log.Warningf("record %s on %s: %v", op, key, err)
		}
	}
	log.Infof("%s applied to %s (item %d)", op, key, index)
	return nil
}
