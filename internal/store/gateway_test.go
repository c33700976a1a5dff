package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"temario/internal/mutate"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	s := Store{Dir: t.TempDir()}
	return NewGateway(s, DefaultConfig())
}

func TestGateway_EditSavesAndFlagsEditor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGateway(t)
	ed := mutate.Editor{}

	out, err := g.Edit(ctx, "", ed, mutate.Op{Kind: mutate.OpInsert, Index: -1, Depth: 1, Text: "Tema 1"}, "")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !out.Saved || out.Outline.Len() != 1 {
		t.Fatalf("unexpected outcome: %#v", out)
	}

	src, err := g.SourceType(ctx, "")
	if err != nil {
		t.Fatalf("SourceType: %v", err)
	}
	if src != SourceEditor {
		t.Fatalf("source=%q want %q", src, SourceEditor)
	}

	ld, err := g.Open("")
	if err != nil {
		t.Fatal(err)
	}
	if ld.Outline.Len() != 1 || ld.Outline.Items[0].Text != "Tema 1" {
		t.Fatalf("edit not persisted: %#v", ld.Outline.Items)
	}

	evs, err := g.Edits(ctx, "", 0)
	if err != nil {
		t.Fatalf("Edits: %v", err)
	}
	if len(evs) != 1 || evs[0].Op != mutate.OpInsert || evs[0].Revision != out.Revision {
		t.Fatalf("unexpected history: %#v", evs)
	}
}

func TestGateway_FailedEditDoesNotSaveOrFlag(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGateway(t)
	g.Flags = &MemoryFlags{}
	ed := mutate.Editor{}

	if _, err := g.Edit(ctx, "", ed, mutate.Op{Kind: mutate.OpInsert, Index: -1, Depth: 1, Text: "A"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Edit(ctx, "", ed, mutate.Op{Kind: mutate.OpInsert, Index: 0, Depth: 2, Text: "B"}, ""); err != nil {
		t.Fatal(err)
	}
	_ = g.Flags.SetSourceType(ctx, g.Store.outlineKey(g.Store.Resolve("")), SourceImported)

	path := g.Store.Resolve("")
	before, _ := os.ReadFile(path)

	_, err := g.Edit(ctx, "", ed, mutate.Op{Kind: mutate.OpRemove, Index: 0}, "")
	if !errors.Is(err, mutate.ErrHasChildren) {
		t.Fatalf("expected HasChildren, got %v", err)
	}
	out, err := g.Edit(ctx, "", ed, mutate.Op{Kind: mutate.OpOutdent, Index: 0}, "")
	if !mutate.IsNoop(err) {
		t.Fatalf("expected no-op depth bound, got %v", err)
	}
	if out == nil || out.Saved {
		t.Fatalf("no-op must not save: %#v", out)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("file changed by failed edits:\n%s\n---\n%s", before, after)
	}
	src, _ := g.SourceType(ctx, "")
	if src != SourceImported {
		t.Fatalf("flag flipped by failed edit: %q", src)
	}
}

func TestGateway_IfRevisionMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGateway(t)
	_, err := g.Edit(ctx, "", mutate.Editor{}, mutate.Op{Kind: mutate.OpInsert, Index: -1, Depth: 1, Text: "A"}, "stale")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestGateway_ImportFlagsImported(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGateway(t)

	src := filepath.Join(t.TempDir(), "external.lista")
	doc := "<lista>\n<item nivel=\"1\">Bloque I</item>\n<item nivel=\"2\">Tema 1</item>\n</lista>\n"
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := g.Import(ctx, src, "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if out.Outline.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", out.Outline.Len())
	}
	srcType, err := g.SourceType(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if srcType != SourceImported {
		t.Fatalf("source=%q want imported", srcType)
	}

	if _, err := g.Edit(ctx, "", mutate.Editor{}, mutate.Op{Kind: mutate.OpModify, Index: 1, Text: "Tema 1 (rev)"}, ""); err != nil {
		t.Fatal(err)
	}
	srcType, _ = g.SourceType(ctx, "")
	if srcType != SourceEditor {
		t.Fatalf("source=%q want editor after edit", srcType)
	}
}

func TestGateway_ImportRejectsMalformed(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	src := filepath.Join(t.TempDir(), "broken.lista")
	if err := os.WriteFile(src, []byte("no list here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Import(context.Background(), src, ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestResolve_RelativeToStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	if got := s.Resolve(""); got != filepath.Join(dir, DefaultFileName) {
		t.Fatalf("Resolve(\"\")=%s", got)
	}
	if got := s.outlineKey(s.Resolve("curso/a.lista")); got != "curso/a.lista" {
		t.Fatalf("outlineKey=%s", got)
	}
}
