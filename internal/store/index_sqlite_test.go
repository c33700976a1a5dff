package store

import (
	"context"
	"testing"
)

func TestInit_StableStoreID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	id1, err := s.Init(ctx)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	id2, err := s.Init(ctx)
	if err != nil {
		t.Fatalf("Init again: %v", err)
	}
	if id1 == "" || id1 != id2 {
		t.Fatalf("store id should be stable: %q vs %q", id1, id2)
	}
}

func TestSQLiteFlags_SetAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := SQLiteFlags{Store: Store{Dir: t.TempDir()}}

	got, err := f.SourceType(ctx, "temario.lista")
	if err != nil || got != SourceUnknown {
		t.Fatalf("unset flag: %q, %v", got, err)
	}
	if err := f.SetSourceType(ctx, "temario.lista", SourceImported); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSourceType(ctx, "temario.lista", SourceEditor); err != nil {
		t.Fatal(err)
	}
	got, err = f.SourceType(ctx, "temario.lista")
	if err != nil || got != SourceEditor {
		t.Fatalf("flag: %q, %v", got, err)
	}
}

func TestListEdits_NewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	for i, op := range []string{"insert", "indent", "remove"} {
		if _, err := s.AppendEdit(ctx, "a.lista", op, i, map[string]int{"i": i}, "rev"); err != nil {
			t.Fatalf("AppendEdit: %v", err)
		}
	}
	if _, err := s.AppendEdit(ctx, "b.lista", "insert", 0, nil, "rev"); err != nil {
		t.Fatal(err)
	}

	evs, err := s.ListEdits(ctx, "a.lista", 2)
	if err != nil {
		t.Fatalf("ListEdits: %v", err)
	}
	if len(evs) != 2 || evs[0].Op != "remove" || evs[1].Op != "indent" {
		t.Fatalf("unexpected events: %#v", evs)
	}
	if string(evs[0].Payload) != `{"i":2}` {
		t.Fatalf("payload: %s", evs[0].Payload)
	}

	all, err := s.ListEdits(ctx, "a.lista", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("all events: %d, %v", len(all), err)
	}
}
