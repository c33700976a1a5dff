package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SourceType records where an outline's current content came from.
type SourceType string

const (
	SourceUnknown  SourceType = ""
	SourceEditor   SourceType = "editor"
	SourceImported SourceType = "imported"
)

func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(strings.ToLower(strings.TrimSpace(s))) {
	case SourceEditor:
		return SourceEditor, nil
	case SourceImported:
		return SourceImported, nil
	case SourceUnknown:
		return SourceUnknown, nil
	default:
		return SourceUnknown, fmt.Errorf("unknown source type: %q", s)
	}
}

// SourceFlags is the external "outline source type" flag the editor sets after every
// successful structural change.
type SourceFlags interface {
	SetSourceType(ctx context.Context, outlineKey string, t SourceType) error
	SourceType(ctx context.Context, outlineKey string) (SourceType, error)
}

// SQLiteFlags stores source types in the store's index.sqlite.
type SQLiteFlags struct {
	Store Store
}

var _ SourceFlags = SQLiteFlags{}

func (f SQLiteFlags) SetSourceType(ctx context.Context, outlineKey string, t SourceType) error {
	db, err := f.Store.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO outline_source(outline_key, source_type, updated_at_unixms) VALUES(?, ?, ?)`,
		outlineKey, string(t), time.Now().UTC().UnixMilli())
	return err
}

func (f SQLiteFlags) SourceType(ctx context.Context, outlineKey string) (SourceType, error) {
	db, err := f.Store.openIndex(ctx)
	if err != nil {
		return SourceUnknown, err
	}
	defer db.Close()
	var v string
	err = db.QueryRowContext(ctx, `SELECT source_type FROM outline_source WHERE outline_key = ?`, outlineKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return SourceUnknown, nil
	}
	if err != nil {
		return SourceUnknown, err
	}
	return ParseSourceType(v)
}

// MemoryFlags keeps source types in memory. Tests use it in place of the index.
type MemoryFlags struct {
	mu sync.Mutex
	m  map[string]SourceType
}

var _ SourceFlags = (*MemoryFlags)(nil)

func (f *MemoryFlags) SetSourceType(_ context.Context, outlineKey string, t SourceType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m == nil {
		f.m = map[string]SourceType{}
	}
	f.m[outlineKey] = t
	return nil
}

func (f *MemoryFlags) SourceType(_ context.Context, outlineKey string) (SourceType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[outlineKey], nil
}
