package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EditEvent is one row of an outline's edit history.
type EditEvent struct {
	EventID  string          `json:"eventId"`
	Outline  string          `json:"outline"`
	Op       string          `json:"op"`
	Index    int             `json:"index"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Revision string          `json:"revision"`
	IssuedAt time.Time       `json:"issuedAt"`
}

// AppendEdit records an applied operation in the index.
func (s Store) AppendEdit(ctx context.Context, outlineKey, op string, index int, payload any, revision string) (EditEvent, error) {
	raw := []byte("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return EditEvent{}, err
		}
		raw = b
	}
	ev := EditEvent{
		EventID:  uuid.NewString(),
		Outline:  outlineKey,
		Op:       strings.TrimSpace(op),
		Index:    index,
		Payload:  raw,
		Revision: revision,
		IssuedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	db, err := s.openIndex(ctx)
	if err != nil {
		return EditEvent{}, err
	}
	defer db.Close()

	storeID, err := ensureMetaUUID(ctx, db, "store_id")
	if err != nil {
		return EditEvent{}, err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO edit_events(event_id, store_id, outline_key, op, item_index, payload_json, revision, issued_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.EventID, storeID, ev.Outline, ev.Op, ev.Index, string(ev.Payload), ev.Revision, ev.IssuedAt.UnixMilli())
	if err != nil {
		return EditEvent{}, err
	}
	return ev, nil
}

// ListEdits returns the most recent edits of an outline, newest first. limit <= 0
// returns everything.
func (s Store) ListEdits(ctx context.Context, outlineKey string, limit int) ([]EditEvent, error) {
	db, err := s.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, outline_key, op, item_index, payload_json, revision, issued_at_unixms
		FROM edit_events WHERE outline_key = ? ORDER BY issued_at_unixms DESC, rowid DESC`
	args := []any{outlineKey}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EditEvent{}
	for rows.Next() {
		var ev EditEvent
		var payload string
		var issued int64
		if err := rows.Scan(&ev.EventID, &ev.Outline, &ev.Op, &ev.Index, &payload, &ev.Revision, &issued); err != nil {
			return nil, err
		}
		ev.Payload = json.RawMessage(payload)
		ev.IssuedAt = time.UnixMilli(issued).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}
