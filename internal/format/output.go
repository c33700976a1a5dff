package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads that have a human-readable rendering.
type Texter interface {
	Text() string
}

// Formats lists the accepted --format values.
var Formats = []string{"json", "edn", "text"}

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (payloads implementing Texter; anything else falls back to pretty JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON writes strict JSON.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	// Item text is an HTML fragment; keep it readable.
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteText writes the Texter rendering of v, unwrapping a {"data": ...} envelope.
func WriteText(w io.Writer, v any) error {
	if env, ok := v.(map[string]any); ok && len(env) == 1 {
		if inner, ok := env["data"]; ok {
			v = inner
		}
	}
	t, ok := v.(Texter)
	if !ok {
		return WriteJSON(w, v, true)
	}
	s := t.Text()
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
