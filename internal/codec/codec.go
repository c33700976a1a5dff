// Package codec reads and writes the on-disk syllabus format:
//
//	<lista>
//	<item nivel="DEPTH">TEXT</item>
//	</lista>
//
// TEXT is an opaque HTML fragment written verbatim. It is not XML: payloads are never
// escaped, so the only reserved sequence inside TEXT is the item-end marker itself.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"unicode/utf8"

	"temario/internal/model"
)

const (
	ListStart = "<lista>"
	ListEnd   = "</lista>"
	ItemStart = "<item"
	ItemEnd   = "</item>"
)

var depthAttrRe = regexp.MustCompile(`(?i)\bnivel\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s/>]+))`)

// MalformedFormatError reports a required marker missing from the stream.
type MalformedFormatError struct {
	Offset int
	Reason string
}

func (e MalformedFormatError) Error() string {
	return fmt.Sprintf("malformed outline at byte %d: %s", e.Offset, e.Reason)
}

// Options tunes decoding.
type Options struct {
	// MaxTextBytes caps each item's text; 0 means model.DefaultMaxTextBytes.
	MaxTextBytes int
}

func (o Options) maxText() int {
	if o.MaxTextBytes <= 0 {
		return model.DefaultMaxTextBytes
	}
	return o.MaxTextBytes
}

// Decode reads the whole stream and returns its items (depth and text only).
func Decode(r io.Reader, opt Options) ([]model.Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, opt)
}

// DecodeBytes parses an in-memory document.
func DecodeBytes(b []byte, opt Options) ([]model.Item, error) {
	start := bytes.Index(b, []byte(ListStart))
	if start < 0 {
		return nil, MalformedFormatError{Offset: 0, Reason: "missing " + ListStart}
	}
	pos := start + len(ListStart)
	maxText := opt.maxText()

	items := []model.Item{}
	for pos < len(b) {
		rest := b[pos:]
		iItem := indexItemTag(rest)
		iEnd := bytes.Index(rest, []byte(ListEnd))
		if iItem < 0 || (iEnd >= 0 && iEnd < iItem) {
			break
		}

		attrStart := pos + iItem + len(ItemStart)
		gt := bytes.IndexByte(b[attrStart:], '>')
		if gt < 0 {
			return nil, MalformedFormatError{Offset: pos + iItem, Reason: "item tag has no closing '>'"}
		}
		attrs := b[attrStart : attrStart+gt]
		depth := parseDepth(attrs)

		textStart := attrStart + gt + 1
		var text []byte
		next := len(b)
		if bytes.HasSuffix(attrs, []byte("/")) {
			// Self-closing <item nivel="2"/>: empty payload.
			next = textStart
		} else if ie := bytes.Index(b[textStart:], []byte(ItemEnd)); ie >= 0 {
			text = b[textStart : textStart+ie]
			next = textStart + ie + len(ItemEnd)
		} else if le := bytes.Index(b[textStart:], []byte(ListEnd)); le >= 0 {
			// Unterminated last item: the payload runs up to the list end.
			text = b[textStart : textStart+le]
			next = textStart + le
		} else {
			text = b[textStart:]
		}

		items = append(items, model.Item{Depth: depth, Text: string(truncateUTF8(text, maxText))})
		pos = next
	}
	return items, nil
}

// indexItemTag finds "<item" followed by whitespace or '>' so "<items" never matches.
func indexItemTag(b []byte) int {
	off := 0
	for {
		i := bytes.Index(b[off:], []byte(ItemStart))
		if i < 0 {
			return -1
		}
		j := off + i + len(ItemStart)
		if j >= len(b) {
			return off + i
		}
		switch b[j] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return off + i
		}
		off = j
	}
}

func parseDepth(attrs []byte) int {
	m := depthAttrRe.FindSubmatch(attrs)
	if m == nil {
		return 1
	}
	raw := m[1]
	if raw == nil {
		raw = m[2]
	}
	if raw == nil {
		raw = m[3]
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil || n < 1 || n > model.MaxDepth {
		return 1
	}
	return n
}

func truncateUTF8(b []byte, max int) []byte {
	if len(b) <= max {
		return b
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}

// Encode writes items in the on-disk format. Invariants are not checked here.
func Encode(w io.Writer, items []model.Item) error {
	_, err := w.Write(Marshal(items))
	return err
}

// Marshal renders items in the on-disk format. It never fails.
func Marshal(items []model.Item) []byte {
	var buf bytes.Buffer
	buf.WriteString(ListStart)
	buf.WriteByte('\n')
	for _, it := range items {
		buf.WriteString(`<item nivel="`)
		buf.WriteString(strconv.Itoa(it.Depth))
		buf.WriteString(`">`)
		buf.WriteString(it.Text)
		buf.WriteString(ItemEnd)
		buf.WriteByte('\n')
	}
	buf.WriteString(ListEnd)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// EmptyDocument is the body written for a freshly created outline file.
func EmptyDocument() []byte { return Marshal(nil) }
