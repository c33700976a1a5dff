package codec

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"temario/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Basic(t *testing.T) {
	t.Parallel()

	doc := "<lista>\n" +
		`<item nivel="1">Tema 1: <b>Introducción</b></item>` + "\n" +
		`<item nivel="2">Objetivos</item>` + "\n" +
		`<item nivel='3'>Sub</item>` + "\n" +
		`<item nivel=2>Unquoted</item>` + "\n" +
		"</lista>\n"

	items, err := DecodeBytes([]byte(doc), Options{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, model.Item{Depth: 1, Text: "Tema 1: <b>Introducción</b>"}, items[0])
	assert.Equal(t, 2, items[1].Depth)
	assert.Equal(t, 3, items[2].Depth)
	assert.Equal(t, "Unquoted", items[3].Text)
}

func TestDecode_DepthClampedToOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  string
	}{
		{name: "zero", tag: `<item nivel="0">x</item>`},
		{name: "negative", tag: `<item nivel="-3">x</item>`},
		{name: "too deep", tag: `<item nivel="11">x</item>`},
		{name: "garbage", tag: `<item nivel="abc">x</item>`},
		{name: "missing attr", tag: `<item>x</item>`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items, err := DecodeBytes([]byte("<lista>"+tt.tag+"</lista>"), Options{})
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 1, items[0].Depth)
		})
	}
}

func TestDecode_MissingListStart(t *testing.T) {
	t.Parallel()

	_, err := DecodeBytes([]byte(`<item nivel="1">x</item>`), Options{})
	var mf MalformedFormatError
	require.True(t, errors.As(err, &mf), "expected MalformedFormatError, got %v", err)
}

func TestDecode_MissingTagTerminator(t *testing.T) {
	t.Parallel()

	_, err := DecodeBytes([]byte(`<lista><item nivel="1"`), Options{})
	var mf MalformedFormatError
	require.True(t, errors.As(err, &mf), "expected MalformedFormatError, got %v", err)
	assert.Equal(t, len("<lista>"), mf.Offset)
}

func TestDecode_TruncatesButStaysInSync(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 10) // 20 bytes
	doc := "<lista>" +
		`<item nivel="1">` + long + `</item>` +
		`<item nivel="2">next</item>` +
		"</lista>"
	items, err := DecodeBytes([]byte(doc), Options{MaxTextBytes: 5})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "éé", items[0].Text, "must cut on a rune boundary")
	assert.Equal(t, model.Item{Depth: 2, Text: "next"}, items[1])
}

func TestDecode_StopsAtListEnd(t *testing.T) {
	t.Parallel()

	doc := `<lista><item nivel="1">a</item></lista><item nivel="1">ignored</item>`
	items, err := DecodeBytes([]byte(doc), Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDecode_EmptyAndSelfClosing(t *testing.T) {
	t.Parallel()

	items, err := DecodeBytes(EmptyDocument(), Options{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = DecodeBytes([]byte(`<lista></lista>`), Options{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = DecodeBytes([]byte(`<lista><item nivel="1"/><item nivel="2">b</item></lista>`), Options{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "", items[0].Text)
	assert.Equal(t, "b", items[1].Text)
}

func TestDecode_ItemsPrefixIsNotAnItem(t *testing.T) {
	t.Parallel()

	items, err := DecodeBytes([]byte(`<lista><items>noise</items><item nivel="1">a</item></lista>`), Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Text)
}

func TestEncode_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []model.Item{{Depth: 1, Text: "A"}, {Depth: 2, Text: "B <i>x</i>"}}))
	want := "<lista>\n<item nivel=\"1\">A</item>\n<item nivel=\"2\">B <i>x</i></item>\n</lista>\n"
	assert.Equal(t, want, buf.String())
}

func TestRoundTrip_RandomValidOutlines(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	words := []string{"Tema", "Práctica", "<b>negrita</b>", "línea\nnueva", "a & b", "\"quoted\"", ""}
	for n := 0; n < 200; n++ {
		items := randomItems(rng, rng.Intn(30), words)
		got, err := DecodeBytes(Marshal(items), Options{})
		require.NoError(t, err)
		require.Equal(t, items, got)
	}
}

func randomItems(rng *rand.Rand, n int, words []string) []model.Item {
	items := make([]model.Item, 0, n)
	prev := 0
	for i := 0; i < n; i++ {
		d := 1
		if prev > 0 {
			d = 1 + rng.Intn(prev+1)
			if d > model.MaxDepth {
				d = model.MaxDepth
			}
		}
		items = append(items, model.Item{Depth: d, Text: words[rng.Intn(len(words))]})
		prev = d
	}
	return items
}
