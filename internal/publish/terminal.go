package publish

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu sync.Mutex
	// Keyed by style and wrap width.
	renderers = map[string]*glamour.TermRenderer{}
)

// TerminalStyle picks the glamour style: TEMARIO_MD_STYLE wins, NO_COLOR forces notty.
func TerminalStyle() string {
	switch s := strings.ToLower(strings.TrimSpace(os.Getenv("TEMARIO_MD_STYLE"))); s {
	case styles.LightStyle, styles.DarkStyle, styles.NoTTYStyle, styles.AsciiStyle:
		return s
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}

// RenderTerminal renders Markdown for a terminal of the given width. On renderer
// failure the Markdown source is returned unchanged.
func RenderTerminal(md string, width int, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if style == "" {
		style = TerminalStyle()
	}

	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		// WithAutoStyle may block on terminal background queries.
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
