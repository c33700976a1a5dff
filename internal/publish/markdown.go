package publish

import (
	"bytes"
	"strings"

	"temario/internal/model"
)

// RenderOptions controls the Markdown rendering of an outline.
type RenderOptions struct {
	// Title becomes the top-level "# " heading when set.
	Title string
	// HeadingDepth is the deepest level rendered as a heading; deeper items become
	// nested list entries. Zero means 2.
	HeadingDepth int
	// Numbered prefixes every entry with its derived number ("1.3.2").
	Numbered bool
}

func (opt RenderOptions) headingDepth() int {
	switch {
	case opt.HeadingDepth <= 0:
		return 2
	case opt.HeadingDepth > 5:
		// "# " is the title; six hashes is the deepest heading.
		return 5
	default:
		return opt.HeadingDepth
	}
}

// RenderMarkdown renders the outline as a Markdown document. Item text is passed through
// unchanged (inline HTML is valid Markdown).
func RenderMarkdown(o *model.Outline, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	if t := strings.TrimSpace(opt.Title); t != "" {
		writeLn("# " + t)
		writeLn("")
	}
	if o.Empty() {
		writeLn("_(empty outline)_")
		return buf.String()
	}

	hd := opt.headingDepth()
	inList := false
	for _, it := range o.Items {
		label := oneLine(it.Text)
		if opt.Numbered {
			label = it.Number() + " " + label
		}
		if it.Depth <= hd {
			if inList {
				writeLn("")
				inList = false
			}
			writeLn(strings.Repeat("#", it.Depth+1) + " " + label)
			writeLn("")
			continue
		}
		indent := strings.Repeat("  ", it.Depth-hd-1)
		writeLn(indent + "- " + label)
		inList = true
	}
	return buf.String()
}

// RenderNumbered renders one line per item, indented by depth and prefixed with its number.
func RenderNumbered(o *model.Outline) string {
	var sb strings.Builder
	for _, it := range o.Slots() {
		sb.WriteString(strings.Repeat("  ", max(it.Depth-1, 0)))
		sb.WriteString(it.Number())
		if it.Text != "" {
			sb.WriteString(" ")
			sb.WriteString(oneLine(it.Text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
