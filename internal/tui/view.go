package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"temario/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const helpLine = "j/k move  K/J reorder  >/< depth  a sibling  c child  e edit  d remove  r reload  q quit"

func (m editorModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %d items  depth %d  policy %s",
		filepath.Base(m.path), m.outline.Len(), m.outline.MaxDepthUsed, m.editor.Policy)
	b.WriteString(fitWidth(styleHeader.Render(header), m.width))
	b.WriteString("\n\n")

	slots := m.outline.Slots()
	end := min(len(slots), m.top+m.listHeight())
	for i := m.top; i < end; i++ {
		b.WriteString(m.renderRow(slots[i], i == m.cursor))
		b.WriteString("\n")
	}
	for i := end - m.top; i < m.listHeight(); i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderBottom())
	b.WriteString("\n")
	b.WriteString(fitWidth(styleMuted.Render(helpLine), m.width))
	return b.String()
}

func (m editorModel) renderRow(it model.Item, selected bool) string {
	indent := strings.Repeat("  ", max(it.Depth-1, 0))
	text := strings.Join(strings.Fields(it.Text), " ")
	if text == "" {
		text = styleMuted.Render("(empty, press a to add an item)")
	}
	marker := "  "
	if it.HasChildren {
		marker = "▸ "
	}
	if selected {
		plain := indent + marker + it.Number() + " " + xansi.Strip(text)
		line := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, fitWidth(plain, m.width))
		return styleSelected.Render(line)
	}
	return fitWidth(indent+marker+styleNumber.Render(it.Number())+" "+text, m.width)
}

func (m editorModel) renderBottom() string {
	switch m.mode {
	case modeInsertSibling, modeInsertChild, modeModify:
		label := map[inputMode]string{
			modeInsertSibling: "new item: ",
			modeInsertChild:   "new child: ",
			modeModify:        "edit: ",
		}[m.mode]
		return renderInputLine(m.width, label+m.input.View())
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return fitWidth(styleError.Render(m.status), m.width)
	}
	return fitWidth(styleOK.Render(m.status), m.width)
}

func renderInputLine(width int, inputView string) string {
	width = max(width, 10)
	// Text inputs must stay on one visual line.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	line := lipgloss.PlaceHorizontal(width, lipgloss.Left, " "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg))
	return fitWidth(styleInput.Render(line), width)
}

// fitWidth truncates s to width cells, keeping ANSI styling intact.
func fitWidth(s string, width int) string {
	if width <= 0 || xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}
