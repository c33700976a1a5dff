package tui

import (
	"context"
	"errors"
	"fmt"

	"temario/internal/model"
	"temario/internal/mutate"
	"temario/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeInsertSibling
	modeInsertChild
	modeModify
	modeConfirmRemove
)

type editorModel struct {
	ctx    context.Context
	gw     *store.Gateway
	name   string
	editor mutate.Editor

	outline  *model.Outline
	path     string
	revision string

	cursor int
	top    int
	width  int
	height int

	mode  inputMode
	input textinput.Model

	status    string
	statusErr bool
}

func newEditorModel(ctx context.Context, g *store.Gateway, name string, ed mutate.Editor) (editorModel, error) {
	ld, err := g.Open(name)
	if err != nil {
		return editorModel{}, err
	}
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = ed.MaxTextBytes
	if in.CharLimit <= 0 {
		in.CharLimit = model.DefaultMaxTextBytes
	}
	return editorModel{
		ctx:      ctx,
		gw:       g,
		name:     name,
		editor:   ed,
		outline:  ld.Outline,
		path:     ld.Path,
		revision: ld.Revision,
		width:    80,
		height:   24,
		input:    in,
	}, nil
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, m.width-4)
		m.scrollToCursor()
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeNormal {
			return m.updateNormal(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m editorModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.scrollToCursor()
	case "G", "end":
		m.cursor = len(m.outline.Slots()) - 1
		m.scrollToCursor()
	case "K", "shift+up":
		m.apply(mutate.Op{Kind: mutate.OpMoveUp, Index: m.cursor})
	case "J", "shift+down":
		m.apply(mutate.Op{Kind: mutate.OpMoveDown, Index: m.cursor})
	case ">", "tab":
		m.apply(mutate.Op{Kind: mutate.OpIndent, Index: m.cursor})
	case "<", "shift+tab":
		m.apply(mutate.Op{Kind: mutate.OpOutdent, Index: m.cursor})
	case "a", "o":
		return m.startInput(modeInsertSibling, "")
	case "c":
		if m.outline.Empty() {
			return m.startInput(modeInsertSibling, "")
		}
		return m.startInput(modeInsertChild, "")
	case "e", "enter":
		if m.outline.Empty() {
			return m.startInput(modeInsertSibling, "")
		}
		return m.startInput(modeModify, m.outline.Items[m.cursor].Text)
	case "d", "x":
		if m.outline.Empty() {
			return m, nil
		}
		m.mode = modeConfirmRemove
		m.setStatus(fmt.Sprintf("remove %s? (y/n)", m.outline.Items[m.cursor].Number()), false)
	case "r":
		m.reload()
	}
	return m, nil
}

func (m editorModel) startInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m editorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmRemove {
		if msg.String() == "y" || msg.String() == "Y" {
			m.mode = modeNormal
			m.apply(mutate.Op{Kind: mutate.OpRemove, Index: m.cursor})
			return m, nil
		}
		m.mode = modeNormal
		m.setStatus("cancelled", false)
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := m.input.Value()
		mode := m.mode
		m.mode = modeNormal
		m.input.Blur()
		m.apply(m.inputOp(mode, text))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editorModel) inputOp(mode inputMode, text string) mutate.Op {
	if m.outline.Empty() {
		return mutate.Op{Kind: mutate.OpInsert, Index: -1, Depth: 1, Text: text}
	}
	cur := m.outline.Items[m.cursor]
	switch mode {
	case modeModify:
		return mutate.Op{Kind: mutate.OpModify, Index: m.cursor, Text: text}
	case modeInsertChild:
		return mutate.Op{Kind: mutate.OpInsert, Index: m.cursor, Depth: cur.Depth + 1, Text: text}
	default:
		// A sibling goes after the current item's whole subtree.
		end := mutate.SubtreeEnd(m.outline.Items, m.cursor)
		return mutate.Op{Kind: mutate.OpInsert, Index: end, Depth: cur.Depth, Text: text}
	}
}

// apply runs one operation through the gateway and refreshes the view from its outcome.
func (m *editorModel) apply(op mutate.Op) {
	out, err := m.gw.Edit(m.ctx, m.name, m.editor, op, "")
	if out != nil {
		m.outline = out.Outline
		m.path = out.Path
		m.revision = out.Revision
	}
	switch {
	case err == nil:
		if out.Result.Changed {
			m.cursor = out.Result.Index
			m.setStatus(op.Kind+": saved", false)
		} else {
			m.setStatus(op.Kind+": no change", false)
		}
	case mutate.IsNoop(err):
		m.setStatus(op.Kind+": already at the depth limit", false)
	case mutate.IsRecoverable(err):
		m.setStatus(describeError(err), true)
	default:
		m.setStatus(op.Kind+" not saved: "+err.Error(), true)
	}
	m.clampCursor()
	m.scrollToCursor()
}

func (m *editorModel) reload() {
	ld, err := m.gw.Open(m.name)
	if err != nil {
		m.setStatus(describeError(err), true)
		return
	}
	m.outline, m.path, m.revision = ld.Outline, ld.Path, ld.Revision
	m.clampCursor()
	m.scrollToCursor()
	m.setStatus("reloaded", false)
}

func (m *editorModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *editorModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.scrollToCursor()
}

func (m *editorModel) clampCursor() {
	n := len(m.outline.Slots())
	m.cursor = min(max(m.cursor, 0), n-1)
}

func (m *editorModel) listHeight() int {
	// Header, blank line, input/status, help.
	return max(1, m.height-4)
}

func (m *editorModel) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+h {
		m.top = m.cursor - h + 1
	}
	m.top = max(m.top, 0)
}

func describeError(err error) string {
	var ns mutate.NoSiblingError
	switch {
	case errors.Is(err, mutate.ErrHasChildren):
		return "remove the children first"
	case errors.As(err, &ns):
		if ns.Following {
			return "no following sibling to swap with"
		}
		return "no preceding sibling to swap with"
	case errors.Is(err, mutate.ErrEmptyText):
		return "text must not be empty"
	}
	return err.Error()
}
