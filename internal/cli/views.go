package cli

import (
	"fmt"
	"strings"

	"temario/internal/model"
	"temario/internal/publish"
	"temario/internal/store"
)

type itemView struct {
	Position    int    `json:"position"`
	Number      string `json:"number"`
	Depth       int    `json:"depth"`
	Text        string `json:"text"`
	HasChildren bool   `json:"hasChildren"`
}

type outlineView struct {
	Path         string     `json:"path"`
	Revision     string     `json:"revision"`
	MaxDepthUsed int        `json:"maxDepthUsed"`
	Items        []itemView `json:"items"`

	outline *model.Outline
}

func newOutlineView(o *model.Outline, path, revision string) outlineView {
	v := outlineView{Path: path, Revision: revision, MaxDepthUsed: o.MaxDepthUsed, Items: []itemView{}, outline: o}
	for i, it := range o.Items {
		v.Items = append(v.Items, itemView{
			Position:    i + 1,
			Number:      it.Number(),
			Depth:       it.Depth,
			Text:        it.Text,
			HasChildren: it.HasChildren,
		})
	}
	return v
}

func (v outlineView) Text() string {
	return publish.RenderNumbered(v.outline)
}

type editView struct {
	Op       string      `json:"op"`
	Position int         `json:"position"`
	Changed  bool        `json:"changed"`
	Saved    bool        `json:"saved"`
	Note     string      `json:"note,omitempty"`
	Outline  outlineView `json:"outline"`
}

func newEditView(out *store.Outcome, note string) editView {
	return editView{
		Op:       out.Result.Op,
		Position: out.Result.Index + 1,
		Changed:  out.Result.Changed,
		Saved:    out.Saved,
		Note:     note,
		Outline:  newOutlineView(out.Outline, out.Path, out.Revision),
	}
}

func (v editView) Text() string {
	var sb strings.Builder
	switch {
	case v.Changed:
		fmt.Fprintf(&sb, "%s: item %d\n", v.Op, v.Position)
	case v.Note != "":
		fmt.Fprintf(&sb, "%s: no change (%s)\n", v.Op, v.Note)
	default:
		fmt.Fprintf(&sb, "%s: no change\n", v.Op)
	}
	sb.WriteString(v.Outline.Text())
	return sb.String()
}

type historyView struct {
	Path   string            `json:"path"`
	Events []store.EditEvent `json:"events"`
}

func (v historyView) Text() string {
	if len(v.Events) == 0 {
		return "no edits recorded"
	}
	var sb strings.Builder
	for _, ev := range v.Events {
		pos := "-"
		if ev.Index >= 0 {
			pos = fmt.Sprint(ev.Index + 1)
		}
		fmt.Fprintf(&sb, "%s  %-9s %3s  %s\n", ev.IssuedAt.Local().Format("2006-01-02 15:04:05"), ev.Op, pos, shortRev(ev.Revision))
	}
	return sb.String()
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
