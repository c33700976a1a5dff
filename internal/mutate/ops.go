package mutate

import (
	"fmt"
	"strings"

	"temario/internal/model"
)

// Op kinds accepted by Apply.
const (
	OpInsert   = "insert"
	OpModify   = "modify"
	OpRemove   = "remove"
	OpMoveUp   = "move-up"
	OpMoveDown = "move-down"
	OpIndent   = "indent"
	OpOutdent  = "outdent"
)

// Op is a single structural edit request, as recorded in the edit history.
type Op struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Depth int    `json:"depth,omitempty"`
	Text  string `json:"text,omitempty"`
}

func (op Op) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("insert after %d at depth %d", op.Index, op.Depth)
	default:
		return fmt.Sprintf("%s %d", op.Kind, op.Index)
	}
}

// Apply dispatches op to the matching Editor method. For inserts, Index is the
// after-index (-1 for the start).
func (e Editor) Apply(o *model.Outline, op Op) (Result, error) {
	switch strings.TrimSpace(op.Kind) {
	case OpInsert:
		return e.Insert(o, op.Index, op.Depth, op.Text)
	case OpModify:
		return e.Modify(o, op.Index, op.Text)
	case OpRemove:
		return e.Remove(o, op.Index)
	case OpMoveUp:
		return e.MoveUp(o, op.Index)
	case OpMoveDown:
		return e.MoveDown(o, op.Index)
	case OpIndent:
		return e.Indent(o, op.Index)
	case OpOutdent:
		return e.Outdent(o, op.Index)
	default:
		return Result{}, fmt.Errorf("unknown operation: %q", op.Kind)
	}
}
