package publish

import (
	"strings"

	"temario/internal/model"

	"github.com/disiqueira/gotree/v3"
)

// RenderTree draws the outline as a box-drawing tree rooted at title.
func RenderTree(o *model.Outline, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "."
	}
	root := gotree.New(title)

	// stack[d] is the last node seen at depth d; stack[0] is the root.
	stack := []gotree.Tree{root}
	for _, it := range o.Items {
		d := it.Depth
		if d < 1 {
			d = 1
		}
		// A depth jump (possible under the literal policy) hangs off the deepest open node.
		if d > len(stack) {
			d = len(stack)
		}
		stack = stack[:d]
		node := stack[d-1].Add(it.Number() + " " + oneLine(it.Text))
		stack = append(stack, node)
	}
	return root.Print()
}
