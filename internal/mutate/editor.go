package mutate

import (
	"fmt"
	"slices"
	"strings"

	"temario/internal/codec"
	"temario/internal/model"
)

// DepthPolicy selects how Indent/Outdent treat the targeted item's descendants.
type DepthPolicy string

const (
	// PolicyLiteral changes only the targeted item and never checks its neighbours.
	// It can leave a child two levels below its parent after an Outdent.
	PolicyLiteral DepthPolicy = "literal"
	// PolicyGuarded changes only the targeted item and refuses changes that would
	// break the one-level-at-a-time nesting rule.
	PolicyGuarded DepthPolicy = "guarded"
	// PolicySubtree moves the whole subtree with the item.
	PolicySubtree DepthPolicy = "subtree"
)

func ParseDepthPolicy(s string) (DepthPolicy, error) {
	switch DepthPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyGuarded:
		return PolicyGuarded, nil
	case PolicyLiteral:
		return PolicyLiteral, nil
	case PolicySubtree:
		return PolicySubtree, nil
	default:
		return "", fmt.Errorf("unknown depth policy: %q (use literal|guarded|subtree)", s)
	}
}

// Editor performs one structural operation at a time on an exclusively owned outline.
// Every method leaves the outline untouched when it returns an error.
type Editor struct {
	Policy       DepthPolicy
	MaxTextBytes int
}

// Result describes a completed operation. Index is the affected item's position after
// the operation.
type Result struct {
	Op      string `json:"op"`
	Index   int    `json:"index"`
	Changed bool   `json:"changed"`
}

func (e Editor) policy() DepthPolicy {
	if e.Policy == "" {
		return PolicyGuarded
	}
	return e.Policy
}

func (e Editor) maxText() int {
	if e.MaxTextBytes <= 0 {
		return model.DefaultMaxTextBytes
	}
	return e.MaxTextBytes
}

func (e Editor) checkText(text string) error {
	if strings.TrimSpace(text) == "" {
		return EmptyTextError{}
	}
	if strings.Contains(text, codec.ItemEnd) {
		return InvalidTextError{Reason: "must not contain " + codec.ItemEnd}
	}
	if len(text) > e.maxText() {
		return InvalidTextError{Reason: fmt.Sprintf("longer than %d bytes", e.maxText())}
	}
	return nil
}

func checkIndex(o *model.Outline, i int) error {
	if i < 0 || i >= o.Len() {
		return IndexOutOfRangeError{Index: i, Len: o.Len()}
	}
	return nil
}

// InsertDepthWindow returns the legal depth range for a new item placed at position pos.
func InsertDepthWindow(items []model.Item, pos int) (lo, hi int) {
	hi = 1
	if pos > 0 {
		hi = min(model.MaxDepth, items[pos-1].Depth+1)
	}
	lo = 1
	if pos < len(items) {
		lo = max(1, items[pos].Depth-1)
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Insert places a new item right after index after (-1 inserts at the start). An
// out-of-range depth is clamped into the legal window at that position.
func (e Editor) Insert(o *model.Outline, after, depth int, text string) (Result, error) {
	if err := e.checkText(text); err != nil {
		return Result{}, err
	}
	n := o.Len()
	if n == 0 && after == 0 {
		// The placeholder slot of an empty outline.
		after = -1
	}
	if after < -1 || after >= n {
		return Result{}, IndexOutOfRangeError{Index: after, Len: n}
	}
	pos := after + 1
	lo, hi := InsertDepthWindow(o.Items, pos)
	depth = min(max(depth, lo), hi)

	o.Items = slices.Insert(o.Items, pos, model.Item{Depth: depth, Text: text})
	o.Recompute()
	return Result{Op: "insert", Index: pos, Changed: true}, nil
}

// Modify replaces the text of an existing item.
func (e Editor) Modify(o *model.Outline, index int, text string) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	if err := e.checkText(text); err != nil {
		return Result{}, err
	}
	if o.Items[index].Text == text {
		return Result{Op: "modify", Index: index}, nil
	}
	o.Items[index].Text = text
	return Result{Op: "modify", Index: index, Changed: true}, nil
}

// Remove deletes a leaf item.
func (e Editor) Remove(o *model.Outline, index int) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	if hasChildren(o.Items, index) {
		return Result{}, HasChildrenError{Index: index}
	}
	o.Items = slices.Delete(o.Items, index, index+1)
	o.Recompute()
	return Result{Op: "remove", Index: index, Changed: true}, nil
}

// MoveUp swaps the item's subtree with the preceding sibling subtree.
func (e Editor) MoveUp(o *model.Outline, index int) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	prev, ok := PrecedingSiblingSubtree(o.Items, index)
	if !ok {
		return Result{}, NoSiblingError{Index: index}
	}
	swapAdjacent(o.Items, prev, Subtree(o.Items, index))
	o.Recompute()
	return Result{Op: "move-up", Index: prev.Start, Changed: true}, nil
}

// MoveDown swaps the item's subtree with the following sibling subtree.
func (e Editor) MoveDown(o *model.Outline, index int) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	next, ok := FollowingSiblingSubtree(o.Items, index)
	if !ok {
		return Result{}, NoSiblingError{Index: index, Following: true}
	}
	swapAdjacent(o.Items, Subtree(o.Items, index), next)
	o.Recompute()
	return Result{Op: "move-down", Index: index + next.Len(), Changed: true}, nil
}

// Indent increases the nesting depth of the item (one level deeper).
func (e Editor) Indent(o *model.Outline, index int) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	items := o.Items
	d := items[index].Depth
	if d >= model.MaxDepth {
		return Result{}, DepthAtBoundError{Index: index, Depth: d}
	}

	r := Range{Start: index, End: index}
	switch e.policy() {
	case PolicyLiteral:
	case PolicyGuarded, PolicySubtree:
		if index == 0 || items[index-1].Depth < d {
			return Result{}, DepthJumpError{Index: index, Reason: "no preceding sibling to nest under"}
		}
		if e.policy() == PolicySubtree {
			r = Subtree(items, index)
			if deepest := maxDepthIn(items, r); deepest >= model.MaxDepth {
				return Result{}, DepthAtBoundError{Index: index, Depth: deepest}
			}
		}
	}
	shiftDepth(items, r, +1)
	o.Recompute()
	return Result{Op: "indent", Index: index, Changed: true}, nil
}

// Outdent decreases the nesting depth of the item (one level shallower).
func (e Editor) Outdent(o *model.Outline, index int) (Result, error) {
	if err := checkIndex(o, index); err != nil {
		return Result{}, err
	}
	items := o.Items
	d := items[index].Depth
	if d <= 1 {
		return Result{}, DepthAtBoundError{Index: index, Depth: d}
	}

	r := Range{Start: index, End: index}
	switch e.policy() {
	case PolicyLiteral:
	case PolicyGuarded:
		if hasChildren(items, index) {
			return Result{}, DepthJumpError{Index: index, Reason: "children would end up two levels below their parent"}
		}
	case PolicySubtree:
		r = Subtree(items, index)
	}
	shiftDepth(items, r, -1)
	o.Recompute()
	return Result{Op: "outdent", Index: index, Changed: true}, nil
}

func hasChildren(items []model.Item, i int) bool {
	return i+1 < len(items) && items[i+1].Depth > items[i].Depth
}

func maxDepthIn(items []model.Item, r Range) int {
	deepest := 0
	for k := r.Start; k <= r.End; k++ {
		deepest = max(deepest, items[k].Depth)
	}
	return deepest
}

func shiftDepth(items []model.Item, r Range, delta int) {
	for k := r.Start; k <= r.End; k++ {
		items[k].Depth += delta
	}
}
