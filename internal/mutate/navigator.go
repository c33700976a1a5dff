package mutate

import "temario/internal/model"

// Range is an inclusive index range [Start, End] into an outline's items.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int { return r.End - r.Start + 1 }

// SubtreeEnd returns the last index of the subtree rooted at i: the scan stops before the
// first following item whose depth is <= items[i].Depth. The result is always >= i.
func SubtreeEnd(items []model.Item, i int) int {
	d := items[i].Depth
	k := i
	for k+1 < len(items) && items[k+1].Depth > d {
		k++
	}
	return k
}

// Subtree returns the range covering item i and all its descendants.
func Subtree(items []model.Item, i int) Range {
	return Range{Start: i, End: SubtreeEnd(items, i)}
}

// PrecedingSiblingSubtree returns the subtree of the same-depth sibling immediately
// before item i. ok is false when i is the first child of its parent (or the first item).
func PrecedingSiblingSubtree(items []model.Item, i int) (Range, bool) {
	d := items[i].Depth
	p := i - 1
	if p < 0 || items[p].Depth < d {
		return Range{}, false
	}
	s := p
	for s >= 0 && items[s].Depth > d {
		s--
	}
	// Depth drops at most one level per step backwards, so s lands on depth d.
	if s < 0 || items[s].Depth != d {
		return Range{}, false
	}
	return Range{Start: s, End: p}, true
}

// FollowingSiblingSubtree returns the subtree of the same-depth sibling immediately after
// item i's own subtree. ok is false when i is the last child of its parent.
func FollowingSiblingSubtree(items []model.Item, i int) (Range, bool) {
	d := items[i].Depth
	q := SubtreeEnd(items, i) + 1
	if q >= len(items) || items[q].Depth != d {
		return Range{}, false
	}
	return Range{Start: q, End: SubtreeEnd(items, q)}, true
}

// swapAdjacent exchanges two adjacent ranges a (first) and b (second) in place.
func swapAdjacent(items []model.Item, a, b Range) {
	seg := make([]model.Item, 0, a.Len()+b.Len())
	seg = append(seg, items[b.Start:b.End+1]...)
	seg = append(seg, items[a.Start:a.End+1]...)
	copy(items[a.Start:b.End+1], seg)
}
