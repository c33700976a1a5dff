package model

import (
	"strconv"
	"strings"
)

// MaxDepth is the deepest nesting level an outline item may have.
const MaxDepth = 10

// DefaultMaxTextBytes caps the text payload of a single item.
const DefaultMaxTextBytes = 4000

// Item is one node of a syllabus outline. Only Depth and Text are persisted;
// Path and HasChildren are derived by Outline.Recompute.
type Item struct {
	Depth int    `json:"depth"`
	Text  string `json:"text"`

	Path        []int `json:"path,omitempty"`
	HasChildren bool  `json:"hasChildren"`
}

// Number renders the derived path as "1.3.2".
func (it Item) Number() string {
	if len(it.Path) == 0 {
		return ""
	}
	parts := make([]string, 0, len(it.Path))
	for _, n := range it.Path {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ".")
}

// Outline is a flat preorder sequence of items. Position plus depth encode the tree.
type Outline struct {
	Items        []Item `json:"items"`
	MaxDepthUsed int    `json:"maxDepthUsed"`
}

// NewOutline builds an outline from raw (depth, text) records and derives numbering.
func NewOutline(items []Item) *Outline {
	o := &Outline{Items: append([]Item(nil), items...)}
	o.Recompute()
	return o
}

// Len returns the number of stored items (the placeholder is never counted).
func (o *Outline) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Items)
}

// Empty reports whether the outline is the canonical "new document" state.
func (o *Outline) Empty() bool { return o.Len() == 0 }

// Recompute derives Path, HasChildren and MaxDepthUsed in one pass.
func (o *Outline) Recompute() {
	if o == nil {
		return
	}
	var counters [MaxDepth + 1]int
	o.MaxDepthUsed = 0
	for i := range o.Items {
		it := &o.Items[i]
		d := it.Depth
		if d < 1 {
			d = 1
		}
		if d > MaxDepth {
			d = MaxDepth
		}
		counters[d]++
		for k := d + 1; k <= MaxDepth; k++ {
			counters[k] = 0
		}
		path := make([]int, 0, d)
		for k := 1; k <= d; k++ {
			if counters[k] == 0 {
				continue
			}
			path = append(path, counters[k])
		}
		it.Path = path
		it.HasChildren = i+1 < len(o.Items) && o.Items[i+1].Depth > it.Depth
		if it.Depth > o.MaxDepthUsed {
			o.MaxDepthUsed = it.Depth
		}
	}
}

// Placeholder is the synthetic slot shown for an empty outline. It is never persisted.
func Placeholder() Item {
	return Item{Depth: 1, Text: "", Path: []int{1}}
}

// Slots returns the items presented for editing: the stored items, or a single
// placeholder when the outline is empty.
func (o *Outline) Slots() []Item {
	if o.Empty() {
		return []Item{Placeholder()}
	}
	return o.Items
}

// Records returns a copy of the persisted (depth, text) pairs without derived fields.
func (o *Outline) Records() []Item {
	if o == nil {
		return nil
	}
	out := make([]Item, len(o.Items))
	for i, it := range o.Items {
		out[i] = Item{Depth: it.Depth, Text: it.Text}
	}
	return out
}

// Clone returns a deep copy.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	c := &Outline{Items: make([]Item, len(o.Items)), MaxDepthUsed: o.MaxDepthUsed}
	for i, it := range o.Items {
		it.Path = append([]int(nil), it.Path...)
		c.Items[i] = it
	}
	return c
}

// Validate checks the structural invariants and returns the first offending index,
// or -1 when the outline is valid.
func (o *Outline) Validate() int {
	if o == nil {
		return -1
	}
	for i, it := range o.Items {
		if it.Depth < 1 || it.Depth > MaxDepth {
			return i
		}
		if i == 0 && it.Depth != 1 {
			return i
		}
		if i > 0 && it.Depth > o.Items[i-1].Depth+1 {
			return i
		}
	}
	return -1
}
