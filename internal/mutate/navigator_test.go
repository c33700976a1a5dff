package mutate

import (
	"math/rand"
	"testing"

	"temario/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(pairs ...any) []model.Item {
	out := make([]model.Item, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Item{Depth: pairs[i].(int), Text: pairs[i+1].(string)})
	}
	return out
}

func TestSubtreeEnd(t *testing.T) {
	t.Parallel()

	xs := items(1, "A", 2, "B", 2, "C", 1, "D")
	assert.Equal(t, 2, SubtreeEnd(xs, 0))
	assert.Equal(t, 1, SubtreeEnd(xs, 1))
	assert.Equal(t, 2, SubtreeEnd(xs, 2))
	assert.Equal(t, 3, SubtreeEnd(xs, 3))

	deep := items(1, "A", 2, "B", 3, "C", 4, "D", 2, "E")
	assert.Equal(t, 4, SubtreeEnd(deep, 0))
	assert.Equal(t, 3, SubtreeEnd(deep, 1))
}

func TestPrecedingSiblingSubtree(t *testing.T) {
	t.Parallel()

	xs := items(1, "A", 2, "B", 2, "C", 1, "D")
	tests := []struct {
		name string
		i    int
		want Range
		ok   bool
	}{
		{name: "first item", i: 0, ok: false},
		{name: "first child", i: 1, ok: false},
		{name: "second child", i: 2, want: Range{1, 1}, ok: true},
		{name: "root after subtree", i: 3, want: Range{0, 2}, ok: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := PrecedingSiblingSubtree(xs, tt.i)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFollowingSiblingSubtree(t *testing.T) {
	t.Parallel()

	xs := items(1, "A", 2, "B", 2, "C", 1, "D", 2, "E", 3, "F")
	tests := []struct {
		name string
		i    int
		want Range
		ok   bool
	}{
		{name: "root with subtree", i: 0, want: Range{3, 5}, ok: true},
		{name: "first child", i: 1, want: Range{2, 2}, ok: true},
		{name: "last child", i: 2, ok: false},
		{name: "last root", i: 3, ok: false},
		{name: "last item", i: 5, ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FollowingSiblingSubtree(xs, tt.i)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNavigator_RangesAgreeWithBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 300; n++ {
		xs := randomOutline(rng, 1+rng.Intn(25)).Items
		for i := range xs {
			end := SubtreeEnd(xs, i)
			require.GreaterOrEqual(t, end, i)
			for k := i + 1; k <= end; k++ {
				require.Greater(t, xs[k].Depth, xs[i].Depth)
			}
			if end+1 < len(xs) {
				require.LessOrEqual(t, xs[end+1].Depth, xs[i].Depth)
			}

			if r, ok := PrecedingSiblingSubtree(xs, i); ok {
				require.Equal(t, xs[i].Depth, xs[r.Start].Depth)
				require.Equal(t, i-1, r.End)
				require.Equal(t, r.End, SubtreeEnd(xs, r.Start))
			} else if i > 0 {
				require.True(t, xs[i-1].Depth < xs[i].Depth, "missed sibling before %d in %v", i, xs)
			}

			if r, ok := FollowingSiblingSubtree(xs, i); ok {
				require.Equal(t, xs[i].Depth, xs[r.Start].Depth)
				require.Equal(t, end+1, r.Start)
			}
		}
	}
}

func randomOutline(rng *rand.Rand, n int) *model.Outline {
	xs := make([]model.Item, 0, n)
	prev := 0
	for i := 0; i < n; i++ {
		d := 1
		if prev > 0 {
			d = 1 + rng.Intn(min(prev+1, model.MaxDepth))
		}
		xs = append(xs, model.Item{Depth: d, Text: string(rune('a' + i%26))})
		prev = d
	}
	return model.NewOutline(xs)
}
