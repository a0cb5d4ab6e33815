package cell

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/atomcells/internal/voronoi"
)

func hexagon(t *testing.T) *voronoi.Voronoi {
	t.Helper()
	b := voronoi.NewBuilder()
	b.SetRadius(10)
	b.AddSite(0, 0)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		b.AddSite(math.Cos(a), math.Sin(a))
	}
	v, err := b.Voronoi()
	require.NoError(t, err)
	return v
}

func TestOutlineSingle(t *testing.T) {
	v := hexagon(t)
	centre := v.SiteByID(0)

	wall := Outline([]voronoi.Site{centre})
	assert.Len(t, wall, 6)

	// a lone cell is its own boundary
	perimeter := 0.0
	for _, e := range centre.Edges() {
		perimeter += e[1].Sub(e[0]).Norm()
	}
	assert.InDelta(t, perimeter, Perimeter(wall), 1e-12)
}

func TestOutlineDropsSharedEdges(t *testing.T) {
	v := hexagon(t)
	centre, right := v.SiteByID(0), v.SiteByID(1)

	both := Outline([]voronoi.Site{centre, right})
	alone := len(centre.Edges()) + len(right.Edges())
	assert.Len(t, both, alone-2, "the shared ridge must be dropped from both cells")

	shared := map[[2]r2.Point]bool{}
	for _, e := range both {
		assert.False(t, shared[e], "edge %v listed twice", e)
		shared[e] = true
	}
}

func TestOutlineEverything(t *testing.T) {
	v := hexagon(t)
	wall := Outline(v.Sites())

	// only the outer edges between far vertices remain
	for _, e := range wall {
		for _, p := range e {
			assert.Greater(t, p.Norm(), 5.0, "interior vertex %v on the outline", p)
		}
	}
	assert.Len(t, wall, 6)
}

func TestOutlineEmpty(t *testing.T) {
	assert.Empty(t, Outline(nil))
	assert.Equal(t, 0.0, Perimeter(nil))
}
