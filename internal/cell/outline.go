package cell

import (
	"sort"

	"github.com/golang/geo/r2"

	"github.com/voidshard/atomcells/internal/voronoi"
)

// edgeKey is an undirected edge, ends ordered so a <= b
type edgeKey struct {
	a, b r2.Point
}

func newEdgeKey(a, b r2.Point) edgeKey {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Outline finds the boundary around all "inside" site(s).
// Notes.
//  1. an edge is on the boundary if exactly one inside site uses it
//  2. edges are matched on exact coordinates; neighbouring cells share
//     vertex coordinates bit for bit, including synthetic far vertices
//  3. edges are returned in a stable order (by their lower end), not as a path
func Outline(inside []voronoi.Site) [][2]r2.Point {
	// deletion strategy: every edge of an inside site starts valid & is
	// removed again when a second inside site turns out to own it
	count := map[edgeKey]int{}
	for _, s := range inside {
		for _, e := range s.Edges() {
			if e[0] == e[1] {
				continue
			}
			count[newEdgeKey(e[0], e[1])]++
		}
	}

	keys := []edgeKey{}
	for k, n := range count {
		if n == 1 {
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return less(keys[i].a, keys[j].a)
		}
		return less(keys[i].b, keys[j].b)
	})

	wall := make([][2]r2.Point, len(keys))
	for i, k := range keys {
		wall[i] = [2]r2.Point{k.a, k.b}
	}
	return wall
}

// Perimeter is the total length of the boundary edges
func Perimeter(wall [][2]r2.Point) float64 {
	sum := 0.0
	for _, e := range wall {
		sum += e[1].Sub(e[0]).Norm()
	}
	return sum
}

func less(p, q r2.Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}
