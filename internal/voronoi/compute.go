package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/voidshard/atomcells/internal/delaunay"
)

// mergeTolerance is the distance, relative to the point spread, below which
// two circumcentres count as the same Voronoi vertex.
const mergeTolerance = 1e-9

// Compute returns the raw unbounded Voronoi diagram of points as the dual of
// their Delaunay triangulation.
//
// Voronoi vertices are triangle circumcentres, with circumcentres of
// cocircular triangles merged into one vertex. Ridges on the convex hull run
// to Infinity, as does the region of every hull point. Finite regions are
// counterclockwise.
func Compute(points []r2.Point) (*Diagram, error) {
	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, errors.Wrap(ErrDegenerateInput, err.Error())
	}
	if err := tri.Validate(); err != nil {
		return nil, errors.Wrapf(ErrDegenerateInput, "triangulation of %d points: %v", len(points), err)
	}

	bounds := r2.RectFromPoints(points...)
	size := bounds.Size()
	epsilon := mergeTolerance * math.Max(1, math.Max(size.X, size.Y))

	centres := make([]r2.Point, tri.Len())
	for i := range centres {
		centres[i] = tri.Circumcentre(i)
	}
	vertices, vertexOf := mergeVertices(centres, epsilon)

	d := &Diagram{
		Points:      points,
		Vertices:    vertices,
		PointRegion: make([]int, len(points)),
		Regions:     make([][]int, len(points)),
		MinBound:    bounds.Lo(),
		MaxBound:    bounds.Hi(),
	}

	onHull := make([]bool, len(points))
	incident := make([]map[int]bool, len(points))
	for p := range incident {
		incident[p] = map[int]bool{}
	}

	for e, twin := range tri.Halfedges {
		p1 := tri.Triangles[e]
		p2 := tri.Triangles[delaunay.NextHalfedge(e)]
		v1 := vertexOf[e/3]
		incident[p1][v1] = true

		if twin == -1 {
			onHull[p1] = true
			onHull[p2] = true
			d.RidgePoints = append(d.RidgePoints, [2]int{p1, p2})
			d.RidgeVertices = append(d.RidgeVertices, [2]int{v1, Infinity})
			continue
		}
		if twin < e {
			continue // seen from the other side already
		}

		v2 := vertexOf[twin/3]
		if v1 == v2 {
			// cocircular points meet at a single vertex, they share no edge
			continue
		}
		d.RidgePoints = append(d.RidgePoints, [2]int{p1, p2})
		d.RidgeVertices = append(d.RidgeVertices, [2]int{v1, v2})
	}

	for p, site := range points {
		region := make([]int, 0, len(incident[p])+1)
		if onHull[p] {
			region = append(region, Infinity)
		}
		ring := make([]int, 0, len(incident[p]))
		for v := range incident[p] {
			ring = append(ring, v)
		}
		sortAround(site, ring, vertices)
		d.Regions[p] = append(region, ring...)
		d.PointRegion[p] = p
	}

	return d, nil
}

// ComputeCoords is Compute for raw coordinates, rejecting anything not 2D.
func ComputeCoords(coords [][]float64) (*Diagram, error) {
	points, err := PointsFrom(coords)
	if err != nil {
		return nil, err
	}
	return Compute(points)
}

// sortAround orders vertex ids counterclockwise about site, breaking ties by id
// so the result does not depend on map order.
func sortAround(site r2.Point, ids []int, vertices []r2.Point) {
	sort.Slice(ids, func(a, b int) bool {
		pa := vertices[ids[a]].Sub(site)
		pb := vertices[ids[b]].Sub(site)
		aa := math.Atan2(pa.Y, pa.X)
		ab := math.Atan2(pb.Y, pb.X)
		if aa != ab {
			return aa < ab
		}
		return ids[a] < ids[b]
	})
}
