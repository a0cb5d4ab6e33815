package voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Infinity is the vertex index standing for the point at infinity in a raw
// (unbounded) diagram. It never appears in a reconstructed region.
const Infinity = -1

var (
	// ErrUnsupportedDimension is returned for points that are not 2D.
	ErrUnsupportedDimension = errors.New("only 2D points are supported")

	// ErrDegenerateInput indicates duplicate, collinear or too few points.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrMissingRidgeData means an unbounded region has no ridge to close it.
	// This can only happen if the diagram provider broke its contract.
	ErrMissingRidgeData = errors.New("missing ridge data")

	// ErrInvalidDiagram means a diagram refers to points, regions or vertices
	// that do not exist.
	ErrInvalidDiagram = errors.New("invalid diagram")
)

// Diagram is a raw, possibly unbounded, 2D Voronoi diagram.
//
// Regions are indexed through PointRegion so that point p owns
// Regions[PointRegion[p]]. Region vertex lists and ridge vertex pairs may hold
// Infinity. RidgePoints[i] are the two points separated by the ridge whose
// ends are RidgeVertices[i].
type Diagram struct {
	Points        []r2.Point
	Vertices      []r2.Point
	PointRegion   []int
	Regions       [][]int
	RidgePoints   [][2]int
	RidgeVertices [][2]int

	// bounds of the input points
	MinBound r2.Point
	MaxBound r2.Point
}

// PointsFrom converts raw coordinates into 2D points, failing with
// ErrUnsupportedDimension if any coordinate does not have exactly two values.
func PointsFrom(coords [][]float64) ([]r2.Point, error) {
	points := make([]r2.Point, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, errors.Wrapf(ErrUnsupportedDimension, "point %d has %d dimensions", i, len(c))
		}
		points[i] = r2.Point{X: c[0], Y: c[1]}
	}
	return points, nil
}

// Region returns the raw vertex indices of the region owned by point p.
func (d *Diagram) Region(p int) []int {
	return d.Regions[d.PointRegion[p]]
}

// Bounds returns the bounding rect of the input points.
func (d *Diagram) Bounds() r2.Rect {
	return r2.RectFromPoints(d.MinBound, d.MaxBound)
}

// validate checks that every index in the diagram refers to something.
func (d *Diagram) validate() error {
	if len(d.PointRegion) != len(d.Points) {
		return errors.Wrapf(ErrInvalidDiagram, "%d points but %d point regions", len(d.Points), len(d.PointRegion))
	}
	if len(d.RidgePoints) != len(d.RidgeVertices) {
		return errors.Wrapf(ErrInvalidDiagram, "%d ridge point pairs but %d ridge vertex pairs", len(d.RidgePoints), len(d.RidgeVertices))
	}

	validVertex := func(v int) bool {
		return v == Infinity || (v >= 0 && v < len(d.Vertices))
	}

	for p, r := range d.PointRegion {
		if r < 0 || r >= len(d.Regions) {
			return errors.Wrapf(ErrInvalidDiagram, "point %d refers to region %d", p, r)
		}
		for _, v := range d.Regions[r] {
			if !validVertex(v) {
				return errors.Wrapf(ErrInvalidDiagram, "region %d refers to vertex %d", r, v)
			}
		}
	}

	for i, rp := range d.RidgePoints {
		for _, p := range rp {
			if p < 0 || p >= len(d.Points) {
				return errors.Wrapf(ErrInvalidDiagram, "ridge %d refers to point %d", i, p)
			}
		}
		for _, v := range d.RidgeVertices[i] {
			if !validVertex(v) {
				return errors.Wrapf(ErrInvalidDiagram, "ridge %d refers to vertex %d", i, v)
			}
		}
	}

	return nil
}

// isFinite returns true if the region holds no Infinity vertex.
func isFinite(region []int) bool {
	for _, v := range region {
		if v < 0 {
			return false
		}
	}
	return true
}
