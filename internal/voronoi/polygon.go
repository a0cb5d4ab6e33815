package voronoi

import (
	"github.com/golang/geo/r2"
)

// A Polygon is a closed ring of points; the last point forms an edge with
// the first.
type Polygon struct {
	Points []r2.Point
}

// NewPolygon: Creates and returns a new pointer to a Polygon
// composed of the passed in Points.
func NewPolygon(points []r2.Point) *Polygon {
	return &Polygon{Points: points}
}

// Bounds returns the smallest rect holding every point of the polygon.
func (p *Polygon) Bounds() r2.Rect {
	if len(p.Points) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(p.Points...)
}

// IsClosed returns whether or not the polygon encloses any area at all.
func (p *Polygon) IsClosed() bool {
	return len(p.Points) >= 3
}

// SignedArea is the shoelace area of the polygon, positive when the points
// run counterclockwise.
func (p *Polygon) SignedArea() float64 {
	sum := 0.0
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		sum += a.Cross(b)
	}
	return sum / 2
}

// Centroid is the area weighted centre of the polygon.
func (p *Polygon) Centroid() r2.Point {
	area := p.SignedArea()
	if area == 0 {
		return centroid(p.Points)
	}
	var cx, cy float64
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		cross := a.Cross(b)
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return r2.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// IsSimple returns true if no two non adjacent edges of the polygon cross.
func (p *Polygon) IsSimple() bool {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a1, a2 := p.Points[i], p.Points[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := p.Points[j], p.Points[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// Contains returns whether or not the polygon contains the given point,
// using the even-odd raycast rule.
func (p *Polygon) Contains(point r2.Point) bool {
	if !p.IsClosed() {
		return false
	}

	contains := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if p.intersectsWithRaycast(point, p.Points[j], p.Points[i]) {
			contains = !contains
		}
	}
	return contains
}

// intersectsWithRaycast reports if a ray cast from point towards +x crosses
// the edge start -> end. Edges are treated as half open in y so a ray passing
// through a shared vertex is counted once.
func (p *Polygon) intersectsWithRaycast(point, start, end r2.Point) bool {
	if (start.Y > point.Y) == (end.Y > point.Y) {
		return false
	}
	x := start.X + (point.Y-start.Y)*(end.X-start.X)/(end.Y-start.Y)
	return point.X < x
}

// segmentsCross returns true if segments a & b properly intersect.
func segmentsCross(a1, a2, b1, b2 r2.Point) bool {
	d1 := a2.Sub(a1).Cross(b1.Sub(a1))
	d2 := a2.Sub(a1).Cross(b2.Sub(a1))
	d3 := b2.Sub(b1).Cross(a1.Sub(b1))
	d4 := b2.Sub(b1).Cross(a2.Sub(b1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
