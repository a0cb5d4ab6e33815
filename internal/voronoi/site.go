package voronoi

import (
	"github.com/golang/geo/r2"
)

// Site exposes useful functions of a voronoi diagram Site
type Site interface {
	ID() int
	Point() r2.Point

	// Vertices of the bounded region, counterclockwise
	Vertices() []r2.Point
	// VertexIDs are the indices of Vertices() in the diagram's vertex list
	VertexIDs() []int
	Edges() [][2]r2.Point
	Contains(x, y float64) bool
	Bounds() r2.Rect
	Area() float64
	Neighbours() []Site

	// Unbounded is true if the raw region ran off to infinity & was
	// closed with synthetic vertices.
	Unbounded() bool
}

// vSite is a wrapper around Voronoi & one of its regions
type vSite struct {
	id     int
	parent *Voronoi
	poly   *Polygon
}

// ID of this site
func (s *vSite) ID() int {
	return s.id
}

// Point returns the site centre
func (s *vSite) Point() r2.Point {
	return s.parent.diagram.Points[s.id]
}

// buildPolygon resolves the region's vertex ids
func (s *vSite) buildPolygon() {
	s.poly = NewPolygon(s.parent.result.Polygon(s.id))
}

// Vertices returns all vertexes (through which edges pass) of the site
func (s *vSite) Vertices() []r2.Point {
	if s.poly == nil {
		s.buildPolygon()
	}
	return s.poly.Points
}

// VertexIDs returns the vertex indices of the site's region
func (s *vSite) VertexIDs() []int {
	return s.parent.result.Regions[s.id]
}

// Edges returns all edges surrounding this site
func (s *vSite) Edges() [][2]r2.Point {
	vs := s.Vertices()
	edges := make([][2]r2.Point, len(vs))
	for i, v := range vs {
		edges[i] = [2]r2.Point{v, vs[(i+1)%len(vs)]}
	}
	return edges
}

// Contains returns if this site's region contains x,y
func (s *vSite) Contains(x, y float64) bool {
	if s.poly == nil {
		s.buildPolygon()
	}
	return s.poly.Contains(r2.Point{X: x, Y: y})
}

// Bounds returns a rectangle that necessarily contains all points in the site
func (s *vSite) Bounds() r2.Rect {
	if s.poly == nil {
		s.buildPolygon()
	}
	return s.poly.Bounds()
}

// Area of the site's region
func (s *vSite) Area() float64 {
	if s.poly == nil {
		s.buildPolygon()
	}
	return s.poly.SignedArea()
}

// Neighbours returns all Sites that share a ridge with this site.
func (s *vSite) Neighbours() []Site {
	ids := s.parent.ridges.Neighbours(s.id)
	out := make([]Site, len(ids))
	for i, id := range ids {
		out[i] = s.parent.sites[id]
	}
	return out
}

// Unbounded returns if the raw region needed closing
func (s *vSite) Unbounded() bool {
	return !isFinite(s.parent.diagram.Region(s.id))
}
