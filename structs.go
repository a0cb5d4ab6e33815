package atomcells

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Atom is the input to a Diagram, one per cell.
type Atom struct {
	Name      string
	Category  Category
	Position  r3.Vector
	SubstName string `json:",omitempty"` // residue / substructure, eg. "LYS12"
}

// Cell is the bounded region of the plane closest to one atom.
type Cell struct {
	// ID is the index of the atom this cell belongs to
	ID int

	Atom     string
	Category Category
	Subst    string `json:",omitempty"`

	// Site is the projected atom position
	Site r2.Point

	// Polygon is the closed region, counterclockwise
	Polygon []r2.Point

	// Unbounded is true if the region originally ran off to infinity
	// & was closed with synthetic far vertices
	Unbounded bool `json:",omitempty"`

	Area float64
}

// Stats holds generic stats about the diagram
type Stats struct {
	// Count of the number of cells of a given category
	CellsByCategory map[Category]int

	// Count of cells that needed closing, by category
	UnboundedByCategory map[Category]int `json:",omitempty"`

	// Total area of bounded (never infinite) cells, by category
	BoundedAreaByCategory map[Category]float64 `json:",omitempty"`
}

// newStats returns blank Stats
func newStats() *Stats {
	return &Stats{
		CellsByCategory:       map[Category]int{},
		UnboundedByCategory:   map[Category]int{},
		BoundedAreaByCategory: map[Category]float64{},
	}
}

// add records a cell
func (s *Stats) add(c *Cell) {
	s.CellsByCategory[c.Category]++
	if c.Unbounded {
		s.UnboundedByCategory[c.Category]++
		return
	}
	s.BoundedAreaByCategory[c.Category] += c.Area
}

// Categories returns every category with at least one cell
func (s *Stats) Categories() []Category {
	out := make([]Category, 0, len(s.CellsByCategory))
	for c := range s.CellsByCategory {
		out = append(out, c)
	}
	sortCategories(out)
	return out
}

// MeanBoundedArea is the mean area of the bounded cells of category c,
// zero when there are none.
func (s *Stats) MeanBoundedArea(c Category) float64 {
	n := s.CellsByCategory[c] - s.UnboundedByCategory[c]
	if n <= 0 {
		return 0
	}
	return s.BoundedAreaByCategory[c] / float64(n)
}
