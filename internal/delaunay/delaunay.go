// Package delaunay wraps github.com/fogleman/delaunay for r2 points,
// rejecting input it cannot triangulate exactly.
package delaunay

import (
	"math"
	"sort"

	fd "github.com/fogleman/delaunay"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrTooFewPoints is returned when asked to triangulate less than three points.
	ErrTooFewPoints = errors.New("triangulation requires at least three points")

	// ErrCollinear is returned when every point lies on a single line.
	ErrCollinear = errors.New("all points are collinear")

	// ErrDuplicatePoint is returned when two input points are identical.
	ErrDuplicatePoint = errors.New("duplicate point")
)

// Triangulation stores the points, convex hull, triangles and half edges from a Delaunay triangulation.
//
// Triangles holds counterclockwise index triples into Points. Halfedges[i]
// is the index of the twin of the half edge Triangles[i] -> Triangles[next(i)]
// or -1 if that edge lies on the convex hull.
type Triangulation struct {
	Points     []r2.Point
	ConvexHull []int
	Triangles  []int
	Halfedges  []int

	// hull as reported by the triangulator, cross checked in Validate
	reported []r2.Point
}

// Triangulate returns a Delaunay triangulation of the provided points.
func Triangulate(points []r2.Point) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d", len(points))
	}
	if err := checkDuplicates(points); err != nil {
		return nil, err
	}
	if collinear(points) {
		return nil, ErrCollinear
	}

	in := make([]fd.Point, len(points))
	for i, p := range points {
		in[i] = fd.Point{X: p.X, Y: p.Y}
	}
	out, err := fd.Triangulate(in)
	if err != nil {
		return nil, errors.Wrap(err, "triangulating")
	}

	t := &Triangulation{
		Points:     points,
		ConvexHull: ConvexHull(points),
		Triangles:  make([]int, len(out.Triangles)),
		reported:   make([]r2.Point, len(out.ConvexHull)),
	}
	for i, p := range out.ConvexHull {
		t.reported[i] = r2.Point{X: p.X, Y: p.Y}
	}

	// wind every triangle counterclockwise (y up), then pair edges again
	copy(t.Triangles, out.Triangles)
	for i := 0; i < len(t.Triangles); i += 3 {
		a, b, c := t.Triangles[i], t.Triangles[i+1], t.Triangles[i+2]
		if orient(points[a], points[b], points[c]) < 0 {
			t.Triangles[i+1], t.Triangles[i+2] = c, b
		}
	}
	t.Halfedges = linkHalfedges(t.Triangles)

	return t, nil
}

// NextHalfedge returns the half edge following e within its triangle.
func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// Len returns the number of triangles.
func (t *Triangulation) Len() int {
	return len(t.Triangles) / 3
}

// Triangle returns the point indices of triangle i.
func (t *Triangulation) Triangle(i int) (int, int, int) {
	return t.Triangles[3*i], t.Triangles[3*i+1], t.Triangles[3*i+2]
}

// Circumcentre returns the circumcentre of triangle i.
func (t *Triangulation) Circumcentre(i int) r2.Point {
	a, b, c := t.Triangle(i)
	return Circumcentre(t.Points[a], t.Points[b], t.Points[c])
}

func (t *Triangulation) area() float64 {
	var result float64
	for i := 0; i < t.Len(); i++ {
		a, b, c := t.Triangle(i)
		result += area(t.Points[a], t.Points[b], t.Points[c])
	}
	return result / 2
}

// Validate performs several sanity checks on the Triangulation to check for
// potential errors. Returns nil if no issues were found. You normally
// shouldn't need to call this function but it can be useful for debugging.
func (t *Triangulation) Validate() error {
	// verify halfedges
	for i1, i2 := range t.Halfedges {
		if i2 != -1 && t.Halfedges[i2] != i1 {
			return errors.New("invalid halfedge connection")
		}
	}

	// every triangle is counterclockwise
	for i := 0; i < t.Len(); i++ {
		a, b, c := t.Triangle(i)
		if orient(t.Points[a], t.Points[b], t.Points[c]) <= 0 {
			return errors.Errorf("triangle %d is not counterclockwise", i)
		}
	}

	// verify convex hull area vs sum of triangle areas
	hull := make([]r2.Point, len(t.ConvexHull))
	for i, idx := range t.ConvexHull {
		hull[i] = t.Points[idx]
	}
	area1 := polygonArea(hull)
	area2 := t.area()
	tolerance := 1e-9 * math.Max(1, area1)
	if math.Abs(area1-area2) > tolerance {
		return errors.Errorf("hull areas disagree: %v vs %v", area1, area2)
	}
	if t.reported != nil {
		if area3 := polygonArea(t.reported); math.Abs(area1-area3) > tolerance {
			return errors.Errorf("reported hull area %v, expected %v", area3, area1)
		}
	}

	return nil
}

// linkHalfedges pairs each directed edge with its reverse.
func linkHalfedges(triangles []int) []int {
	index := make(map[[2]int]int, len(triangles))
	for e := range triangles {
		index[[2]int{triangles[e], triangles[NextHalfedge(e)]}] = e
	}

	halfedges := make([]int, len(triangles))
	for e := range triangles {
		twin, ok := index[[2]int{triangles[NextHalfedge(e)], triangles[e]}]
		if !ok {
			twin = -1
		}
		halfedges[e] = twin
	}
	return halfedges
}

// checkDuplicates returns ErrDuplicatePoint naming the first repeated pair.
func checkDuplicates(points []r2.Point) error {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := points[order[i]], points[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	for i := 1; i < len(order); i++ {
		if points[order[i]] == points[order[i-1]] {
			a, b := order[i-1], order[i]
			if b < a {
				a, b = b, a
			}
			return errors.Wrapf(ErrDuplicatePoint, "points %d and %d at %v", a, b, points[a])
		}
	}
	return nil
}

// collinear reports if every point sits on the line through the first two.
func collinear(points []r2.Point) bool {
	a, b := points[0], points[1]
	for _, c := range points[2:] {
		if orient(a, b, c) != 0 {
			return false
		}
	}
	return true
}
