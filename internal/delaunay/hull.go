package delaunay

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// ConvexHull returns the indices of the convex hull of points in
// counterclockwise order, starting from the leftmost (then lowest) point.
// Points lying on a hull edge are not included.
func ConvexHull(points []r2.Point) []int {
	if len(points) < 3 {
		out := make([]int, len(points))
		for i := range out {
			out[i] = i
		}
		return out
	}

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

	// Andrew's monotone chain
	hull := make([]int, 0, 2*len(order))
	for _, idx := range order {
		for len(hull) >= 2 && orient(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[idx]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, idx)
	}
	lower := len(hull) + 1
	for i := len(order) - 2; i >= 0; i-- {
		idx := order[i]
		for len(hull) >= lower && orient(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[idx]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, idx)
	}

	return hull[:len(hull)-1]
}

// Circumcentre returns the centre of the circle through a, b and c.
// The result is not finite when the three points are collinear.
func Circumcentre(a, b, c r2.Point) r2.Point {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	return r2.Point{
		X: a.X + (cy*bl-by*cl)/d,
		Y: a.Y + (bx*cl-cx*bl)/d,
	}
}

// orient is twice the signed area of a, b, c: positive when counterclockwise.
func orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// area is the unsigned double area of a triangle
func area(a, b, c r2.Point) float64 {
	return math.Abs(orient(a, b, c))
}

func polygonArea(points []r2.Point) float64 {
	var result float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		result += p.Cross(q)
	}
	return math.Abs(result / 2)
}
