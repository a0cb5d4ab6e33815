package line

import (
	"image"
)

// Plotter receives every pixel of a line in order from start to end.
type Plotter interface {
	Set(x, y int)
}

// PlotterFunc adapts a plain function to a Plotter.
type PlotterFunc func(x, y int)

// Set calls f(x, y)
func (f PlotterFunc) Set(x, y int) {
	f(x, y)
}

// Walk plots each pixel on the line a -> b, both ends included.
// Pixels come out in order starting at a.
func Walk(p Plotter, a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)

	e := dx + dy
	x, y := a.X, a.Y
	for {
		p.Set(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// PointsBetween returns all points on a line between a,b
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	Walk(PlotterFunc(func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	}), a, b)
	return pts
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}
