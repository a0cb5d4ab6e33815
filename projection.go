package atomcells

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/voidshard/atomcells/internal/voronoi"
)

// Projection flattens atom positions onto the plane.
type Projection string

const (
	// Perspective divides x & y by |z|, a pinhole camera at the origin
	// looking down the z axis.
	Perspective Projection = "perspective"

	// Orthographic drops z.
	Orthographic Projection = "orthographic"
)

// ErrDegenerateInput is returned for atoms that cannot be turned into
// distinct cells; coincident after projection, all on one line, fewer than
// three, or on the z = 0 plane under Perspective.
var ErrDegenerateInput = voronoi.ErrDegenerateInput

func (p Projection) valid() bool {
	return p == Perspective || p == Orthographic || p == ""
}

// Project maps v onto the plane. The empty Projection is Perspective.
func (p Projection) Project(v r3.Vector) (r2.Point, error) {
	switch p {
	case Orthographic:
		return r2.Point{X: v.X, Y: v.Y}, nil
	case Perspective, "":
		z := math.Abs(v.Z)
		if z == 0 {
			return r2.Point{}, errors.Wrapf(ErrDegenerateInput, "perspective projection of %v with z = 0", v)
		}
		return r2.Point{X: v.X / z, Y: v.Y / z}, nil
	}
	return r2.Point{}, errors.Wrapf(ErrInvalidConfig, "unknown projection %q", p)
}
