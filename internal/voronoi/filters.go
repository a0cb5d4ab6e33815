package voronoi

import (
	"math"
)

// CandidateFilter accepts or rejects a candidate point (x, y) based
// purely on the given (x, y).
// These filters are run before SiteFilter(s) which naturally require
// us to iterate each site.
type CandidateFilter func(x, y float64) bool

// SiteFilter is a filter for a candidate (x, y) point that is run
// against every current Site in the builder.
// Ie. we must 'accept' the candidate point (x, y) when compared
// with every existing Site that we've previously accepted.
type SiteFilter func(ax, ay, sx, sy float64) bool

// Finite rejects candidates with NaN or infinite coordinates, which is what
// a perspective projection of a point on the z = 0 plane produces.
func Finite() CandidateFilter {
	return func(x, y float64) bool {
		return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
	}
}

// MinDistance ensures that a candidate (x, y) point is more than `dist`
// distance away from every other site. With dist 0 only exact duplicates
// are rejected.
func (b *Builder) MinDistance(dist float64) SiteFilter {
	return func(ax, ay, sx, sy float64) bool {
		return calculateDist(sx, sy, ax, ay) > dist
	}
}
