package voronoi

// RidgeEnd is a ridge as seen from one of the two points it separates.
type RidgeEnd struct {
	Other  int
	V1, V2 int
}

// RidgeIndex lists, for every point id, the ridges incident to it.
// Every ridge appears twice, once under each of its points.
type RidgeIndex [][]RidgeEnd

// NewRidgeIndex builds the per-point ridge lookup for d.
// The diagram is expected to be valid (every ridge point in range).
func NewRidgeIndex(d *Diagram) RidgeIndex {
	degree := make([]int, len(d.Points))
	for _, rp := range d.RidgePoints {
		degree[rp[0]]++
		degree[rp[1]]++
	}

	index := make(RidgeIndex, len(d.Points))
	for p, n := range degree {
		index[p] = make([]RidgeEnd, 0, n)
	}

	for i, rp := range d.RidgePoints {
		p1, p2 := rp[0], rp[1]
		v1, v2 := d.RidgeVertices[i][0], d.RidgeVertices[i][1]
		index[p1] = append(index[p1], RidgeEnd{Other: p2, V1: v1, V2: v2})
		index[p2] = append(index[p2], RidgeEnd{Other: p1, V1: v1, V2: v2})
	}

	return index
}

// Neighbours returns the ids of every point sharing a ridge with p.
func (r RidgeIndex) Neighbours(p int) []int {
	if p < 0 || p >= len(r) {
		return nil
	}
	out := make([]int, len(r[p]))
	for i, e := range r[p] {
		out[i] = e.Other
	}
	return out
}

// Unbounded returns the number of ridges around p running off to infinity.
func (r RidgeIndex) Unbounded(p int) int {
	count := 0
	for _, e := range r[p] {
		if e.V1 == Infinity || e.V2 == Infinity {
			count++
		}
	}
	return count
}
