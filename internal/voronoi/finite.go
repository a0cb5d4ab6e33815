package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

// Options tunes Reconstruct. The zero value is valid.
type Options struct {
	// Radius is how far a synthetic vertex sits from the finite end of the
	// unbounded ridge it closes. Zero or less derives it from the points
	// (see DefaultRadius).
	Radius float64

	// Workers above 1 reconstructs regions concurrently. The output is
	// identical to a sequential run.
	Workers int
}

// Result holds bounded regions for every point of a diagram.
type Result struct {
	// Vertices are the diagram's vertices followed by every synthetic vertex
	// in the order it was created.
	Vertices []r2.Point

	// Regions[p] are counterclockwise vertex indices for point p.
	Regions [][]int

	// Synthetic is the index of the first synthetic vertex.
	Synthetic int
}

// vertexRef refers either to an original vertex or to the n'th far vertex
// made for the region being reconstructed.
type vertexRef struct {
	index int
	far   bool
}

// regionPart is the per point output before far vertices get global indices.
type regionPart struct {
	refs []vertexRef
	far  []r2.Point
}

// Reconstruct closes every unbounded region of d, returning bounded,
// counterclockwise polygons index aligned with d.Points.
//
// Regions that are already finite are returned unchanged. For each ridge
// running to infinity a far vertex is placed Radius away from the ridge's
// finite end, along the ridge normal that points away from the centroid of
// all points. Callers must not pass coincident points.
func Reconstruct(d *Diagram, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if d == nil {
		return nil, errors.Wrap(ErrInvalidDiagram, "nil diagram")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	if len(d.Points) == 0 {
		return &Result{Vertices: append([]r2.Point{}, d.Vertices...), Regions: [][]int{}, Synthetic: len(d.Vertices)}, nil
	}

	centre := centroid(d.Points)
	radius := opts.Radius
	if radius <= 0 {
		radius = DefaultRadius(d.Points)
	}
	ridges := NewRidgeIndex(d)

	parts := make([]regionPart, len(d.Points))
	errs := make([]error, len(d.Points))
	build := func(p int) {
		parts[p], errs[p] = reconstructRegion(d, ridges, p, centre, radius)
	}

	if opts.Workers > 1 {
		essentials.ConcurrentMap(opts.Workers, len(d.Points), build)
	} else {
		for p := range d.Points {
			build(p)
		}
	}

	synthetic := 0
	for p, err := range errs {
		if err != nil {
			return nil, err
		}
		synthetic += len(parts[p].far)
	}

	result := &Result{
		Vertices:  make([]r2.Point, len(d.Vertices), len(d.Vertices)+synthetic),
		Regions:   make([][]int, len(d.Points)),
		Synthetic: len(d.Vertices),
	}
	copy(result.Vertices, d.Vertices)

	// far vertices get their indices in point order, so concurrency cannot
	// change the output
	for p, part := range parts {
		base := len(result.Vertices)
		result.Vertices = append(result.Vertices, part.far...)

		region := make([]int, len(part.refs))
		for i, ref := range part.refs {
			if ref.far {
				region[i] = base + ref.index
			} else {
				region[i] = ref.index
			}
		}
		result.Regions[p] = region
	}

	return result, nil
}

// reconstructRegion computes the bounded region of p1.
func reconstructRegion(d *Diagram, ridges RidgeIndex, p1 int, centre r2.Point, radius float64) (regionPart, error) {
	vertices := d.Region(p1)

	if isFinite(vertices) {
		refs := make([]vertexRef, len(vertices))
		for i, v := range vertices {
			refs[i] = vertexRef{index: v}
		}
		return regionPart{refs: refs}, nil
	}

	incident := ridges[p1]
	if len(incident) == 0 {
		return regionPart{}, errors.Wrapf(ErrMissingRidgeData, "point %d has an unbounded region but no ridges", p1)
	}

	refs := make([]vertexRef, 0, len(vertices)+2)
	coords := make([]r2.Point, 0, len(vertices)+2)
	for _, v := range vertices {
		if v < 0 {
			continue
		}
		refs = append(refs, vertexRef{index: v})
		coords = append(coords, d.Vertices[v])
	}

	var far []r2.Point
	for _, r := range incident {
		v1, v2 := r.V1, r.V2
		if v2 < 0 {
			v1, v2 = v2, v1
		}
		if v1 >= 0 {
			// finite ridge, both ends are already in the region
			continue
		}
		if v2 < 0 {
			return regionPart{}, errors.Wrapf(ErrMissingRidgeData, "ridge between points %d and %d has no finite end", p1, r.Other)
		}

		fp := farPoint(d.Points[p1], d.Points[r.Other], d.Vertices[v2], centre, radius)
		refs = append(refs, vertexRef{index: len(far), far: true})
		coords = append(coords, fp)
		far = append(far, fp)
	}

	sortCounterClockwise(refs, coords)
	return regionPart{refs: refs, far: far}, nil
}

// farPoint returns the missing end of the unbounded ridge between p1 & p2
// whose finite end is v.
func farPoint(p1, p2, v, centre r2.Point, radius float64) r2.Point {
	tangent := p2.Sub(p1).Normalize()
	normal := tangent.Ortho()

	midpoint := p1.Add(p2).Mul(0.5)
	if midpoint.Sub(centre).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}

	return v.Add(normal.Mul(radius))
}

// sortCounterClockwise orders refs (and coords alongside them) by angle about
// their mean. Equal angles keep their original order.
func sortCounterClockwise(refs []vertexRef, coords []r2.Point) {
	if len(coords) == 0 {
		return
	}

	c := centroid(coords)
	angles := make([]float64, len(coords))
	order := make([]int, len(coords))
	for i, p := range coords {
		angles[i] = math.Atan2(p.Y-c.Y, p.X-c.X)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return angles[order[a]] < angles[order[b]]
	})

	sortedRefs := make([]vertexRef, len(refs))
	sortedCoords := make([]r2.Point, len(coords))
	for i, o := range order {
		sortedRefs[i] = refs[o]
		sortedCoords[i] = coords[o]
	}
	copy(refs, sortedRefs)
	copy(coords, sortedCoords)
}

// DefaultRadius is twice the larger of the x & y spans of points.
func DefaultRadius(points []r2.Point) float64 {
	if len(points) == 0 {
		return 0
	}
	size := r2.RectFromPoints(points...).Size()
	return 2 * math.Max(size.X, size.Y)
}

// centroid is the arithmetic mean of points.
func centroid(points []r2.Point) r2.Point {
	var sum r2.Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// Polygon returns the coordinates of region p.
func (r *Result) Polygon(p int) []r2.Point {
	region := r.Regions[p]
	out := make([]r2.Point, len(region))
	for i, v := range region {
		out[i] = r.Vertices[v]
	}
	return out
}

// Polygons returns the coordinates of every region.
func (r *Result) Polygons() [][]r2.Point {
	out := make([][]r2.Point, len(r.Regions))
	for p := range r.Regions {
		out[p] = r.Polygon(p)
	}
	return out
}

// IsSynthetic returns true if vertex v was made by Reconstruct.
func (r *Result) IsSynthetic(v int) bool {
	return v >= r.Synthetic
}
