package voronoi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diff(t *testing.T, want, got interface{}, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pts(xy ...float64) []r2.Point {
	out := make([]r2.Point, len(xy)/2)
	for i := range out {
		out[i] = r2.Point{X: xy[2*i], Y: xy[2*i+1]}
	}
	return out
}

func randomPoints(n int, seed int64) []r2.Point {
	rng := rand.New(rand.NewSource(seed))
	out := make([]r2.Point, n)
	for i := range out {
		out[i] = r2.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}
	return out
}

// hexagon is a centre point ringed by six others; only the centre's raw
// region is finite.
func hexagon() []r2.Point {
	out := []r2.Point{{X: 0, Y: 0}}
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		out = append(out, r2.Point{X: math.Cos(a), Y: math.Sin(a)})
	}
	return out
}

func reconstruct(t *testing.T, points []r2.Point, opts *Options) (*Diagram, *Result) {
	t.Helper()
	d, err := Compute(points)
	require.NoError(t, err)
	res, err := Reconstruct(d, opts)
	require.NoError(t, err)
	return d, res
}

// verifyRegions checks the properties every reconstruction must hold
func verifyRegions(t *testing.T, d *Diagram, res *Result) {
	t.Helper()
	require.Len(t, res.Regions, len(d.Points))

	for p, region := range res.Regions {
		require.GreaterOrEqual(t, len(region), 3, "region %d", p)
		for _, v := range region {
			require.True(t, v >= 0 && v < len(res.Vertices), "region %d refers to vertex %d", p, v)
		}

		poly := NewPolygon(res.Polygon(p))
		assert.Greater(t, poly.SignedArea(), 0.0, "region %d is not counterclockwise", p)
		assert.True(t, poly.IsSimple(), "region %d self intersects", p)
	}
}

func TestReconstructSquare(t *testing.T) {
	d, res := reconstruct(t, pts(0, 0, 1, 0, 0, 1, 1, 1), nil)
	verifyRegions(t, d, res)

	assert.Equal(t, 1, res.Synthetic)
	assert.Len(t, res.Vertices, 9)

	for p, site := range d.Points {
		assert.Len(t, res.Regions[p], 3)
		assert.True(t, NewPolygon(res.Polygon(p)).Contains(site), "region %d must contain its site", p)
	}

	diff(t, pts(0.5, -1.5, 0.5, 0.5, -1.5, 0.5), res.Polygon(0), cmpopts.EquateApprox(0, 1e-12))
}

func TestReconstructTriangleRadius(t *testing.T) {
	d, res := reconstruct(t, pts(0, 0, 1, 0, 2, 0.5), &Options{Radius: 10})
	verifyRegions(t, d, res)

	require.Len(t, d.Vertices, 1)
	centre := d.Vertices[0]

	for p, region := range res.Regions {
		far := 0
		for _, v := range region {
			if !res.IsSynthetic(v) {
				continue
			}
			far++
			assert.InDelta(t, 10.0, res.Vertices[v].Sub(centre).Norm(), 1e-9, "region %d", p)
		}
		assert.Equal(t, 2, far, "region %d", p)
	}
}

func TestReconstructCollinear(t *testing.T) {
	_, err := Compute(pts(0, 0, 1, 0, 2, 0))
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateInput, errors.Cause(err))
}

func TestReconstructSinglePoint(t *testing.T) {
	_, err := Compute(pts(3, 4))
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateInput, errors.Cause(err))

	d := &Diagram{
		Points:      pts(3, 4),
		PointRegion: []int{0},
		Regions:     [][]int{{Infinity}},
	}
	_, err = Reconstruct(d, nil)
	require.Error(t, err)
	assert.Equal(t, ErrMissingRidgeData, errors.Cause(err))
}

func TestReconstructUnboundedRidge(t *testing.T) {
	d := &Diagram{
		Points:        pts(0, 0, 1, 0),
		PointRegion:   []int{0, 1},
		Regions:       [][]int{{Infinity}, {Infinity}},
		RidgePoints:   [][2]int{{0, 1}},
		RidgeVertices: [][2]int{{Infinity, Infinity}},
	}
	_, err := Reconstruct(d, nil)
	require.Error(t, err)
	assert.Equal(t, ErrMissingRidgeData, errors.Cause(err))
}

func TestReconstructInvalid(t *testing.T) {
	d := &Diagram{
		Points:      pts(0, 0),
		Vertices:    pts(1, 1),
		PointRegion: []int{0},
		Regions:     [][]int{{0, 5}},
	}
	_, err := Reconstruct(d, nil)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidDiagram, errors.Cause(err))
}

func TestComputeCoordsDimension(t *testing.T) {
	_, err := ComputeCoords([][]float64{{0, 0}, {1, 0, 2}, {0, 1}})
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedDimension, errors.Cause(err))
}

func TestReconstructFiniteUnchanged(t *testing.T) {
	d, res := reconstruct(t, hexagon(), nil)
	verifyRegions(t, d, res)

	raw := d.Region(0)
	require.True(t, isFinite(raw))
	assert.Equal(t, raw, res.Regions[0])

	want := make([]r2.Point, len(raw))
	for i, v := range raw {
		want[i] = d.Vertices[v]
	}
	assert.Equal(t, want, res.Polygon(0))
}

func TestReconstructRadiusMonotonic(t *testing.T) {
	points := randomPoints(60, 42)
	d, near := reconstruct(t, points, &Options{Radius: 5})
	_, far := reconstruct(t, points, &Options{Radius: 50})

	require.Equal(t, near.Synthetic, far.Synthetic)
	require.Equal(t, len(near.Vertices), len(far.Vertices))
	assert.Equal(t, near.Vertices[:near.Synthetic], far.Vertices[:far.Synthetic])

	centre := centroid(points)
	for v := near.Synthetic; v < len(near.Vertices); v++ {
		assert.Greater(t, far.Vertices[v].Sub(centre).Norm(), near.Vertices[v].Sub(centre).Norm(), "vertex %d", v)
	}

	for p := range points {
		if isFinite(d.Region(p)) {
			assert.Equal(t, near.Regions[p], far.Regions[p])
		}
	}
}

func TestReconstructRandom(t *testing.T) {
	points := randomPoints(200, 1234567)
	d, res := reconstruct(t, points, nil)
	verifyRegions(t, d, res)

	for p, site := range points {
		if isFinite(d.Region(p)) {
			assert.True(t, NewPolygon(res.Polygon(p)).Contains(site), "region %d must contain its site", p)
		}
	}
}

func TestReconstructWorkers(t *testing.T) {
	points := randomPoints(300, 7)
	_, serial := reconstruct(t, points, nil)
	_, parallel := reconstruct(t, points, &Options{Workers: 4})
	diff(t, serial, parallel)
}

func TestReconstructMatchesClipping(t *testing.T) {
	points := randomPoints(30, 99)
	d, res := reconstruct(t, points, nil)

	min, max := r2.Point{X: -1e4, Y: -1e4}, r2.Point{X: 1e4, Y: 1e4}
	clipped := ClipCells(min, max, points)

	inside := strictlyInside(points)
	checked := 0
	for p := range points {
		if !isFinite(d.Region(p)) {
			assert.False(t, inside[p], "point %d is inside the hull but its region is unbounded", p)
			continue
		}
		checked++
		assert.InEpsilon(t, clipped[p].Area(), NewPolygon(res.Polygon(p)).SignedArea(), 1e-6, "region %d", p)
	}
	assert.NotZero(t, checked)
}

func TestDefaultRadius(t *testing.T) {
	assert.Equal(t, 8.0, DefaultRadius(pts(0, 0, 4, 1, 2, 3)))
	assert.Equal(t, 0.0, DefaultRadius(nil))
}

func TestReconstructNilDiagram(t *testing.T) {
	_, err := Reconstruct(nil, &Options{Radius: 1})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidDiagram, errors.Cause(err))
}

func TestReconstructEmpty(t *testing.T) {
	res, err := Reconstruct(&Diagram{}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Regions)
}

func TestSortCounterClockwiseTies(t *testing.T) {
	refs := []vertexRef{{index: 0}, {index: 1}, {index: 2}, {index: 3}}
	coords := pts(1, 0, 2, 0, -1, 0, -2, 0)
	sortCounterClockwise(refs, coords)

	// (1,0) & (2,0) share an angle about the mean, as do (-1,0) & (-2,0)
	diff(t, []vertexRef{{index: 0}, {index: 1}, {index: 2}, {index: 3}}, refs, cmp.AllowUnexported(vertexRef{}))
}
