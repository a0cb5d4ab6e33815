package voronoi

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// ClippedCell is a Voronoi cell cut down to a bounding box.
type ClippedCell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

// Area of the clipped cell
func (c *ClippedCell) Area() float64 {
	sum := 0.0
	for _, s := range c.Edges {
		sum += s[0].X*s[1].Y - s[1].X*s[0].Y
	}
	return math.Abs(sum) / 2
}

// ClipCells computes the voronoi cells for a list of points directly, as the
// intersection of half planes inside the box min, max.
//
// This is quadratic in the number of points and only meant to cross check
// reconstructed regions.
func ClipCells(min, max r2.Point, points []r2.Point) []*ClippedCell {
	cells := make([]*ClippedCell, len(points))
	for i, p := range points {
		c := toCoord(p)
		constraints := model2d.NewConvexPolytopeRect(toCoord(min), toCoord(max))
		for j, q := range points {
			if i == j {
				continue
			}
			c1 := toCoord(q)
			mp := c.Mid(c1)
			normal := c1.Sub(c).Normalize()
			constraints = append(constraints, &model2d.LinearConstraint{
				Normal: normal,
				Max:    normal.Dot(mp),
			})
		}
		cells[i] = &ClippedCell{
			Center: c,
			Edges:  constraints.Mesh().SegmentSlice(),
		}
	}
	return cells
}

// mergeVertices folds coordinates closer than epsilon into one, returning the
// unique coordinates and, for every input, the index of its representative.
func mergeVertices(points []r2.Point, epsilon float64) ([]r2.Point, []int) {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, p := range points {
		c := toCoord(p)
		if !coordSet[c] {
			coordSet[c] = true
			coordSlice = append(coordSlice, c)
		}
	}
	if len(coordSlice) == 0 {
		return nil, []int{}
	}
	tree := model2d.NewCoordTree(coordSlice)

	target := map[model2d.Coord]int{}
	unique := make([]r2.Point, 0, len(coordSlice))
	for _, c := range coordSlice {
		if _, ok := target[c]; ok {
			continue
		}
		id := len(unique)
		unique = append(unique, r2.Point{X: c.X, Y: c.Y})
		target[c] = id
		for _, n := range neighborsInDistance(tree, c, epsilon) {
			if _, ok := target[n]; !ok {
				target[n] = id
			}
		}
	}

	mapping := make([]int, len(points))
	for i, p := range points {
		mapping[i] = target[toCoord(p)]
	}
	return unique, mapping
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; ; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
}

// Render rasterises the reconstructed regions with their sites to path.
// The background covers the box min, max.
func (v *Voronoi) Render(path string, min, max r2.Point) error {
	mesh2d := model2d.NewMesh()
	for _, poly := range v.result.Polygons() {
		mesh2d.AddMesh(model2d.NewMeshSegments(segments(poly)))
	}

	size := max.Sub(min)
	maxSize := math.Max(size.X, size.Y)

	pointsSolid := model2d.JoinedSolid{}
	for _, p := range v.diagram.Points {
		pointsSolid = append(pointsSolid, &model2d.Circle{
			Center: toCoord(p),
			Radius: maxSize / 200,
		})
	}

	bg := model2d.NewRect(toCoord(min), toCoord(max))
	scale := 1.0
	if maxSize > 0 {
		scale = 1000 / maxSize
	}
	return model2d.RasterizeColor(path, []interface{}{
		bg,
		model2d.IntersectedSolid{pointsSolid.Optimize(), bg},
		mesh2d,
	}, []color.Color{
		color.Gray{Y: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	}, scale)
}

// Mesh returns the regions as a flat triangle mesh in the z = 0 plane.
// Every region is convex so each one is fanned from its first vertex.
func (v *Voronoi) Mesh() *model3d.Mesh {
	mesh := model3d.NewMesh()
	for _, poly := range v.result.Polygons() {
		for i := 1; i+1 < len(poly); i++ {
			mesh.Add(&model3d.Triangle{
				model3d.XYZ(poly[0].X, poly[0].Y, 0),
				model3d.XYZ(poly[i].X, poly[i].Y, 0),
				model3d.XYZ(poly[i+1].X, poly[i+1].Y, 0),
			})
		}
	}
	return mesh
}

// segments closes a polygon into a ring of segments
func segments(poly []r2.Point) []*model2d.Segment {
	out := make([]*model2d.Segment, len(poly))
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		out[i] = &model2d.Segment{toCoord(p), toCoord(q)}
	}
	return out
}

func toCoord(p r2.Point) model2d.Coord {
	return model2d.Coord{X: p.X, Y: p.Y}
}
