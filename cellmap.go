package atomcells

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/voidshard/atomcells/internal/encoding"
	"github.com/voidshard/atomcells/internal/line"
	"github.com/voidshard/atomcells/internal/voronoi"
)

const (
	// bit numbers for our bitmap
	bitEdge    = 0
	bitFar     = 1
	bitOutline = 2
)

// ErrOutOfBounds is returned for pixels outside of the map
var ErrOutOfBounds = errors.New("pixel out of bounds")

// CellMap is a graphical representation of a Diagram
type CellMap interface {
	// Save the drawn figure, the format follows the file extension;
	// .png .jpg .jpeg .tif .tiff .bmp
	Save(fpath string) error

	// SaveIndex saves the per pixel cell information as a 16 bit PNG
	SaveIndex(fpath string) error

	// Image is the drawn figure
	Image() image.Image

	// Bounds of the map in pixels
	Bounds() image.Rectangle

	// Cell returns the cell id & category at the given pixel. Pixels
	// outside every closed cell have id -1.
	Cell(x, y int) (int, Category, error)

	// IsEdge is true for pixels on a cell boundary
	IsEdge(x, y int) bool

	// IsFar is true for pixels of cells that were closed with far vertices
	IsFar(x, y int) bool

	// IsOutline is true for pixels on the highlight outline
	IsOutline(x, y int) bool
}

// imageMap is a particular implementation of CellMap using a RGBA64
type imageMap struct {
	// index is an RGBA64 image where each pixel of 64 bits is split via
	// encoding.Pixel; cell id, category id & a bitmap
	//   bit 0 -> isEdge
	//   bit 1 -> isFar
	//   bit 2 -> isOutline
	//   bit 3-7 -> unused
	index *image.RGBA64

	// the figure proper, drawn with a drawing lib because it's 100x easier
	// than figuring out all the geometry ourselves
	ctx *gg.Context

	cfg *RenderConfig
	fs  afero.Fs
	log *zap.Logger

	// data (projected) space -> pixel space
	min, max r2.Point
	scale    r2.Point
}

// newMap returns a blank map showing the area min, max
func newMap(cfg *RenderConfig, min, max r2.Point) (*imageMap, error) {
	w, h := cfg.size()

	bg, err := ParseColour(cfg.Background)
	if err != nil {
		return nil, err
	}

	ctx := gg.NewContext(w, h)
	ctx.SetColor(bg)
	ctx.Clear()

	index := image.NewRGBA64(image.Rect(0, 0, w, h))
	empty := encoding.Encode(encoding.Pixel{Cell: -1})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			index.SetRGBA64(x, y, empty)
		}
	}

	span := max.Sub(min)
	if span.X <= 0 {
		span.X = 1
	}
	if span.Y <= 0 {
		span.Y = 1
	}

	return &imageMap{
		index: index,
		ctx:   ctx,
		cfg:   cfg,
		fs:    afero.NewOsFs(),
		log:   zap.NewNop(),
		min:   min,
		max:   max,
		scale: r2.Point{X: float64(w) / span.X, Y: float64(h) / span.Y},
	}, nil
}

// toPixel maps a data point to pixel space, y axis up
func (c *imageMap) toPixel(p r2.Point) r2.Point {
	return r2.Point{
		X: (p.X - c.min.X) * c.scale.X,
		Y: (c.max.Y - p.Y) * c.scale.Y,
	}
}

// toData is the inverse of toPixel
func (c *imageMap) toData(p r2.Point) r2.Point {
	return r2.Point{
		X: c.min.X + p.X/c.scale.X,
		Y: c.max.Y - p.Y/c.scale.Y,
	}
}

// drawCell fills the site's region & records it in the index
func (c *imageMap) drawCell(site voronoi.Site, cat Category, col color.Color) {
	alpha := c.cfg.Alpha
	edge, _ := ParseColour(c.cfg.EdgeColour)

	poly := site.Vertices()
	for i, v := range poly {
		p := c.toPixel(v)
		if i == 0 {
			c.ctx.MoveTo(p.X, p.Y)
		} else {
			c.ctx.LineTo(p.X, p.Y)
		}
	}
	c.ctx.ClosePath()
	c.ctx.SetColor(withAlpha(col, alpha))
	c.ctx.FillPreserve()
	c.ctx.SetColor(withAlpha(edge, alpha))
	c.ctx.SetLineWidth(c.cfg.EdgeWidth)
	c.ctx.SetLineJoinRound()
	c.ctx.Stroke()

	c.setCell(site, cat)
}

// setCell writes the site's id & category into every pixel (by centre)
// the region contains
func (c *imageMap) setCell(site voronoi.Site, cat Category) {
	px := encoding.Pixel{Cell: site.ID(), Category: uint16(cat.ID())}
	if site.Unbounded() {
		bm := bitmap.New(8)
		bm.Set(bitFar, true)
		px.Flags = encoding.FromBytes8(bm.Data(false))
	}

	area := c.pixelRect(site.Bounds())
	for dy := area.Min.Y; dy < area.Max.Y; dy++ {
		for dx := area.Min.X; dx < area.Max.X; dx++ {
			p := c.toData(r2.Point{X: float64(dx) + 0.5, Y: float64(dy) + 0.5})
			if !site.Contains(p.X, p.Y) {
				continue
			}
			c.index.SetRGBA64(dx, dy, encoding.Encode(px))
		}
	}
}

// pixelRect returns the pixels covering r, clipped to the map
func (c *imageMap) pixelRect(r r2.Rect) image.Rectangle {
	bnds := c.index.Bounds()
	clamp := func(v float64, hi int) int {
		return int(math.Max(-1, math.Min(v, float64(hi+1))))
	}

	a, b := c.toPixel(r.Lo()), c.toPixel(r.Hi())
	return image.Rect(
		clamp(math.Floor(math.Min(a.X, b.X)), bnds.Max.X),
		clamp(math.Floor(math.Min(a.Y, b.Y)), bnds.Max.Y),
		clamp(math.Ceil(math.Max(a.X, b.X)), bnds.Max.X),
		clamp(math.Ceil(math.Max(a.Y, b.Y)), bnds.Max.Y),
	).Intersect(bnds)
}

// markEdges flags every pixel along a cell boundary
func (c *imageMap) markEdges(sites []voronoi.Site) {
	for _, s := range sites {
		for _, e := range s.Edges() {
			c.markLine(e[0], e[1], bitEdge)
		}
	}
}

// drawOutline strokes the boundary edges & flags their pixels
func (c *imageMap) drawOutline(wall [][2]r2.Point) {
	col, _ := ParseColour(c.cfg.HighlightColour)
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(c.cfg.HighlightWidth)
	c.ctx.SetLineCapRound()
	for _, e := range wall {
		a, b := c.toPixel(e[0]), c.toPixel(e[1])
		c.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
		c.ctx.Stroke()
		c.markLine(e[0], e[1], bitOutline)
	}
}

// markLine sets bit on the pixels of the segment a, b (data space)
func (c *imageMap) markLine(a, b r2.Point, bit int) {
	bnds := c.index.Bounds()
	pa, pb, ok := clipSegment(c.toPixel(a), c.toPixel(b), r2.RectFromPoints(
		r2.Point{X: float64(bnds.Min.X), Y: float64(bnds.Min.Y)},
		r2.Point{X: float64(bnds.Max.X) - 1e-9, Y: float64(bnds.Max.Y) - 1e-9},
	))
	if !ok {
		return
	}

	line.Walk(line.PlotterFunc(func(x, y int) {
		if !image.Pt(x, y).In(bnds) {
			return
		}
		bm := c.getBM(x, y)
		bm.Set(bit, true)
		c.setBM(x, y, bm)
	}), floorPt(pa), floorPt(pb))
}

// Save the figure to disk, format by extension
func (c *imageMap) Save(fpath string) error {
	return saveImage(c.fs, c.log, fpath, c.ctx.Image())
}

// SaveIndex saves the index image as is
func (c *imageMap) SaveIndex(fpath string) error {
	if ext := strings.ToLower(filepath.Ext(fpath)); ext != ".png" {
		return errors.Wrapf(ErrUnsupportedFormat, "index images are png only, not %q", ext)
	}
	f, err := c.fs.Create(fpath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.index)
}

// Image returns the figure
func (c *imageMap) Image() image.Image {
	return c.ctx.Image()
}

// Bounds of the map in pixels
func (c *imageMap) Bounds() image.Rectangle {
	return c.index.Bounds()
}

// Cell returns the cell id & category at x,y
func (c *imageMap) Cell(x, y int) (int, Category, error) {
	if c.isOutOfBounds(x, y) {
		return -1, Any, errors.Wrapf(ErrOutOfBounds, "(%d,%d)", x, y)
	}
	px := encoding.Decode(c.index.RGBA64At(x, y))
	return px.Cell, categoryForID(int(px.Category)), nil
}

// IsEdge returns if x,y is on a cell edge
func (c *imageMap) IsEdge(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitEdge)
}

// IsFar returns if x,y belongs to a cell closed with far vertices
func (c *imageMap) IsFar(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitFar)
}

// IsOutline returns if x,y is on the highlight outline
func (c *imageMap) IsOutline(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitOutline)
}

// setBM sets the 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, bm bitmap.Bitmap) {
	px := encoding.Decode(c.index.RGBA64At(x, y))
	px.Flags = encoding.FromBytes8(bm.Data(false))
	c.index.SetRGBA64(x, y, encoding.Encode(px))
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	px := encoding.Decode(c.index.RGBA64At(x, y))
	return bitmap.Bitmap(encoding.ToBytes8(px.Flags))
}

// isOutOfBounds determines if x,y is outside of the image area
func (c *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(c.index.Bounds())
}

// withAlpha scales the opacity of col by alpha
func withAlpha(col color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

func floorPt(p r2.Point) image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}
