package atomcells

import (
	"encoding/json"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/voidshard/atomcells/internal/cell"
	"github.com/voidshard/atomcells/internal/mol2"
	"github.com/voidshard/atomcells/internal/voronoi"
)

// Diagram holds the cells of a set of atoms & handles the bulk of our math operations
type Diagram struct {
	Name     string `json:",omitempty"`
	Cells    []*Cell
	Stats    *Stats
	Radius   float64
	MinBound r2.Point
	MaxBound r2.Point

	cfg     *Config
	atoms   []*Atom
	palette Palette
	log     *zap.Logger
	fs      afero.Fs

	gb    *voronoi.Builder
	graph *voronoi.Voronoi
	cmap  *imageMap
}

// New computes & draws the cells of the given atoms. A nil logger logs
// nothing.
func New(cfg *Config, atoms []*Atom, palette Palette, logger *zap.Logger) (*Diagram, error) {
	d := &Diagram{
		cfg:     cfg,
		atoms:   atoms,
		palette: palette,
		log:     logger,
	}
	return d, d.build()
}

// LoadMol2 reads atoms from the first molecule of a mol2 file, the
// category of each is its SYBYL atom type.
func LoadMol2(fs afero.Fs, path string) (string, []*Atom, error) {
	m, err := mol2.Load(fs, path)
	if err != nil {
		return "", nil, err
	}

	atoms := make([]*Atom, len(m.Atoms))
	for i, a := range m.Atoms {
		atoms[i] = &Atom{
			Name:      a.Name,
			Category:  Category(a.Type),
			Position:  a.Position,
			SubstName: a.SubstName,
		}
	}
	return m.Name, atoms, nil
}

// ErrNoAtoms is returned by LoadMol2 for files without atom records.
var ErrNoAtoms = mol2.ErrNoAtoms

// WithFs sets the filesystem files are saved to, the OS by default.
func (d *Diagram) WithFs(fs afero.Fs) *Diagram {
	d.fs = fs
	if d.cmap != nil {
		d.cmap.fs = fs
	}
	return d
}

// JSON returns the diagram as json.
func (d *Diagram) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// SaveJSON writes a json file to the given path.
func (d *Diagram) SaveJSON(fpath string) error {
	data, err := d.JSON()
	if err != nil {
		return err
	}
	err = afero.WriteFile(d.fs, fpath, data, 0644)
	if err != nil {
		return err
	}
	logWritten(d.log, d.fs, fpath)
	return nil
}

// SaveSTL writes the cells as a flat triangle mesh (z = 0) in STL format.
func (d *Diagram) SaveSTL(fpath string) error {
	err := writeSTL(d.fs, fpath, d.graph.Mesh())
	if err != nil {
		return err
	}
	logWritten(d.log, d.fs, fpath)
	return nil
}

// Map returns the underlying CellMap.
// The map essentially holds the same data but saved graphically rather than in
// Go structs.
func (d *Diagram) Map() CellMap {
	return d.cmap
}

// CellAt returns the cell containing the point (x, y) in projected units.
// Points outside every closed cell return nil.
func (d *Diagram) CellAt(x, y float64) *Cell {
	site := d.graph.SiteFor(x, y)
	if site == nil || !site.Contains(x, y) {
		return nil
	}
	return d.Cells[site.ID()]
}

// Neighbours returns the cells sharing an edge with cell id.
func (d *Diagram) Neighbours(id int) []*Cell {
	site := d.graph.SiteByID(id)
	if site == nil {
		return nil
	}
	out := []*Cell{}
	for _, n := range site.Neighbours() {
		out = append(out, d.Cells[n.ID()])
	}
	return out
}

// Outline returns the boundary edges around every cell whose atom or
// substructure is named `name`.
func (d *Diagram) Outline(name string) [][2]r2.Point {
	if name == "" {
		return nil
	}
	inside := []voronoi.Site{}
	for i, a := range d.atoms {
		if a.SubstName == name || a.Name == name {
			inside = append(inside, d.graph.SiteByID(i))
		}
	}
	return cell.Outline(inside)
}

// build runs the main construction logic. Order of the functions
// is important as later functions rely on things being done / not done
// to save re-processing stuff.
func (d *Diagram) build() error {
	err := d.init()
	if err != nil {
		return err
	}

	err = d.addSites()
	if err != nil {
		return err
	}

	// fail before the (comparatively) expensive parts if we can't colour something
	for _, a := range d.atoms {
		_, err = d.palette.Colour(a.Category)
		if err != nil {
			return errors.Wrapf(err, "atom %s", a.Name)
		}
	}

	start := time.Now()
	d.graph, err = d.gb.Voronoi()
	if err != nil {
		return err
	}
	raw := d.graph.Diagram()
	d.log.Info("diagram computed",
		zap.Int("sites", len(raw.Points)),
		zap.Int("vertices", len(raw.Vertices)),
		zap.Int("ridges", len(raw.RidgePoints)),
		zap.Duration("took", time.Since(start)),
	)

	d.MinBound, d.MaxBound = raw.MinBound, raw.MaxBound
	d.Radius = d.cfg.Radius
	if d.Radius <= 0 {
		d.Radius = voronoi.DefaultRadius(raw.Points)
	}

	d.addCells()
	d.log.Info("cells reconstructed",
		zap.Int("cells", len(d.Cells)),
		zap.Int("synthetic_vertices", len(d.graph.Result().Vertices)-d.graph.Result().Synthetic),
		zap.Float64("radius", d.Radius),
	)

	return d.draw()
}

// addSites projects every atom & adds it as a site, ids follow atom order.
func (d *Diagram) addSites() error {
	for i, a := range d.atoms {
		p, err := d.cfg.Projection.Project(a.Position)
		if err != nil {
			return errors.Wrapf(err, "atom %d (%s)", i, a.Name)
		}

		id, ok := d.gb.AddSite(p.X, p.Y)
		if !ok {
			return errors.Wrapf(ErrDegenerateInput, "atom %d (%s) projects to %v, coinciding with another atom or not finite", i, a.Name, p)
		}
		if id != i {
			return errors.Errorf("atom %d was given site %d", i, id)
		}
	}
	return nil
}

// addCells turns closed regions into Cells
func (d *Diagram) addCells() {
	for _, site := range d.graph.Sites() {
		a := d.atoms[site.ID()]
		c := &Cell{
			ID:        site.ID(),
			Atom:      a.Name,
			Category:  a.Category,
			Subst:     a.SubstName,
			Site:      site.Point(),
			Polygon:   site.Vertices(),
			Unbounded: site.Unbounded(),
			Area:      site.Area(),
		}
		d.Cells = append(d.Cells, c)
		d.Stats.add(c)
	}
}

// draw paints every cell onto a fresh map
func (d *Diagram) draw() error {
	start := time.Now()

	m, err := newMap(&d.cfg.Render, d.MinBound, d.MaxBound)
	if err != nil {
		return err
	}
	m.fs = d.fs
	m.log = d.log

	for _, site := range d.graph.Sites() {
		cat := d.Cells[site.ID()].Category
		col, err := d.palette.Colour(cat)
		if err != nil {
			return err
		}
		m.drawCell(site, cat, col)
	}
	m.markEdges(d.graph.Sites())

	if wall := d.Outline(d.cfg.Render.Highlight); len(wall) > 0 {
		m.drawOutline(wall)
	} else if d.cfg.Render.Highlight != "" {
		d.log.Warn("nothing to highlight", zap.String("name", d.cfg.Render.Highlight))
	}

	if d.cfg.Render.Legend {
		err = m.drawLegend(d.Stats.Categories(), d.palette)
		if err != nil {
			return err
		}
	}

	d.cmap = m
	d.log.Debug("cells drawn", zap.Duration("took", time.Since(start)))
	return nil
}

func (d *Diagram) init() error {
	if d.cfg == nil {
		d.cfg = DefaultConfig()
	}
	err := d.cfg.Validate()
	if err != nil {
		return err
	}

	if d.palette == nil {
		d.palette = DefaultColourMap()
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	d.fs = afero.NewOsFs()

	d.Stats = newStats()
	d.Cells = []*Cell{}

	d.gb = voronoi.NewBuilder()
	d.gb.SetRadius(d.cfg.Radius)
	d.gb.SetWorkers(d.cfg.Workers)
	d.gb.SetCandidateFilters(voronoi.Finite())
	d.gb.SetSiteFilters(d.gb.MinDistance(0))

	return nil
}
