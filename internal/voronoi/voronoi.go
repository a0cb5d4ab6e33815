package voronoi

import (
	"os"
	"path/filepath"

	"github.com/golang/geo/r2"
)

// Voronoi holds a raw diagram together with its closed regions
type Voronoi struct {
	diagram *Diagram
	result  *Result
	ridges  RidgeIndex
	sites   []Site
}

// newVoronoi wraps a diagram & its reconstruction
func newVoronoi(d *Diagram, result *Result) *Voronoi {
	me := &Voronoi{
		diagram: d,
		result:  result,
		ridges:  NewRidgeIndex(d),
	}

	me.sites = make([]Site, len(d.Points))
	for i := range d.Points {
		me.sites[i] = &vSite{id: i, parent: me}
	}

	return me
}

// Bounds returns the bounding rect of the sites
func (v *Voronoi) Bounds() r2.Rect {
	return v.diagram.Bounds()
}

// Diagram returns the raw (unbounded) diagram
func (v *Voronoi) Diagram() *Diagram {
	return v.diagram
}

// Result returns the closed regions
func (v *Voronoi) Result() *Result {
	return v.result
}

// Sites returns all sites
func (v *Voronoi) Sites() []Site {
	return v.sites
}

// SiteByID returns the given Site by it's ID
func (v *Voronoi) SiteByID(i int) Site {
	if i < 0 || i >= len(v.sites) {
		return nil
	}
	return v.sites[i]
}

// SiteFor returns the nearest Site ("centre" of a voronoi cell) for the given point.
func (v *Voronoi) SiteFor(x, y float64) Site {
	dist := -1.0
	var pick Site
	for _, site := range v.sites {
		p := site.Point()
		sdist := calculateDist(p.X, p.Y, x, y)
		if sdist == 0 {
			return site
		} else if dist < 0 || sdist < dist {
			dist = sdist
			pick = site
		}
	}
	return pick
}

// DebugRender writes to os.TempDir "voronoi.png"
func (v *Voronoi) DebugRender() error {
	fpath := filepath.Join(os.TempDir(), "voronoi.png")
	b := v.Bounds()
	return v.Render(fpath, b.Lo(), b.Hi())
}
