package voronoi

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Builder struct makes managing the setup of a voronoi diagram easier.
// Sites are added one at a time, each checked against the configured
// filters, and the site id handed back is its index in the final diagram.
type Builder struct {
	sites []r2.Point
	sfilt []SiteFilter
	cfilt []CandidateFilter
	opts  Options
}

// NewBuilder returns a new Voronoi diagram builder
func NewBuilder() *Builder {
	return &Builder{sites: []r2.Point{}}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// SetRadius sets the distance of synthetic far vertices (see Options).
func (b *Builder) SetRadius(radius float64) {
	b.opts.Radius = radius
}

// SetWorkers sets how many goroutines reconstruct regions (see Options).
func (b *Builder) SetWorkers(n int) {
	b.opts.Workers = n
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed sites to all current sites.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(x, y float64) (int, bool) {
	if !b.accepted(x, y) {
		return 0, false
	}
	return b.addSite(x, y), true
}

// Voronoi computes the diagram of the current sites & closes every region.
// Fewer than three sites, or sites on a single line, is ErrDegenerateInput.
func (b *Builder) Voronoi() (*Voronoi, error) {
	d, err := Compute(b.sites)
	if err != nil {
		return nil, err
	}

	opts := b.opts
	result, err := Reconstruct(d, &opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reconstruct finite regions")
	}

	return newVoronoi(d, result), nil
}

// accepted returns if the proposed site location (x, y) is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(candidateX, candidateY float64) bool {
	// first check if we can reject early with a CandidateFilter
	for _, fn := range b.cfilt {
		if !fn(candidateX, candidateY) {
			return false
		}
	}

	// check if we can reject with any SiteFilter, for every site
	if b.sfilt != nil {
		for _, s := range b.sites {
			for _, fn := range b.sfilt {
				if !fn(candidateX, candidateY, s.X, s.Y) {
					return false
				}
			}
		}
	}

	return true
}

// calculateDist standard pythag.
func calculateDist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// addSite adds a site, no filters are run.
func (b *Builder) addSite(x, y float64) int {
	id := len(b.sites)
	b.sites = append(b.sites, r2.Point{X: x, Y: y})
	return id
}
