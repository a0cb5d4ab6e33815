package voronoi

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderFilters(t *testing.T) {
	b := NewBuilder()
	b.SetCandidateFilters(Finite())
	b.SetSiteFilters(b.MinDistance(0.5))

	id, ok := b.AddSite(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	_, ok = b.AddSite(0.1, 0.1)
	assert.False(t, ok, "too close to site 0")

	_, ok = b.AddSite(math.Inf(1), 0)
	assert.False(t, ok, "infinite candidate")

	_, ok = b.AddSite(1, math.NaN())
	assert.False(t, ok, "NaN candidate")

	id, ok = b.AddSite(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, 2, b.SiteCount())
}

func TestBuilderVoronoi(t *testing.T) {
	b := NewBuilder()
	b.SetRadius(10)
	b.SetWorkers(2)
	for _, p := range hexagon() {
		_, ok := b.AddSite(p.X, p.Y)
		require.True(t, ok)
	}

	v, err := b.Voronoi()
	require.NoError(t, err)
	require.Len(t, v.Sites(), 7)

	centre := v.SiteByID(0)
	assert.False(t, centre.Unbounded())
	assert.Len(t, centre.Neighbours(), 6)
	assert.Len(t, centre.Edges(), 6)
	assert.True(t, centre.Contains(0, 0))
	assert.False(t, centre.Contains(0.9, 0))

	// regular hexagon with apothem 0.5
	assert.InDelta(t, 6*0.5*0.5*math.Tan(math.Pi/6), centre.Area(), 1e-9)

	outer := v.SiteByID(1)
	assert.True(t, outer.Unbounded())
	assert.Len(t, outer.Neighbours(), 3)
	assert.True(t, outer.Contains(1.5, 0))

	assert.Equal(t, 0, v.SiteFor(0.1, -0.1).ID())
	assert.Equal(t, 1, v.SiteFor(5, 0).ID())
	assert.Nil(t, v.SiteByID(99))

	assert.Equal(t, -1.0, v.Bounds().Lo().X)
	assert.Equal(t, 1.0, v.Bounds().Hi().X)
}

func TestBuilderTooFewSites(t *testing.T) {
	b := NewBuilder()
	b.AddSite(0, 0)
	b.AddSite(1, 1)

	_, err := b.Voronoi()
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateInput, errors.Cause(err))
}

func TestVoronoiMesh(t *testing.T) {
	b := NewBuilder()
	for _, p := range pts(0, 0, 1, 0, 0, 1, 1, 1) {
		b.AddSite(p.X, p.Y)
	}
	v, err := b.Voronoi()
	require.NoError(t, err)

	// four triangles, one per region
	assert.Len(t, v.Mesh().TriangleSlice(), 4)
}

func TestVoronoiRender(t *testing.T) {
	b := NewBuilder()
	for _, p := range pts(0, 0, 1, 0, 0, 1, 1, 1, 0.4, 0.6) {
		b.AddSite(p.X, p.Y)
	}
	v, err := b.Voronoi()
	require.NoError(t, err)

	fpath := filepath.Join(t.TempDir(), "cells.png")
	require.NoError(t, v.Render(fpath, v.Bounds().Lo(), v.Bounds().Hi()))
	info, err := os.Stat(fpath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	require.NoError(t, v.DebugRender())
	_, err = os.Stat(filepath.Join(os.TempDir(), "voronoi.png"))
	assert.NoError(t, err)
}
