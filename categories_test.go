package atomcells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryID(t *testing.T) {
	for _, c := range AllCategories() {
		assert.Equal(t, c, categoryForID(c.ID()))
	}
	assert.Equal(t, 0, Category("Xx.9").ID())
	assert.Equal(t, Any, categoryForID(-4))
}

func TestCategoryElement(t *testing.T) {
	assert.Equal(t, Category("C"), CAr.Element())
	assert.Equal(t, Category("S"), SO2.Element())
	assert.Equal(t, Cl, Cl.Element())
	assert.Equal(t, Category(".x"), Category(".x").Element())
}

func TestSortCategories(t *testing.T) {
	in := []Category{"Zz", O2, "Aa", C3, Any}
	sortCategories(in)
	assert.Equal(t, []Category{Any, C3, O2, "Aa", "Zz"}, in)
}

func TestStatsMeanBoundedArea(t *testing.T) {
	s := newStats()
	s.add(&Cell{Category: C3, Area: 2})
	s.add(&Cell{Category: C3, Area: 4})
	s.add(&Cell{Category: C3, Area: 100, Unbounded: true})
	s.add(&Cell{Category: O2, Area: 7, Unbounded: true})

	assert.Equal(t, 3.0, s.MeanBoundedArea(C3))
	assert.Equal(t, 0.0, s.MeanBoundedArea(O2))
	assert.Equal(t, 0.0, s.MeanBoundedArea(N4))
	assert.Equal(t, []Category{C3, O2}, s.Categories())
}
