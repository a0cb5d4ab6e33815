package atomcells

import (
	"sort"
	"strings"
)

// Category is what a cell is coloured by; a SYBYL atom type as found in
// the atom_type column of a mol2 file, eg. "C.ar", "N.am", "O.2", "Cl".
type Category string

// Well known SYBYL atom types. Files may use others, they simply get ID 0.
const (
	Any      Category = "Any"
	C3       Category = "C.3"   // sp3 carbon
	C2       Category = "C.2"   // sp2 carbon
	C1       Category = "C.1"   // sp carbon
	CAr      Category = "C.ar"  // aromatic carbon
	CCat     Category = "C.cat" // carbocation (guanidinium)
	N3       Category = "N.3"   // sp3 nitrogen
	N2       Category = "N.2"   // sp2 nitrogen
	N1       Category = "N.1"   // sp nitrogen
	NAr      Category = "N.ar"  // aromatic nitrogen
	NAm      Category = "N.am"  // amide nitrogen
	NPl3     Category = "N.pl3" // trigonal planar nitrogen
	N4       Category = "N.4"   // positively charged sp3 nitrogen
	O3       Category = "O.3"   // sp3 oxygen
	O2       Category = "O.2"   // sp2 oxygen
	OCo2     Category = "O.co2" // carboxylate / phosphate oxygen
	S3       Category = "S.3"
	S2       Category = "S.2"
	SO       Category = "S.O"  // sulfoxide
	SO2      Category = "S.O2" // sulfone
	P3       Category = "P.3"
	H        Category = "H"
	F        Category = "F"
	Cl       Category = "Cl"
	Br       Category = "Br"
	I        Category = "I"
	Fe       Category = "Fe"
	Zn       Category = "Zn"
	Mg       Category = "Mg"
	Ca       Category = "Ca"
	Na       Category = "Na"
	K        Category = "K"
	LonePair Category = "LP"
	Dummy    Category = "Du"
)

var (
	allCategories = []Category{
		Any,
		C3, C2, C1, CAr, CCat,
		N3, N2, N1, NAr, NAm, NPl3, N4,
		O3, O2, OCo2,
		S3, S2, SO, SO2,
		P3, H, F, Cl, Br, I,
		Fe, Zn, Mg, Ca, Na, K,
		LonePair, Dummy,
	}

	categoryIndex    = map[Category]int{}
	invCategoryIndex = map[int]Category{}
)

func init() {
	for i, c := range allCategories {
		categoryIndex[c] = i
		invCategoryIndex[i] = c
	}
}

// ID returns the index of a known category, 0 (Any) for anything else
func (c Category) ID() int {
	v, ok := categoryIndex[c]
	if !ok {
		return 0
	}
	return v
}

// categoryForID is the inversion of Category.ID()
func categoryForID(i int) Category {
	c, ok := invCategoryIndex[i]
	if !ok {
		return Any
	}
	return c
}

// Element strips the hybridisation suffix, "C.ar" -> "C".
func (c Category) Element() Category {
	if i := strings.IndexByte(string(c), '.'); i > 0 {
		return c[:i]
	}
	return c
}

// AllCategories returns all known Category enums
func AllCategories() []Category {
	return allCategories
}

// sortCategories orders known categories by ID, then unknown ones by name
func sortCategories(in []Category) {
	sort.Slice(in, func(a, b int) bool {
		ia, ib := in[a].ID(), in[b].ID()
		if ia == 0 && in[a] != Any {
			ia = len(allCategories)
		}
		if ib == 0 && in[b] != Any {
			ib = len(allCategories)
		}
		if ia != ib {
			return ia < ib
		}
		return in[a] < in[b]
	})
}
