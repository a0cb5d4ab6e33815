package atomcells

import (
	"image/color"
)

// Palette tells the renderer how to colour a cell.
type Palette interface {
	// Colour for cells of the given category, ErrUnknownCategory if
	// there is none.
	Colour(c Category) (color.Color, error)

	// Definition is a human readable description of the category,
	// used in legends. Empty if unknown.
	Definition(c Category) string
}
