package atomcells

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// legendFontSize in points
const legendFontSize = 6

// drawLegend lists the given categories bottom left, one swatch + label per
// line, the first category at the top.
func (c *imageMap) drawLegend(cats []Category, palette Palette) error {
	if len(cats) == 0 {
		return nil
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: legendFontSize, DPI: c.cfg.DPI})
	defer face.Close()
	c.ctx.SetFontFace(face)

	lineHeight := c.ctx.FontHeight() * 1.4
	box := c.ctx.FontHeight()
	pad := box / 2
	edge, _ := ParseColour(c.cfg.EdgeColour)

	y := float64(c.index.Bounds().Dy()) - pad - lineHeight*float64(len(cats))
	for _, cat := range cats {
		col, err := palette.Colour(cat)
		if err != nil {
			return err
		}

		c.ctx.DrawRectangle(pad, y, box, box)
		c.ctx.SetColor(withAlpha(col, c.cfg.Alpha))
		c.ctx.FillPreserve()
		c.ctx.SetColor(edge)
		c.ctx.SetLineWidth(1)
		c.ctx.Stroke()

		label := string(cat)
		if def := palette.Definition(cat); def != "" {
			label += " " + def
		}
		c.ctx.DrawStringAnchored(label, pad*2+box, y+box/2, 0, 0.5)

		y += lineHeight
	}

	return nil
}
