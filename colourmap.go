package atomcells

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"image/color"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/image/colornames"
)

var (
	// ErrColourMapNotFound means the colour map file does not exist.
	ErrColourMapNotFound = errors.New("colour map file not found")

	// ErrMalformedColourMap means a record is not "category; definition; colour".
	ErrMalformedColourMap = errors.New("malformed colour map record")

	// ErrUnknownColour means a colour is neither a known name nor #rrggbb[aa].
	ErrUnknownColour = errors.New("unknown colour")

	// ErrUnknownCategory means the palette has no colour for a category.
	ErrUnknownCategory = errors.New("no colour for category")
)

// DefaultColourMapFile is where the CLI looks for a colour map by default.
const DefaultColourMapFile = "labels_mol2.csv"

// ColourEntry is one record of a colour map.
type ColourEntry struct {
	Definition string
	Colour     color.Color
}

// ColourMap is a Palette read from a colour map file. Records are
//
//	category; definition; colour
//
// one per line, lines starting with # are comments.
//
// A category missing from the map falls back to its element, so an entry
// for "N" covers "N.am" & "N.ar" unless they have entries of their own.
type ColourMap map[Category]*ColourEntry

// Colour implements Palette
func (m ColourMap) Colour(c Category) (color.Color, error) {
	e := m.lookup(c)
	if e == nil {
		return nil, errors.Wrapf(ErrUnknownCategory, "%q", c)
	}
	return e.Colour, nil
}

// Definition implements Palette
func (m ColourMap) Definition(c Category) string {
	e := m.lookup(c)
	if e == nil {
		return ""
	}
	return e.Definition
}

func (m ColourMap) lookup(c Category) *ColourEntry {
	if e, ok := m[c]; ok {
		return e
	}
	if e, ok := m[c.Element()]; ok {
		return e
	}
	return nil
}

// LoadColourMap reads a colour map file from fs.
func LoadColourMap(fs afero.Fs, path string) (ColourMap, error) {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrColourMapNotFound, "%s", path)
	} else if err != nil {
		return nil, err
	}

	m, err := ParseColourMap(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return m, nil
}

// ParseColourMap reads colour map records from data. Later records for the
// same category replace earlier ones.
func ParseColourMap(data []byte) (ColourMap, error) {
	m := ColourMap{}

	lineNo := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "; ")
		if len(parts) != 3 {
			return nil, errors.Wrapf(ErrMalformedColourMap, "line %d: want 3 fields, got %d", lineNo, len(parts))
		}

		col, err := ParseColour(parts[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}

		m[Category(strings.TrimSpace(parts[0]))] = &ColourEntry{
			Definition: strings.TrimSpace(parts[1]),
			Colour:     col,
		}
	}

	return m, scanner.Err()
}

// ParseColour accepts a CSS / SVG colour name ("steelblue") or a hex
// colour "#rrggbb" / "#rrggbbaa".
func ParseColour(s string) (color.Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		raw, err := hex.DecodeString(s[1:])
		if err != nil || (len(raw) != 3 && len(raw) != 4) {
			return nil, errors.Wrapf(ErrUnknownColour, "%q", s)
		}
		c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
		if len(raw) == 4 {
			c.A = raw[3]
		}
		return c, nil
	}

	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColour, "%q", s)
	}
	return c, nil
}

// DefaultColourMap returns a reasonable default ColourMap, roughly CPK
// colours keyed by element.
func DefaultColourMap() ColourMap {
	return ColourMap{
		"C":      {Definition: "carbon", Colour: colornames.Dimgray},
		CAr:      {Definition: "aromatic carbon", Colour: colornames.Darkgray},
		"N":      {Definition: "nitrogen", Colour: colornames.Royalblue},
		NAm:      {Definition: "amide nitrogen", Colour: colornames.Steelblue},
		N4:       {Definition: "charged nitrogen", Colour: colornames.Navy},
		"O":      {Definition: "oxygen", Colour: colornames.Crimson},
		OCo2:     {Definition: "carboxylate oxygen", Colour: colornames.Firebrick},
		"S":      {Definition: "sulfur", Colour: colornames.Gold},
		P3:       {Definition: "phosphorus", Colour: colornames.Darkorange},
		H:        {Definition: "hydrogen", Colour: colornames.Whitesmoke},
		F:        {Definition: "fluorine", Colour: colornames.Lightgreen},
		Cl:       {Definition: "chlorine", Colour: colornames.Limegreen},
		Br:       {Definition: "bromine", Colour: colornames.Brown},
		I:        {Definition: "iodine", Colour: colornames.Darkviolet},
		Fe:       {Definition: "iron", Colour: colornames.Chocolate},
		Zn:       {Definition: "zinc", Colour: colornames.Slateblue},
		Mg:       {Definition: "magnesium", Colour: colornames.Forestgreen},
		Ca:       {Definition: "calcium", Colour: colornames.Darkgreen},
		Na:       {Definition: "sodium", Colour: colornames.Mediumpurple},
		K:        {Definition: "potassium", Colour: colornames.Purple},
		LonePair: {Definition: "lone pair", Colour: colornames.Lightgray},
		Dummy:    {Definition: "dummy atom", Colour: colornames.Pink},
		Any:      {Definition: "any atom", Colour: colornames.Hotpink},
	}
}
