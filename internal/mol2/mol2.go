package mol2

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	// ErrNoAtoms means the input held no @<TRIPOS>ATOM records.
	ErrNoAtoms = errors.New("no atoms in mol2 input")

	// ErrMalformedAtom means an ATOM record had too few or unparsable fields.
	ErrMalformedAtom = errors.New("malformed atom record")
)

const (
	recordMolecule = "@<TRIPOS>MOLECULE"
	recordAtom     = "@<TRIPOS>ATOM"
	recordPrefix   = "@<TRIPOS>"
)

// Atom is one line of an @<TRIPOS>ATOM section.
type Atom struct {
	ID       int
	Name     string
	Position r3.Vector
	Type     string

	// optional trailing columns, zero when absent
	SubstID   int
	SubstName string
	Charge    float64
}

// Molecule is the first molecule of a mol2 file.
type Molecule struct {
	Name  string
	Atoms []*Atom
}

// Load reads the mol2 file at path from fs.
func Load(fs afero.Fs, path string) (*Molecule, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return m, nil
}

// Read parses the first molecule in r. Sections other than MOLECULE and
// ATOM are skipped, as is anything after a second MOLECULE header.
func Read(r io.Reader) (*Molecule, error) {
	m := &Molecule{}

	section := ""
	sectionLine := 0
	molecules := 0
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, recordPrefix) {
			section = line
			sectionLine = 0
			if section == recordMolecule {
				molecules++
				if molecules > 1 {
					break
				}
			}
			continue
		}
		sectionLine++

		switch section {
		case recordMolecule:
			if sectionLine == 1 {
				m.Name = line
			}
		case recordAtom:
			a, err := parseAtom(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			m.Atoms = append(m.Atoms, a)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(m.Atoms) == 0 {
		return nil, ErrNoAtoms
	}
	return m, nil
}

// parseAtom reads
//
//	atom_id atom_name x y z atom_type [subst_id [subst_name [charge [status]]]]
func parseAtom(line string) (*Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return nil, errors.Wrapf(ErrMalformedAtom, "want at least 6 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedAtom, "atom id %q", fields[0])
	}

	var xyz [3]float64
	for i := range xyz {
		xyz[i], err = strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedAtom, "coordinate %q", fields[2+i])
		}
	}

	a := &Atom{
		ID:       id,
		Name:     fields[1],
		Position: r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]},
		Type:     fields[5],
	}

	if len(fields) > 6 {
		a.SubstID, err = strconv.Atoi(fields[6])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedAtom, "substructure id %q", fields[6])
		}
	}
	if len(fields) > 7 {
		a.SubstName = fields[7]
	}
	if len(fields) > 8 {
		a.Charge, err = strconv.ParseFloat(fields[8], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedAtom, "charge %q", fields[8])
		}
	}

	return a, nil
}
