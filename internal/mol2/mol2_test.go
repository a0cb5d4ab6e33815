package mol2

import (
	"os"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ligand = `# written by hand
@<TRIPOS>MOLECULE
LIG
 4 3 1 0 0
SMALL
USER_CHARGES

@<TRIPOS>ATOM
      1 C1          1.0000    2.0000   -4.0000 C.3       1  LIG1       -0.1200
      2 O1          2.5000    0.5000   -3.0000 O.2       1  LIG1       -0.5000
      3 N1         -1.2500    1.0000   -5.0000 N.am      1  LIG1        0.2000
      4 H1          0.0000    0.0000   -2.0000 H
@<TRIPOS>BOND
     1     1     2    2
     2     1     3   am
     3     1     4    1
@<TRIPOS>MOLECULE
SECOND
@<TRIPOS>ATOM
      1 C1          9.0000    9.0000    9.0000 C.3
`

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(ligand))
	require.NoError(t, err)

	assert.Equal(t, "LIG", m.Name)
	require.Len(t, m.Atoms, 4)

	assert.Equal(t, &Atom{
		ID:        2,
		Name:      "O1",
		Position:  r3.Vector{X: 2.5, Y: 0.5, Z: -3},
		Type:      "O.2",
		SubstID:   1,
		SubstName: "LIG1",
		Charge:    -0.5,
	}, m.Atoms[1])

	// trailing columns are optional
	assert.Equal(t, &Atom{ID: 4, Name: "H1", Position: r3.Vector{Z: -2}, Type: "H"}, m.Atoms[3])
}

func TestReadNoAtoms(t *testing.T) {
	_, err := Read(strings.NewReader("@<TRIPOS>MOLECULE\nEMPTY\n"))
	assert.Equal(t, ErrNoAtoms, errors.Cause(err))
}

func TestReadMalformed(t *testing.T) {
	for name, record := range map[string]string{
		"short":  "1 C1 1.0 2.0 3.0",
		"id":     "x C1 1.0 2.0 3.0 C.3",
		"coord":  "1 C1 1.0 two 3.0 C.3",
		"subst":  "1 C1 1.0 2.0 3.0 C.3 one",
		"charge": "1 C1 1.0 2.0 3.0 C.3 1 LIG1 lots",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(recordAtom + "\n" + record + "\n"))
			require.Error(t, err)
			assert.Equal(t, ErrMalformedAtom, errors.Cause(err))
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/lig.mol2", []byte(ligand), 0644))

	m, err := Load(fs, "/data/lig.mol2")
	require.NoError(t, err)
	assert.Len(t, m.Atoms, 4)

	_, err = Load(fs, "/data/missing.mol2")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
