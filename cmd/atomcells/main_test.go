package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/atomcells"
)

const molecule = `@<TRIPOS>MOLECULE
TEST
@<TRIPOS>ATOM
      1 C1          0.0000    0.0000   -2.0000 C.3       1  LIG1        0.0000
      2 C2          1.0000    0.0000   -2.0000 C.ar      1  LIG1        0.0000
      3 N1          0.0000    1.0000   -2.0000 N.am      2  ALA2        0.0000
      4 O1          1.0000    1.0000   -2.0000 O.2       2  ALA2        0.0000
      5 O2          0.5000    0.4000   -2.0000 O.2       2  ALA2        0.0000
`

const colours = `# category; definition; colour
C; carbon; grey
N; nitrogen; blue
O; oxygen; #ff0000
`

func fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.mol2"), []byte(molecule), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "colours.csv"), []byte(colours), 0644))
	return dir
}

func run(args ...string) (string, error) {
	cmd := makeRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := fixtures(t)
	in := func(name string) string { return filepath.Join(dir, name) }

	_, err := run("render",
		"--mol", in("test.mol2"),
		"--colours", in("colours.csv"),
		"--out", in("cells.png"),
		"--dpi", "50",
		"--legend",
		"--highlight", "LIG1",
		"--mesh", in("cells.stl"),
		"--index", in("index.png"),
		"--json", in("cells.json"),
	)
	require.NoError(t, err)

	for _, name := range []string{"cells.png", "cells.stl", "index.png", "cells.json"} {
		info, err := os.Stat(in(name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}
}

func TestRenderMissingColourMap(t *testing.T) {
	dir := fixtures(t)

	_, err := run("render", "--mol", filepath.Join(dir, "test.mol2"), "--colours", filepath.Join(dir, "nope.csv"))
	assert.Equal(t, atomcells.ErrColourMapNotFound, errors.Cause(err))
}

func TestRenderRequiresMol(t *testing.T) {
	_, err := run("render")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	dir := fixtures(t)

	out, err := run("summary", "--mol", filepath.Join(dir, "test.mol2"), "--default-colours", "--projection", "orthographic")
	require.NoError(t, err)

	for _, want := range []string{"C.3", "C.ar", "N.am", "O.2", "total"} {
		assert.Contains(t, out, want)
	}
}
