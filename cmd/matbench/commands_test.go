// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/matmul/config"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := makeMatbenchCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeMatrix(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRootRunsDemo(t *testing.T) {
	out, err := execute(t, "--size=32", "--seed=1")
	require.NoError(t, err)
	require.Contains(t, out, "strassen")
	require.Contains(t, out, "verify=ok")
}

func TestRootDefaults(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	require.Contains(t, out, "n=128")
}

func TestRunSubcommand(t *testing.T) {
	out, err := execute(t, "run", "--size=20", "--pad", "--block-size=3", "--leaf-size=4", "--repeat=2")
	require.NoError(t, err)
	require.Contains(t, out, "n=20")
	require.Contains(t, out, "block=3 leaf=4")
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "run", "--size=20")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "run", "--size=8", "--high=0")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "extra-arg")
	require.Error(t, err)
}

func TestMultiplySubcommand(t *testing.T) {
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "# A\n1 2\n3 4\n")
	b := writeMatrix(t, dir, "b.txt", "5 6\n7 8\n")

	for _, algo := range []string{"blocked", "strassen"} {
		out, err := execute(t, "multiply", a, b, "--algo="+algo)
		require.NoError(t, err, algo)
		require.Equal(t, "19 22\n43 50\n", out, algo)
	}
}

func TestMultiplySubcommandErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "1 2 3\n4 5 6\n")
	b := writeMatrix(t, dir, "b.txt", "1 2\n3 4\n")
	sq3 := writeMatrix(t, dir, "sq3.txt", "1 0 0\n0 1 0\n0 0 1\n")
	bad := writeMatrix(t, dir, "bad.txt", "1 x\n")

	_, err := execute(t, "multiply", a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = execute(t, "multiply", sq3, sq3, "--algo=strassen")
	require.ErrorIs(t, err, matrix.ErrInvalidShape)

	out, err := execute(t, "multiply", sq3, sq3, "--algo=strassen", "--pad")
	require.NoError(t, err)
	require.Equal(t, "1 0 0\n0 1 0\n0 0 1\n", out)

	big := writeMatrix(t, dir, "big.txt", "2147483647\n")
	two := writeMatrix(t, dir, "two.txt", "2\n")
	out, err = execute(t, "multiply", big, two)
	require.NoError(t, err)
	require.Equal(t, "-2\n", out)
	for _, algo := range []string{"blocked", "strassen"} {
		_, err = execute(t, "multiply", big, two, "--overflow=checked", "--algo="+algo)
		require.ErrorIs(t, err, matrix.ErrOverflow, algo)
	}

	_, err = execute(t, "multiply", bad, b)
	require.ErrorIs(t, err, matrix.ErrParse)

	_, err = execute(t, "multiply", b, b, "--algo=naive")
	require.ErrorContains(t, err, "unknown algorithm")

	_, err = execute(t, "multiply", b)
	require.Error(t, err)
}
