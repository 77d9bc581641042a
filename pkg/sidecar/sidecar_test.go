package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("kvs")
	require.NoError(t, err)
	require.Equal(t, VariantKvs, v)

	v, err = ParseVariant(" sled ")
	require.NoError(t, err)
	require.Equal(t, VariantSled, v)

	_, err = ParseVariant("rocksdb")
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestEnsureWritesSidecarOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Ensure(dir, ".engine", VariantKvs))

	data, err := os.ReadFile(filepath.Join(dir, ".engine"))
	require.NoError(t, err)
	require.Equal(t, "kvs", string(data))
}

func TestEnsureAcceptsMatchingVariantOnReopen(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Ensure(dir, ".engine", VariantKvs))
	require.NoError(t, Ensure(dir, ".engine", VariantKvs))
}

func TestEnsureRejectsMismatchedVariant(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Ensure(dir, ".engine", VariantKvs))

	err := Ensure(dir, ".engine", VariantSled)
	require.Error(t, err)
	var mismatch interface {
		Requested() string
		Recorded() string
	}
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "sled", mismatch.Requested())
	require.Equal(t, "kvs", mismatch.Recorded())
}
