package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileSucceedsOnWellTypedSource(t *testing.T) {
	result, err := Compile(`fun square(x: Int): Int { x * x }`, "square.funxy", "", Options{})

	require.NoError(t, err)
	require.True(t, result.Ok())
	require.Len(t, result.Artifacts, 1)
	require.Equal(t, "square$", result.Artifacts[0].InternalName)
}

func TestCompileReturnsDiagnosticsWithoutError(t *testing.T) {
	result, err := Compile(`fun bad(x: Int): Int { x + "y" }`, "bad.funxy", "", Options{})

	require.NoError(t, err, "a rejected program is reported via Result, not error")
	require.False(t, result.Ok())
	require.Empty(t, result.Artifacts)
	require.NotEmpty(t, result.Errors)
}

func TestCompileWritesClassFilesUnderOutDir(t *testing.T) {
	dir := t.TempDir()
	result, err := Compile(`fun identity(x: Int): Int { x }`, "identity.funxy", dir, Options{})
	require.NoError(t, err)
	require.True(t, result.Ok())

	path := filepath.Join(dir, "identity$.class")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestCompileSkipsWriteOnRejectedSource(t *testing.T) {
	dir := t.TempDir()
	result, err := Compile(`fun bad(x: Int): Int { x + "y" }`, "bad.funxy", dir, Options{})
	require.NoError(t, err)
	require.False(t, result.Ok())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "a rejected program must never write partial artifacts")
}

func TestCompileHonorsClassFileVersionOption(t *testing.T) {
	result, err := Compile(`fun noop(): Unit { }`, "noop.funxy", "", Options{ClassFileVersion: 65})
	require.NoError(t, err)
	require.True(t, result.Ok())
	require.Len(t, result.Artifacts, 1)

	// The class-file major version occupies bytes 6-7, big-endian, right
	// after the 4-byte magic number and 2-byte minor version.
	bytes := result.Artifacts[0].Bytes
	require.GreaterOrEqual(t, len(bytes), 8)
	major := uint16(bytes[6])<<8 | uint16(bytes[7])
	require.Equal(t, uint16(65), major)
}
