package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadInputFileLiteralList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("[72, 105]"), 0o644))

	words, err := ReadInputFile(path)
	require.NoError(t, err)
	require.Equal(t, []int32{2, 72, 105}, words)
}

func TestReadInputFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hi\nignored second line"), 0o644))

	words, err := ReadInputFile(path)
	require.NoError(t, err)
	require.Equal(t, []int32{2, 72, 105}, words)
}

func TestReadInputFileEmptyList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	words, err := ReadInputFile(path)
	require.NoError(t, err)
	require.Equal(t, []int32{0}, words)
}

func TestWriteOutputFileText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteOutputFile(path, []int32{72, 105}, OutputText))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Hi", string(out))
}

func TestWriteOutputFileNumeric(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteOutputFile(path, []int32{1, -2, 3}, OutputNumeric))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 -2 3 ", string(out))
}
