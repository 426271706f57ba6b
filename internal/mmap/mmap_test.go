package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.png")
	content := []byte("\x89PNG\r\n\x1a\nsome chunks")
	require.NoError(t, os.WriteFile(path, content, 0644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, content, f.Data)
	require.Equal(t, len(content), f.Size())

	require.NoError(t, f.Close())
	require.Nil(t, f.Data)
	require.NoError(t, f.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	f, err := Open(path)
	require.NoError(t, err)
	require.NotNil(t, f.Data)
	require.Empty(t, f.Data)
	require.NoError(t, f.Close())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(dir)
	require.Error(t, err)
}
