package minipng

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.mpng")

	require.NoError(t, WriteFile(file, []byte("Mini-PNG")))

	b, err := ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte("Mini-PNG"), b)
}

func TestFileError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing.mpng")

	_, err := ReadFile(file)
	require.Error(t, err)

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "read", fe.Op)
	assert.Equal(t, file, fe.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read file '"+file+"': ")

	err = WriteFile(filepath.Join(file, "child"), nil)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "write", fe.Op)
}
