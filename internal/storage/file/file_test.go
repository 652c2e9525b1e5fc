package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisab/internal/core"
	"hisab/internal/storage"
)

func TestReadMissingIsNotFound(t *testing.T) {
	b, err := New(filepath.Join(t.TempDir(), "data", "hisab.json"))
	require.NoError(t, err)

	_, err = b.Read(context.Background())
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestWriteReplacesFile(t *testing.T) {
	dir := t.TempDir()
	b, err := New(filepath.Join(dir, "hisab.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, []byte("first")))
	require.NoError(t, b.Write(ctx, []byte("second")))

	got, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestCorruptFileLoadsAsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hisab.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	b, err := New(path)
	require.NoError(t, err)

	s := storage.New(b)
	_, err = s.Load(context.Background())
	var le *storage.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, storage.LoadCorrupt, le.Kind)

	data := storage.LoadOrDefault(context.Background(), s, nil)
	assert.Equal(t, core.NewAppData(), data)
}
