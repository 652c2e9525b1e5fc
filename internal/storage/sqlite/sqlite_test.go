package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisab/internal/core"
	"hisab/internal/storage"
)

func openTemp(t *testing.T) (*Blobs, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "hisab.db")
	b, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, path
}

func TestReadEmptyIsNotFound(t *testing.T) {
	b, _ := openTemp(t)
	_, err := b.Read(context.Background())
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestWriteOverwrites(t *testing.T) {
	b, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, []byte(`{"incomes":[]}`)))
	require.NoError(t, b.Write(ctx, []byte(`{"loans":[]}`)))

	got, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"loans":[]}`, string(got))

	var rows int
	require.NoError(t, b.db.Get(&rows, `SELECT COUNT(*) FROM app_state`))
	assert.Equal(t, 1, rows)
}

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	b, path := openTemp(t)
	ctx := context.Background()

	data := core.NewAppData()
	data.Incomes = []core.Income{{ID: "i1", Amount: decimal.NewFromInt(5000), Category: "বেতন", Date: "2024-05-01"}}
	require.NoError(t, storage.New(b).Save(ctx, data))
	require.NoError(t, b.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := storage.New(reopened).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Incomes, 1)
	assert.Equal(t, "i1", got.Incomes[0].ID)
	assert.True(t, got.Incomes[0].Amount.Equal(decimal.NewFromInt(5000)))
	assert.Empty(t, got.Loans)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	_, path := openTemp(t)
	assert.NoError(t, RunMigrations(path))
}
