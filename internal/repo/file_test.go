package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	ctx := context.Background()

	kv, err := NewFileKV(path)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "todo_tasks_v1", `[{"id":"1"}]`))
	require.NoError(t, kv.Set(ctx, "theme", "dark"))

	reopened, err := NewFileKV(path)
	require.NoError(t, err)

	v, found, err := reopened.Get(ctx, "todo_tasks_v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)

	v, found, err = reopened.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", v)
}

func TestFileKV_MissingFile(t *testing.T) {
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	_, found, err := kv.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = kv.Get(ctx, "theme")
	assert.Error(t, err)

	// writing replaces the corrupt content
	require.NoError(t, kv.Set(ctx, "theme", "light"))
	v, found, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", v)
}
