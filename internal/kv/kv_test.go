package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendsUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	file, err := OpenFile(t.TempDir())
	require.NoError(t, err)

	lite, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)

	peb, err := OpenPebble(t.TempDir())
	require.NoError(t, err)

	stores := map[string]Store{
		BackendFile:   file,
		BackendSQLite: lite,
		BackendPebble: peb,
		BackendMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "books")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "books", []byte(`[{"id":"1"}]`)))
			got, err := store.Get(ctx, "books")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(got))

			require.NoError(t, store.Set(ctx, "books", []byte(`[]`)))
			got, err = store.Get(ctx, "books")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, store.Delete(ctx, "books"))
			_, err = store.Get(ctx, "books")
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting a missing key is not an error
			assert.NoError(t, store.Delete(ctx, "books"))
		})
	}
}

func TestStore_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.Set(ctx, " ", []byte("x")))
			_, err := store.Get(ctx, "")
			assert.Error(t, err)
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFile(dir)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Set(ctx, "books", []byte("[]")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "books.json", entries[0].Name())
}

func TestFile_PersistsAcrossOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	ctx := context.Background()

	first, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "books", []byte("[1]")))

	second, err := OpenFile(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))
}

func TestOpen(t *testing.T) {
	for _, backend := range Backends() {
		store, err := Open(backend, t.TempDir())
		require.NoError(t, err, backend)
		require.NoError(t, store.Close())
	}

	_, err := Open("redis", t.TempDir())
	assert.ErrorContains(t, err, `unknown storage backend "redis"`)
}
