package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/kv"
)

// flakyKV wraps a memory store and fails reads or writes on demand.
type flakyKV struct {
	*kv.Memory
	mu        sync.Mutex
	failGet   error
	failSet   error
	setCalled int
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	err := f.failGet
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.setCalled++
	err := f.failSet
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.Set(ctx, key, value)
}

func newTestStore(t *testing.T) (*Store, *flakyKV) {
	t.Helper()
	backend := &flakyKV{Memory: kv.NewMemory()}
	return New(backend), backend
}

func dune() books.Fields {
	return books.Fields{Title: "Dune", Author: "Herbert", PagesRead: "100", TotalPages: "400"}
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Load(context.Background()))

	snap := store.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Empty(t, snap.Books)
	assert.NoError(t, snap.LastError)
}

func TestCreate_ThenLoad(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)

	first, err := store.Create(ctx, dune())
	require.NoError(t, err)
	second, err := store.Create(ctx, books.Fields{Title: "Emma", Author: "Austen", PagesRead: "0", TotalPages: "300"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	reloaded := New(backend)
	require.NoError(t, reloaded.Load(ctx))
	snap := reloaded.Snapshot()
	require.Len(t, snap.Books, 2)
	assert.Equal(t, books.Book{ID: first.ID, Title: "Dune", Author: "Herbert", PagesRead: 100, TotalPages: 400}, snap.Books[0])
	assert.Equal(t, second.ID, snap.Books[1].ID)
}

func TestCreate_ValidationLeavesStorageUntouched(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)
	writes := backend.setCalled

	_, err = store.Create(ctx, books.Fields{Title: "Dune", PagesRead: "1", TotalPages: "2"})
	assert.ErrorIs(t, err, books.ErrMissingFields)
	assert.Equal(t, writes, backend.setCalled)
	assert.Len(t, store.Snapshot().Books, 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	a, err := store.Create(ctx, dune())
	require.NoError(t, err)
	b, err := store.Create(ctx, books.Fields{Title: "Emma", Author: "Austen", PagesRead: "0", TotalPages: "300"})
	require.NoError(t, err)

	ok, err := store.Update(ctx, a.ID, books.Fields{Title: "Dune Messiah", Author: "Herbert", PagesRead: "10", TotalPages: "256"})
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Load(ctx))
	got, found := store.Find(a.ID)
	require.True(t, found)
	assert.Equal(t, books.Book{ID: a.ID, Title: "Dune Messiah", Author: "Herbert", PagesRead: 10, TotalPages: 256}, got)

	other, _ := store.Find(b.ID)
	assert.Equal(t, b, other)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)
	writes := backend.setCalled

	ok, err := store.Update(ctx, "missing", dune())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, backend.setCalled)
}

func TestUpdate_ValidationError(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	a, err := store.Create(ctx, dune())
	require.NoError(t, err)

	ok, err := store.Update(ctx, a.ID, books.Fields{Title: "x", Author: "", PagesRead: "1", TotalPages: "1"})
	assert.ErrorIs(t, err, books.ErrMissingFields)
	assert.False(t, ok)
	got, _ := store.Find(a.ID)
	assert.Equal(t, "Dune", got.Title)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	a, err := store.Create(ctx, dune())
	require.NoError(t, err)
	_, err = store.Create(ctx, dune())
	require.NoError(t, err)

	ok, err := store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Load(ctx))
	assert.Len(t, store.Snapshot().Books, 1)
	_, found := store.Find(a.ID)
	assert.False(t, found)

	ok, err = store.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, store.Snapshot().Books, 1)
}

func TestIncrementDecrement_Clamp(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	b, err := store.Create(ctx, books.Fields{Title: "Short", Author: "A", PagesRead: "1", TotalPages: "2"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := store.IncrementPages(ctx, b.ID)
		require.NoError(t, err)
	}
	got, _ := store.Find(b.ID)
	assert.Equal(t, books.Pages(2), got.PagesRead)

	for i := 0; i < 5; i++ {
		_, err := store.DecrementPages(ctx, b.ID)
		require.NoError(t, err)
	}
	got, _ = store.Find(b.ID)
	assert.Equal(t, books.Pages(0), got.PagesRead)

	ok, err := store.IncrementPages(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncrement_ZeroTotalStaysAtZero(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	b, err := store.Create(ctx, books.Fields{Title: "Empty", Author: "A", PagesRead: "0", TotalPages: "0"})
	require.NoError(t, err)

	_, err = store.IncrementPages(ctx, b.ID)
	require.NoError(t, err)
	got, _ := store.Find(b.ID)
	assert.Equal(t, books.Pages(0), got.PagesRead)
}

func TestLoad_DecodeErrorKeepsPreviousData(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)

	require.NoError(t, backend.Memory.Set(ctx, books.StorageKey, []byte("{not json")))
	err = store.Load(ctx)
	require.Error(t, err)

	snap := store.Snapshot()
	assert.Len(t, snap.Books, 1)
	assert.Error(t, snap.LastError)
	assert.Equal(t, 1, snap.ConsecutiveFailures)

	require.NoError(t, store.Load(ctx))
	assert.False(t, store.Snapshot().IsDegraded())
}

func TestLoad_ReadErrorsCount(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	backend.failGet = errors.New("disk on fire")

	assert.Error(t, store.Load(ctx))
	assert.Error(t, store.Load(ctx))
	snap := store.Snapshot()
	assert.Equal(t, 2, snap.ConsecutiveFailures)
	assert.True(t, snap.IsDegraded())
	assert.ErrorContains(t, snap.LastError, "disk on fire")

	backend.failGet = nil
	require.NoError(t, store.Load(ctx))
	assert.Equal(t, 0, store.Snapshot().ConsecutiveFailures)
}

func TestWriteFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)

	backend.failSet = errors.New("read-only")
	_, err = store.Create(ctx, dune())
	require.ErrorContains(t, err, "read-only")
	assert.Len(t, store.Snapshot().Books, 1)

	backend.failSet = nil
	require.NoError(t, store.Load(ctx))
	assert.Len(t, store.Snapshot().Books, 1)
}

func TestLoad_NormalizesStringPagesOnNextWrite(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, backend.Memory.Set(ctx, books.StorageKey,
		[]byte(`[{"id":"1","title":"Dune","author":"Herbert","pagesRead":"100","totalPages":"400"}]`)))

	require.NoError(t, store.Load(ctx))
	got, _ := store.Find("1")
	assert.Equal(t, books.Pages(100), got.PagesRead)

	_, err := store.IncrementPages(ctx, "1")
	require.NoError(t, err)
	raw, err := backend.Memory.Get(ctx, books.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"Dune","author":"Herbert","pagesRead":101,"totalPages":400}]`, string(raw))
}

func TestMutationsSeeExternalWrites(t *testing.T) {
	ctx := context.Background()
	backend := &flakyKV{Memory: kv.NewMemory()}
	ui := New(backend)
	cli := New(backend)
	require.NoError(t, ui.Load(ctx))

	added, err := cli.Create(ctx, dune())
	require.NoError(t, err)

	// ui has a stale view but its own write must not drop the cli's book
	_, err = ui.Create(ctx, dune())
	require.NoError(t, err)
	_, found := ui.Find(added.ID)
	assert.True(t, found)
	assert.Len(t, ui.Snapshot().Books, 2)
}

func TestSaveAll(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)

	list := []books.Book{{ID: "x", Title: "Only", Author: "One", PagesRead: 1, TotalPages: 2}}
	require.NoError(t, store.SaveAll(ctx, list))
	list[0].Title = "mutated after save"

	require.NoError(t, store.Load(ctx))
	snap := store.Snapshot()
	require.Len(t, snap.Books, 1)
	assert.Equal(t, "Only", snap.Books[0].Title)
}

func TestSaveAll_RejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	kept, err := store.Create(ctx, dune())
	require.NoError(t, err)

	list := []books.Book{
		{ID: "x", Title: "One", Author: "A", PagesRead: 1, TotalPages: 2},
		{ID: "x", Title: "Two", Author: "B", PagesRead: 1, TotalPages: 2},
	}
	writes := backend.setCalled
	err = store.SaveAll(ctx, list)
	require.ErrorIs(t, err, books.ErrDuplicateID)
	assert.ErrorContains(t, err, `"x"`)
	assert.Equal(t, writes, backend.setCalled)

	require.NoError(t, store.Load(ctx))
	snap := store.Snapshot()
	require.Len(t, snap.Books, 1)
	assert.Equal(t, kept.ID, snap.Books[0].ID)
}

func TestIncrementDecrement_OutOfRangeLeftAlone(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	over, err := store.Create(ctx, books.Fields{Title: "Over", Author: "A", PagesRead: "500", TotalPages: "400"})
	require.NoError(t, err)
	under, err := store.Create(ctx, books.Fields{Title: "Under", Author: "B", PagesRead: "-3", TotalPages: "400"})
	require.NoError(t, err)

	_, err = store.IncrementPages(ctx, over.ID)
	require.NoError(t, err)
	_, err = store.DecrementPages(ctx, under.ID)
	require.NoError(t, err)

	got, _ := store.Find(over.ID)
	assert.Equal(t, books.Pages(500), got.PagesRead)
	got, _ = store.Find(under.ID)
	assert.Equal(t, books.Pages(-3), got.PagesRead)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, err := store.Create(ctx, dune())
	require.NoError(t, err)

	snap := store.Snapshot()
	snap.Books[0].Title = "changed"
	assert.Equal(t, "Dune", store.Snapshot().Books[0].Title)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	defer cancel()

	created, err := store.Create(ctx, dune())
	require.NoError(t, err)

	select {
	case snap := <-ch:
		require.Len(t, snap.Books, 1)
		assert.Equal(t, created.ID, snap.Books[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after create")
	}
}

func TestSubscribe_CoalescesToLatest(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	defer cancel()

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, dune())
		require.NoError(t, err)
	}

	snap := <-ch
	assert.Len(t, snap.Books, 3)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra snapshot with %d books", len(extra.Books))
	default:
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	store, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	require.NoError(t, store.Load(context.Background()))
}
