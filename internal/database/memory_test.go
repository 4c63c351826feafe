package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID      string    `bson:"_id"`
	Name    string    `bson:"name"`
	Count   int       `bson:"count"`
	Created time.Time `bson:"created"`
}

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := testDoc{ID: "a", Name: "first", Count: 3, Created: time.Now().UTC().Truncate(time.Millisecond)}
	require.NoError(t, store.Set(ctx, "docs", "a", in))

	var out testDoc
	require.NoError(t, store.Get(ctx, "docs", "a", &out))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Count, out.Count)
	assert.True(t, in.Created.Equal(out.Created))
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	var out testDoc
	err := store.Get(context.Background(), "docs", "missing", &out)
	assert.True(t, IsNotFound(err))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "get", perr.Op)
	assert.Equal(t, "docs", perr.Collection)
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "docs", "a", testDoc{ID: "a", Name: "v1"}))
	require.NoError(t, store.Set(ctx, "docs", "a", testDoc{ID: "a", Name: "v2"}))

	var out testDoc
	require.NoError(t, store.Get(ctx, "docs", "a", &out))
	assert.Equal(t, "v2", out.Name)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "docs", "a", testDoc{ID: "a", Name: "first", Count: 1}))
	require.NoError(t, store.Update(ctx, "docs", "a", map[string]any{"count": 9}))

	var out testDoc
	require.NoError(t, store.Get(ctx, "docs", "a", &out))
	assert.Equal(t, 9, out.Count)
	assert.Equal(t, "first", out.Name, "untouched fields survive a partial update")

	err := store.Update(ctx, "docs", "missing", map[string]any{"count": 1})
	assert.True(t, IsNotFound(err))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "docs", "a", testDoc{ID: "a"}))
	require.NoError(t, store.Delete(ctx, "docs", "a"))

	var out testDoc
	assert.True(t, IsNotFound(store.Get(ctx, "docs", "a", &out)))
	assert.True(t, IsNotFound(store.Delete(ctx, "docs", "a")))
}

func TestMemoryStoreFindFilterAndSort(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	docs := []testDoc{
		{ID: "a", Name: "alpha", Count: 2},
		{ID: "b", Name: "beta", Count: 2},
		{ID: "c", Name: "gamma", Count: 7},
	}
	for _, d := range docs {
		require.NoError(t, store.Set(ctx, "docs", d.ID, d))
	}

	var out []testDoc
	require.NoError(t, store.Find(ctx, "docs", Query{
		Filter: map[string]any{"count": 2},
		SortBy: "name",
	}, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0].Name)
	assert.Equal(t, "beta", out[1].Name)

	require.NoError(t, store.Find(ctx, "docs", Query{SortBy: "count", SortDesc: true}, &out))
	require.Len(t, out, 3)
	assert.Equal(t, 7, out[0].Count)
}

func TestMemoryStoreFindSortsByTime(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Set(ctx, "docs", "old", testDoc{ID: "old", Created: now.Add(-time.Hour)}))
	require.NoError(t, store.Set(ctx, "docs", "new", testDoc{ID: "new", Created: now}))

	var out []testDoc
	require.NoError(t, store.Find(ctx, "docs", Query{SortBy: "created", SortDesc: true}, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].ID)
}

func TestMemoryStoreFindNamedStringFilter(t *testing.T) {
	type role string
	type account struct {
		ID   string `bson:"_id"`
		Role role   `bson:"role"`
	}

	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "accounts", "u1", account{ID: "u1", Role: "admin"}))
	require.NoError(t, store.Set(ctx, "accounts", "u2", account{ID: "u2", Role: "cashier"}))

	var out []account
	require.NoError(t, store.Find(ctx, "accounts", Query{Filter: map[string]any{"role": role("admin")}}, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].ID)
}

func TestMemoryStoreFindEmptyCollection(t *testing.T) {
	store := NewMemoryStore()

	var out []testDoc
	require.NoError(t, store.Find(context.Background(), "docs", Query{}, &out))
	assert.Empty(t, out)
}
