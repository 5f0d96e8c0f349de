package project_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
	"github.com/MrJamesThe3rd/voucherdesk/internal/project"
)

type memStore struct {
	values map[string][]byte
	reads  []string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (m *memStore) GetJSON(_ context.Context, key string, out any) error {
	m.reads = append(m.reads, key)

	b, ok := m.values[key]
	if !ok {
		return localstore.ErrNotFound
	}

	return json.Unmarshal(b, out)
}

func (m *memStore) SetJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.values[key] = b

	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func sampleResults() *api.OCRResults {
	return &api.OCRResults{
		Results:  []json.RawMessage{json.RawMessage(`{"total":12}`)},
		FileURLs: []string{"https://f/1.pdf"},
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "ocr_data_p1", project.CacheKey("p1"))
}

func TestCache_MemoryFirst(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := project.NewCache(store)

	require.NoError(t, cache.Put(ctx, "p1", sampleResults()))

	got, ok, err := cache.Results(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"https://f/1.pdf"}, got.FileURLs)
	assert.Empty(t, store.reads, "persisted store must not be read while memory has the entry")
}

func TestCache_PersistedFallback(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := project.NewCache(store)

	require.NoError(t, cache.Put(ctx, "p1", sampleResults()))
	cache.Reset()

	got, ok, err := cache.Results(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"total":12}`, string(got.Results[0]))
	assert.Equal(t, []string{"ocr_data_p1"}, store.reads)

	// Rehydrated into memory: no second read.
	_, _, err = cache.Results(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, store.reads, 1)
}

func TestCache_MissAndForget(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := project.NewCache(store)

	_, ok, err := cache.Results(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "p1", sampleResults()))
	require.NoError(t, cache.Forget(ctx, "p1"))

	_, ok, err = cache.Results(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, store.values, "ocr_data_p1")
}
