package project

import (
	"context"
	"errors"
	"sync"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
)

// CacheKey is the persisted key for a project's OCR results.
func CacheKey(projectID string) string {
	return "ocr_data_" + projectID
}

type PersistentStore interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Cache keeps OCR results in memory, backed by the persisted store. The store
// is only read when the in-memory map has no entry for the project.
type Cache struct {
	store PersistentStore

	mu  sync.Mutex
	mem map[string]*api.OCRResults
}

func NewCache(store PersistentStore) *Cache {
	return &Cache{store: store, mem: make(map[string]*api.OCRResults)}
}

// Results returns the cached results and whether there were any.
func (c *Cache) Results(ctx context.Context, projectID string) (*api.OCRResults, bool, error) {
	c.mu.Lock()
	res, ok := c.mem[projectID]
	c.mu.Unlock()

	if ok {
		return res, true, nil
	}

	var stored api.OCRResults
	if err := c.store.GetJSON(ctx, CacheKey(projectID), &stored); err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	c.mu.Lock()
	c.mem[projectID] = &stored
	c.mu.Unlock()

	return &stored, true, nil
}

// Put writes results to both layers.
func (c *Cache) Put(ctx context.Context, projectID string, res *api.OCRResults) error {
	c.mu.Lock()
	c.mem[projectID] = res
	c.mu.Unlock()

	return c.store.SetJSON(ctx, CacheKey(projectID), res)
}

// Forget drops a project from both layers.
func (c *Cache) Forget(ctx context.Context, projectID string) error {
	c.mu.Lock()
	delete(c.mem, projectID)
	c.mu.Unlock()

	return c.store.Delete(ctx, CacheKey(projectID))
}

// Reset empties the in-memory layer only.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.mem = make(map[string]*api.OCRResults)
	c.mu.Unlock()
}
