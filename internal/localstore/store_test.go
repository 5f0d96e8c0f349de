package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
)

func openStore(t *testing.T) *localstore.Store {
	t.Helper()

	s, err := localstore.Open(context.Background(), filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)

	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Get(ctx, "user")
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"u1"}`)))
	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"u2"}`)))

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u2"}`, string(got))

	require.NoError(t, s.Delete(ctx, "user"))

	_, err = s.Get(ctx, "user")
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestStore_JSON(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	type payload struct {
		Results []int `json:"results"`
	}

	require.NoError(t, s.SetJSON(ctx, "ocr_data_p1", payload{Results: []int{1, 2}}))

	var got payload
	require.NoError(t, s.GetJSON(ctx, "ocr_data_p1", &got))
	assert.Equal(t, []int{1, 2}, got.Results)

	require.NoError(t, s.Set(ctx, "broken", []byte("{")))
	assert.Error(t, s.GetJSON(ctx, "broken", &got))
}

func TestOpen_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := localstore.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = localstore.Open(ctx, path)
	require.NoError(t, err)

	defer s.Close()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
