package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
	"github.com/MrJamesThe3rd/voucherdesk/internal/session"
)

type memStore struct {
	values map[string][]byte
	gets   int
	err    error
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++

	if m.err != nil {
		return nil, m.err
	}

	v, ok := m.values[key]
	if !ok {
		return nil, localstore.ErrNotFound
	}

	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}

	m.values[key] = value

	return nil
}

func TestParse_IDAliases(t *testing.T) {
	type testCase struct {
		name   string
		blob   string
		wantID string
	}

	tests := []testCase{
		{name: "ID", blob: `{"id": "a", "_id": "b"}`, wantID: "a"},
		{name: "MongoID", blob: `{"_id": "b", "user_id": "c"}`, wantID: "b"},
		{name: "UserID", blob: `{"user_id": "c", "uid": "d"}`, wantID: "c"},
		{name: "UID", blob: `{"uid": "d"}`, wantID: "d"},
		{name: "Numeric", blob: `{"user_id": 42}`, wantID: "42"},
		{name: "EmptyAliasSkipped", blob: `{"id": "", "uid": "d"}`, wantID: "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := session.Parse([]byte(tt.blob))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
		})
	}
}

func TestParse_TokenSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u-77"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	u, err := session.Parse([]byte(`{"name": "Ana", "token": "` + token + `"}`))
	require.NoError(t, err)
	assert.Equal(t, "u-77", u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, token, u.Token)
}

func TestParse_NoUser(t *testing.T) {
	for _, blob := range []string{`{}`, `{"name": "x"}`, `{"token": "garbage"}`, `not json`} {
		_, err := session.Parse([]byte(blob))
		assert.ErrorIs(t, err, session.ErrNoUser, blob)
	}
}

func TestSession_CachesLoad(t *testing.T) {
	ctx := context.Background()
	store := &memStore{values: map[string][]byte{session.Key: []byte(`{"id": "u1"}`)}}
	s := session.New(store)

	assert.Equal(t, "u1", s.UserID(ctx))
	assert.Equal(t, "u1", s.UserID(ctx))
	assert.Equal(t, 1, store.gets)

	require.NoError(t, s.Save(ctx, map[string]any{"uid": "u2"}))
	assert.Equal(t, "u2", s.UserID(ctx))
	assert.Equal(t, 2, store.gets)
}

func TestSession_Missing(t *testing.T) {
	ctx := context.Background()
	s := session.New(&memStore{})

	_, err := s.User(ctx)
	assert.ErrorIs(t, err, session.ErrNoUser)
	assert.Empty(t, s.UserID(ctx))
}

func TestSession_StoreError(t *testing.T) {
	s := session.New(&memStore{err: errors.New("disk")})

	_, err := s.User(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNoUser)
}
