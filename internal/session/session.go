// Package session resolves the signed-in user from the persisted "user" blob.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
)

// Key is the local storage key holding the user blob.
const Key = "user"

var ErrNoUser = errors.New("no signed-in user")

// idAliases are the blob fields that may carry the user id, in priority order.
var idAliases = []string{"id", "_id", "user_id", "uid"}

type User struct {
	ID    string
	Name  string
	Email string
	Token string
}

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Session loads the user once and serves the cached value afterwards. A
// failed or empty load is cached too; Reset forces a reload.
type Session struct {
	store Store

	mu     sync.Mutex
	loaded bool
	user   *User
	err    error
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) User(ctx context.Context) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.user, s.err = load(ctx, s.store)
		s.loaded = true
	}

	return s.user, s.err
}

// UserID returns the current user's id, or "" when there is none.
func (s *Session) UserID(ctx context.Context) string {
	u, err := s.User(ctx)
	if err != nil {
		return ""
	}

	return u.ID
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.user = nil
	s.err = nil
}

// Save persists a user blob and drops the cached value.
func (s *Session) Save(ctx context.Context, blob map[string]any) error {
	b, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	if err := s.store.Set(ctx, Key, b); err != nil {
		return err
	}

	s.Reset()

	return nil
}

func load(ctx context.Context, store Store) (*User, error) {
	b, err := store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil, ErrNoUser
		}

		return nil, fmt.Errorf("reading user: %w", err)
	}

	return Parse(b)
}

// Parse decodes a user blob. The id comes from the first present alias field;
// a blob without one falls back to the subject of its token.
func Parse(b []byte) (*User, error) {
	var blob map[string]any
	if err := json.Unmarshal(b, &blob); err != nil {
		return nil, fmt.Errorf("%w: decoding user: %v", ErrNoUser, err)
	}

	u := &User{
		ID:    ResolveID(blob),
		Name:  stringField(blob, "name"),
		Email: stringField(blob, "email"),
		Token: firstString(blob, "token", "access_token"),
	}

	if u.ID == "" && u.Token != "" {
		u.ID = tokenSubject(u.Token)
	}

	if u.ID == "" {
		return nil, ErrNoUser
	}

	return u, nil
}

// ResolveID returns the first non-empty id alias. Numeric ids are rendered
// without a fraction.
func ResolveID(blob map[string]any) string {
	for _, key := range idAliases {
		switch v := blob[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}

	return ""
}

// tokenSubject reads the sub claim without verifying the signature. The
// backend verifies; the client only needs the id.
func tokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}

	return sub
}

func stringField(blob map[string]any, key string) string {
	s, _ := blob[key].(string)
	return s
}

func firstString(blob map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(blob, k); s != "" {
			return s
		}
	}

	return ""
}
