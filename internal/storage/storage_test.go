package storage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/storage"
)

func TestStore_SaveAndServe(t *testing.T) {
	s, err := storage.New(t.TempDir())
	require.NoError(t, err)

	key, err := s.Save("my receipt.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_my_receipt.pdf"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/"+key, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="my_receipt.pdf"`, rec.Header().Get("Content-Disposition"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "content", string(body))
}

func TestStore_Open(t *testing.T) {
	s, err := storage.New(t.TempDir())
	require.NoError(t, err)

	type testCase struct {
		name    string
		key     string
		wantErr error
	}

	tests := []testCase{
		{name: "Empty", key: "", wantErr: storage.ErrInvalidKey},
		{name: "Traversal", key: "../secret", wantErr: storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.key)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = s.Open("missing")
	assert.Error(t, err)
}
