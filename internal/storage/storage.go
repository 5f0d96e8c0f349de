// Package storage keeps uploaded voucher files on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid file key")

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Save copies r under a fresh key that keeps name's base as a suffix, so the
// original file name survives downloads.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	base := strings.ReplaceAll(filepath.Base(name), " ", "_")
	if base == "." || base == string(filepath.Separator) {
		base = "file"
	}

	key := uuid.NewString() + "_" + base

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return key, nil
}

// Open returns the stored file for key.
func (s *Store) Open(key string) (*os.File, error) {
	if key == "" || key != filepath.Base(key) {
		return nil, ErrInvalidKey
	}

	return os.Open(filepath.Join(s.dir, key))
}

// Handler serves stored files by key with the original name as the
// attachment file name.
func (s *Store) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := filepath.Base(r.URL.Path)

		f, err := s.Open(key)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		name := key
		if _, after, ok := strings.Cut(key, "_"); ok {
			name = after
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		http.ServeContent(w, r, name, stat.ModTime(), f)
	})
}
