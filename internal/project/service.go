// Package project runs OCR over projects and caches the results client-side.
package project

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/session"
)

//go:generate mockgen -source=service.go -destination=client_mock.go -package=project
type Client interface {
	RunOCR(ctx context.Context, userID, projectID string) (*api.OCRResults, error)
	GetOCRResults(ctx context.Context, projectID, userID string) (*api.OCRResults, error)
	DeleteProject(ctx context.Context, projectID string) (string, error)
}

type Identity interface {
	UserID(ctx context.Context) string
}

type Service struct {
	client   Client
	cache    *Cache
	identity Identity
}

func NewService(client Client, cache *Cache, identity Identity) *Service {
	return &Service{client: client, cache: cache, identity: identity}
}

// Run starts OCR for the project. Results returned inline are cached.
func (s *Service) Run(ctx context.Context, projectID string) error {
	userID := s.identity.UserID(ctx)
	if userID == "" {
		return session.ErrNoUser
	}

	res, err := s.client.RunOCR(ctx, userID, projectID)
	if err != nil {
		return fmt.Errorf("running ocr: %w", err)
	}

	if res != nil && len(res.Results) > 0 {
		return s.cache.Put(ctx, projectID, res)
	}

	return nil
}

// Results serves cached results unless refresh is set or nothing is cached,
// in which case they are fetched and cached.
func (s *Service) Results(ctx context.Context, projectID string, refresh bool) (*api.OCRResults, error) {
	if !refresh {
		res, ok, err := s.cache.Results(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("reading cached results: %w", err)
		}

		if ok {
			return res, nil
		}
	}

	userID := s.identity.UserID(ctx)
	if userID == "" {
		return nil, session.ErrNoUser
	}

	res, err := s.client.GetOCRResults(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching ocr results: %w", err)
	}

	if err := s.cache.Put(ctx, projectID, res); err != nil {
		return nil, fmt.Errorf("caching ocr results: %w", err)
	}

	return res, nil
}

func (s *Service) Delete(ctx context.Context, projectID string) error {
	if _, err := s.client.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return s.cache.Forget(ctx, projectID)
}
