package submission

import (
	"context"
	"fmt"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// List returns every submission in creation order with vote counts
// overlaid for sessionID. sessionID may be empty.
func (s *Service) List(ctx context.Context, sessionID string) ([]domain.FeedItem, error) {
	return s.Browse(ctx, sessionID, BrowseInput{})
}

// Browse filters the feed by tab and free-text query, preserving creation
// order, and overlays vote state for sessionID.
func (s *Service) Browse(ctx context.Context, sessionID string, input BrowseInput) ([]domain.FeedItem, error) {
	tab, err := domain.ParseTab(input.Tab)
	if err != nil {
		return nil, err
	}

	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	filtered := domain.FilterSubmissions(subs, tab, input.Query)

	items := make([]domain.FeedItem, len(filtered))
	for i, sub := range filtered {
		items[i] = s.overlay(sessionID, sub)
	}
	return items, nil
}

// Get returns a single submission with vote state for sessionID.
func (s *Service) Get(ctx context.Context, sessionID string, id int64) (*domain.FeedItem, error) {
	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	item := s.overlay(sessionID, *sub)
	return &item, nil
}
