package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/devfinder/internal/model"
)

// CandidateSearcher finds accounts fuzzy-matching free text.
type CandidateSearcher interface {
	SearchCandidates(ctx context.Context, query string) ([]model.Candidate, error)
}

// SearchService implements the user search flow behind the combobox.
//
// No trimming, no caching, no deduplication. The
// browser sends one request per keystroke and discards stale answers itself
// (see internal/combobox), so every call here must reach GitHub.
type SearchService struct {
	searcher CandidateSearcher
	logger   *slog.Logger
}

// NewSearchService returns a SearchService backed by searcher.
func NewSearchService(searcher CandidateSearcher, logger *slog.Logger) *SearchService {
	return &SearchService{searcher: searcher, logger: logger}
}

// Search returns the candidates for query. The empty string is a valid query.
func (s *SearchService) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	candidates, err := s.searcher.SearchCandidates(ctx, query)
	if err != nil {
		s.logger.Error("user search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("searching users: %w", err)
	}

	s.logger.Debug("user search",
		slog.String("query", query),
		slog.Int("results", len(candidates)),
	)
	return candidates, nil
}
