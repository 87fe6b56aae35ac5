package construction

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
)

// MinSearchLength is the shortest accepted query
const MinSearchLength = 2

// SearchService runs the global search box
type SearchService struct {
	repo construction.SearchRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(repo construction.SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search returns up to ten hits across projects, clients, employees,
// providers, invoices and inspections of the organization
func (s *SearchService) Search(ctx context.Context, orgID uuid.UUID, query string) ([]SearchResultResponse, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, shared.Validation("QUERY_TOO_SHORT", "search query must have at least %d characters", MinSearchLength)
	}
	hits, err := s.repo.Search(ctx, orgID, query, construction.MaxSearchResults)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResultResponse, len(hits))
	for i, h := range hits {
		out[i] = SearchResultResponse{Type: string(h.Type), ID: h.ID, Title: h.Title, Subtitle: h.Subtitle}
	}
	return out, nil
}
