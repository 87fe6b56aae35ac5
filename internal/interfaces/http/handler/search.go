package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appconstruction "github.com/obraerp/backend/internal/application/construction"
)

// Searcher runs the global search
type Searcher interface {
	Search(ctx context.Context, orgID uuid.UUID, query string) ([]appconstruction.SearchResultResponse, error)
}

// SearchHandler serves GET /search
type SearchHandler struct {
	BaseHandler
	searcher Searcher
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search returns up to ten hits for ?q=
func (h *SearchHandler) Search(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	hits, err := h.searcher.Search(c.Request.Context(), tc.OrganizationID, c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if hits == nil {
		hits = []appconstruction.SearchResultResponse{}
	}
	h.Success(c, hits)
}
