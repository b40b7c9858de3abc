package catalog

import (
	"context"
	"net/url"
	"strconv"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

type SearchFilters struct {
	Category string
	MinPrice string
	MaxPrice string
	Page     int
}

type SearchResult struct {
	Success      bool             `json:"success"`
	Query        string           `json:"query,omitempty"`
	Products     []models.Product `json:"products"`
	TotalResults int              `json:"total_results"`
	TotalPages   int              `json:"total_pages"`
	CurrentPage  int              `json:"current_page"`
}

type Suggestion struct {
	Type string `json:"type"`
	ID   int    `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
	Name string `json:"name"`
}

type AutocompleteResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Search runs a free-text product search. The API ranks by relevance; any
// other sort order is applied client side with SortProducts.
func (c *Client) Search(ctx context.Context, queryText string, filters SearchFilters) (*SearchResult, error) {
	query := url.Values{}
	query.Set("q", queryText)
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.MinPrice != "" {
		query.Set("min_price", filters.MinPrice)
	}
	if filters.MaxPrice != "" {
		query.Set("max_price", filters.MaxPrice)
	}
	if filters.Page > 1 {
		query.Set("page", strconv.Itoa(filters.Page))
	}

	var result SearchResult
	if err := c.get(ctx, "/api/search/", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Autocomplete(ctx context.Context, queryText string) (*AutocompleteResult, error) {
	query := url.Values{}
	query.Set("q", queryText)

	var result AutocompleteResult
	if err := c.get(ctx, "/api/search/autocomplete/", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
