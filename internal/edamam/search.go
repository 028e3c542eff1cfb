package edamam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// searchResponse is the part of the search envelope we read. Hits is kept
// raw so a malformed hits field degrades to no results instead of failing
// the whole response.
type searchResponse struct {
	Hits json.RawMessage `json:"hits"`
}

// SearchParams returns the query parameters for q: the comma-joined
// ingredient names plus every non-empty facet.
func SearchParams(q domain.SearchQuery) url.Values {
	v := url.Values{}
	v.Set("q", strings.Join(q.Ingredients, ","))
	for _, f := range domain.Facets {
		if val := q.Filters.Get(f); val != "" {
			v.Set(f.Param(), val)
		}
	}
	return v
}

// Search runs a recipe search. Transport errors, non-2xx statuses and
// bodies that are not a JSON object are errors; an absent or malformed
// hits field is an empty result.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.RecipeHit, error) {
	endpoint, err := c.endpoint(searchPath, c.search, SearchParams(q))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("edamam: create request: %w", err)
	}

	c.log.Debug("edamam: search q=%q filters=%+v", strings.Join(q.Ingredients, ","), q.Filters)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var env searchResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("edamam: unmarshal search response: %w", err)
	}

	hits := []domain.RecipeHit{}
	if len(env.Hits) == 0 || string(env.Hits) == "null" {
		return hits, nil
	}
	if err := json.Unmarshal(env.Hits, &hits); err != nil {
		c.log.Warn("edamam: ignoring malformed hits: %v", err)
		return []domain.RecipeHit{}, nil
	}
	return hits, nil
}
