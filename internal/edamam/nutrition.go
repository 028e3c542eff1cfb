package edamam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// nutritionRequest is the nutrition-details request body.
type nutritionRequest struct {
	Ingr []string `json:"ingr"`
}

// Analyze posts the ingredient lines to the nutrition-details endpoint.
func (c *Client) Analyze(ctx context.Context, lines []string) (*domain.Nutrition, error) {
	if lines == nil {
		lines = []string{}
	}
	jsonData, err := json.Marshal(nutritionRequest{Ingr: lines})
	if err != nil {
		return nil, fmt.Errorf("edamam: marshal payload: %w", err)
	}

	endpoint, err := c.endpoint(nutritionDetailsPath, c.nutrition, nil)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("edamam: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("edamam: nutrition for %d line(s)", len(lines))

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var n domain.Nutrition
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("edamam: unmarshal nutrition response: %w", err)
	}
	return &n, nil
}
