package browse

import (
	"context"
	"net/http"
)

type recommendRequest struct {
	Preferences Preferences `json:"preferences"`
}

// Recommend asks the server for personalized recommendations based on the
// given preferences and the session's browsing history. Provider failures
// are reported in the result's Error field, not as a Go error, mirroring
// the API contract.
func (c *Client) Recommend(ctx context.Context, prefs Preferences) (*RecommendationResult, error) {
	var out RecommendationResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/recommendations", recommendRequest{Preferences: prefs}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
