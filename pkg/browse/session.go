package browse

import (
	"context"
	"net/http"
)

type viewRequest struct {
	ProductID string `json:"product_id"`
}

// History returns the session's browsing history.
func (c *Client) History(ctx context.Context) (*History, error) {
	var out History
	if err := c.do(ctx, http.MethodGet, "/api/v1/history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordView appends a product view to the browsing history and returns
// the updated history.
func (c *Client) RecordView(ctx context.Context, productID string) (*History, error) {
	var out History
	if err := c.do(ctx, http.MethodPost, "/api/v1/history", viewRequest{ProductID: productID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearHistory empties the session's browsing history.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/history", nil, nil)
}
