package browse

import (
	"context"
	"net/http"
	"net/url"
)

// Catalog lists products matching the given filters.
func (c *Client) Catalog(ctx context.Context, filters Preferences) (*CatalogPage, error) {
	path := "/api/v1/catalog"
	if q := filters.query(); q != "" {
		path += "?" + q
	}

	var out CatalogPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Facets returns the filter options the catalog offers.
func (c *Client) Facets(ctx context.Context) (*Facets, error) {
	var out Facets
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/facets", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product fetches a single product by ID.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// query encodes preferences as catalog query parameters.
func (p Preferences) query() string {
	q := url.Values{}
	if p.PriceRange != "" {
		q.Set("priceRange", string(p.PriceRange))
	}
	for _, category := range p.Categories {
		q.Add("category", category)
	}
	for _, brand := range p.Brands {
		q.Add("brand", brand)
	}
	return q.Encode()
}
