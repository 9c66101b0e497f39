// Package browse is the Go client for the Vitrine storefront API.
package browse

import (
	"time"
)

// PriceRange is a storefront price band filter.
type PriceRange string

const (
	PriceRangeAll    PriceRange = "all"
	PriceRangeLow    PriceRange = "0-50"
	PriceRangeMedium PriceRange = "50-100"
	PriceRangeHigh   PriceRange = "100+"
)

// Config holds the Browse client configuration
type Config struct {
	BaseURL   string        // Vitrine server URL (required)
	APIKey    string        // Bearer token; empty for open servers
	SessionID string        // Resume an existing session; empty lets the server mint one
	Timeout   time.Duration // HTTP timeout (default: 30 seconds)
}

// Product is a catalog entry.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Tags     []string `json:"tags,omitempty"`
}

// Preferences are the filter criteria sent with catalog and
// recommendation requests. Zero values mean "no filter".
type Preferences struct {
	PriceRange PriceRange `json:"priceRange,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Brands     []string   `json:"brands,omitempty"`
}

// Recommendation pairs a product with the model's explanation and
// confidence score.
type Recommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RecommendationResult is the outcome of one recommendation request.
// A non-empty Error means the completion provider failed; the
// recommendation list is empty in that case.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Error           string           `json:"error,omitempty"`
}

// Failed reports whether the result represents a provider failure.
func (r *RecommendationResult) Failed() bool {
	return r.Error != ""
}

// CatalogPage is a filtered catalog listing.
type CatalogPage struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// Facets are the filter options the storefront offers.
type Facets struct {
	PriceRanges []PriceRange `json:"price_ranges"`
	Categories  []string     `json:"categories"`
	Brands      []string     `json:"brands"`
}

// History is the session's browsing history, most recent last.
type History struct {
	SessionID string    `json:"session_id"`
	Products  []Product `json:"products"`
	Count     int       `json:"count"`
}

// Health reports server status and pipeline counters.
type Health struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	CompletionModel string `json:"completion_model"`
	ProductCount    int    `json:"product_count"`
	CacheEntries    int    `json:"cache_entries"`
}
