package types

import "encoding/json"

// PriceRange is a storefront price band filter.
type PriceRange string

const (
	PriceRangeAll  PriceRange = "all"
	PriceRangeLow  PriceRange = "0-50"
	PriceRangeMid  PriceRange = "50-100"
	PriceRangeHigh PriceRange = "100+"
)

// PriceRanges returns every supported price band in display order.
func PriceRanges() []PriceRange {
	return []PriceRange{PriceRangeAll, PriceRangeLow, PriceRangeMid, PriceRangeHigh}
}

// Product is a single catalog record. Identity is ID; uniqueness is assumed
// from the catalog source, not enforced here.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Tags     []string `json:"tags,omitempty"`
}

// Preferences are the user-chosen filter criteria. Empty Categories or
// Brands means "no filter" for that dimension.
type Preferences struct {
	PriceRange PriceRange `json:"priceRange"`
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
}

// Normalize fills zero values so serialized preferences are stable: an
// unset price range becomes "all" and nil sets become empty slices.
func (p Preferences) Normalize() Preferences {
	if p.PriceRange == "" {
		p.PriceRange = PriceRangeAll
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Brands == nil {
		p.Brands = []string{}
	}
	return p
}

// Recommendation pairs a resolved catalog product with the model's
// explanation and confidence score.
type Recommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RecommendationResult is the caller-facing outcome of one pipeline run.
// Success and failure are distinguished by Error presence: a transport
// failure carries Error and an empty list, while a response the model
// formatted badly is still a success with Count 0.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Error           string           `json:"error,omitempty"`
}

// Failed reports whether the result represents an invocation failure.
func (r *RecommendationResult) Failed() bool {
	return r.Error != ""
}

// MarshalJSON ensures a nil Recommendations slice marshals as [] not null.
func (r RecommendationResult) MarshalJSON() ([]byte, error) {
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
	type Alias RecommendationResult
	return json.Marshal(Alias(r))
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Preferences Preferences `json:"preferences"`
}

// ViewRequest is the body of POST /api/v1/history.
type ViewRequest struct {
	ProductID string `json:"product_id"`
}

// HistoryResponse lists the session's viewed products in view order.
type HistoryResponse struct {
	SessionID string    `json:"session_id"`
	Products  []Product `json:"products"`
	Count     int       `json:"count"`
}

// MarshalJSON ensures a nil Products slice marshals as [] not null.
func (h HistoryResponse) MarshalJSON() ([]byte, error) {
	if h.Products == nil {
		h.Products = []Product{}
	}
	type Alias HistoryResponse
	return json.Marshal(Alias(h))
}

// CatalogResponse lists products, optionally after preference filtering.
type CatalogResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// MarshalJSON ensures a nil Products slice marshals as [] not null.
func (c CatalogResponse) MarshalJSON() ([]byte, error) {
	if c.Products == nil {
		c.Products = []Product{}
	}
	type Alias CatalogResponse
	return json.Marshal(Alias(c))
}

// FacetsResponse carries the filter options the storefront UI offers:
// the fixed price bands plus the distinct categories and brands present
// in the loaded catalog.
type FacetsResponse struct {
	PriceRanges []PriceRange `json:"price_ranges"`
	Categories  []string     `json:"categories"`
	Brands      []string     `json:"brands"`
}

// MarshalJSON ensures nil slices in FacetsResponse marshal as [] not null.
func (f FacetsResponse) MarshalJSON() ([]byte, error) {
	if f.PriceRanges == nil {
		f.PriceRanges = []PriceRange{}
	}
	if f.Categories == nil {
		f.Categories = []string{}
	}
	if f.Brands == nil {
		f.Brands = []string{}
	}
	type Alias FacetsResponse
	return json.Marshal(Alias(f))
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	CompletionModel string `json:"completion_model"`
	ProductCount    int    `json:"product_count"`
	CacheEntries    int    `json:"cache_entries"`
}
