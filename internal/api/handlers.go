package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/hollowaylabs/vitrine/internal/history"
	"github.com/hollowaylabs/vitrine/internal/types"
	"github.com/hollowaylabs/vitrine/internal/validation"
)

// Recommender produces recommendation results for a set of preferences and
// a browsing history.
type Recommender interface {
	Generate(ctx context.Context, prefs types.Preferences, history []string) types.RecommendationResult
	CacheSize() int
	ModelName() string
}

// Handler implements the API handlers
type Handler struct {
	catalog     *catalog.Catalog
	recommender Recommender
	sessions    *history.Manager
	apiKey      string
	version     string
}

// NewHandler creates a new Handler.
func NewHandler(c *catalog.Catalog, rec Recommender, sessions *history.Manager, apiKey, version string) *Handler {
	return &Handler{
		catalog:     c,
		recommender: rec,
		sessions:    sessions,
		apiKey:      apiKey,
		version:     version,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := types.HealthResponse{
		Status:          "healthy",
		Version:         h.version,
		CompletionModel: h.recommender.ModelName(),
		ProductCount:    h.catalog.Len(),
		CacheEntries:    h.recommender.CacheSize(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListCatalog handles GET /api/v1/catalog. Filters come from query
// parameters: priceRange holds a price band, category and brand repeat
// once per selected value.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	prefs := preferencesFromQuery(r.URL.Query())

	if errs := validation.ValidatePreferences(prefs); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid filters", errs)
		return
	}

	products := catalog.Filter(h.catalog.All(), prefs)
	resp := types.CatalogResponse{
		Products: products,
		Count:    len(products),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetFacets handles GET /api/v1/catalog/facets
func (h *Handler) GetFacets(w http.ResponseWriter, r *http.Request) {
	resp := types.FacetsResponse{
		PriceRanges: types.PriceRanges(),
		Categories:  h.catalog.Categories(),
		Brands:      h.catalog.Brands(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetProduct handles GET /api/v1/catalog/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, ok := h.catalog.Get(id)
	if !ok {
		MapCatalogError(w, r, catalog.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// GetHistory handles GET /api/v1/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	session := MustSessionFromContext(r.Context())

	resp := h.historyResponse(r.Context(), session)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RecordView handles POST /api/v1/history
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req types.ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateViewRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	if _, ok := h.catalog.Get(req.ProductID); !ok {
		MapCatalogError(w, r, catalog.ErrNotFound)
		return
	}

	session := MustSessionFromContext(r.Context())
	added := session.Add(req.ProductID)
	slog.Info("view recorded",
		"session_id", SessionIDFromContext(r.Context()),
		"product_id", req.ProductID,
		"added", added,
	)

	resp := h.historyResponse(r.Context(), session)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ClearHistory handles DELETE /api/v1/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	session := MustSessionFromContext(r.Context())
	session.Clear()
	slog.Info("history cleared", "session_id", SessionIDFromContext(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}

// Recommend handles POST /api/v1/recommendations. Provider failures do not
// fail the request: the result carries an in-band error and an empty list,
// and the storefront renders that state.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidatePreferences(req.Preferences); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	session := MustSessionFromContext(r.Context())
	result := h.recommender.Generate(r.Context(), req.Preferences, session.IDs())
	if result.Failed() {
		slog.Warn("recommendation generation failed",
			"session_id", SessionIDFromContext(r.Context()),
			"error", result.Error,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// historyResponse hydrates the session's product IDs against the catalog.
// IDs that fell out of the catalog are dropped from the listing.
func (h *Handler) historyResponse(ctx context.Context, session *history.BrowsingHistory) types.HistoryResponse {
	ids := session.IDs()
	products := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := h.catalog.Get(id); ok {
			products = append(products, p)
		}
	}

	return types.HistoryResponse{
		SessionID: SessionIDFromContext(ctx),
		Products:  products,
		Count:     len(products),
	}
}

// preferencesFromQuery builds filter preferences from catalog query params.
func preferencesFromQuery(q url.Values) types.Preferences {
	return types.Preferences{
		PriceRange: types.PriceRange(q.Get("priceRange")),
		Categories: compactParams(q["category"]),
		Brands:     compactParams(q["brand"]),
	}
}

// compactParams drops empty values so "?category=" means "no filter".
func compactParams(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
