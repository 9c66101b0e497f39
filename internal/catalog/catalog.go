// Package catalog manages the product inventory backing the storefront.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hollowaylabs/vitrine/internal/types"
)

// Catalog is an in-memory view of the product inventory.
// It is read-only after New() returns and safe for concurrent use.
type Catalog struct {
	products []types.Product
	byID     map[string]types.Product
}

// New builds a catalog from the given products, preserving their order.
func New(products []types.Product) *Catalog {
	byID := make(map[string]types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{
		products: products,
		byID:     byID,
	}
}

// All returns every product in catalog order.
func (c *Catalog) All() []types.Product {
	out := make([]types.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given ID, if present.
func (c *Catalog) Get(id string) (types.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns the distinct non-empty product categories, sorted.
func (c *Catalog) Categories() []string {
	return c.distinct(func(p types.Product) string { return p.Category })
}

// Brands returns the distinct non-empty product brands, sorted.
func (c *Catalog) Brands() []string {
	return c.distinct(func(p types.Product) string { return p.Brand })
}

func (c *Catalog) distinct(key func(types.Product) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range c.products {
		v := key(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ReadProductsFile loads a product list from a JSON file.
func ReadProductsFile(path string) ([]types.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var products []types.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse products file: %w", err)
	}

	return products, nil
}
