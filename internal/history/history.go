// Package history tracks per-session product browsing activity.
package history

import "sync"

// BrowsingHistory is an ordered, deduplicated record of viewed products.
// Safe for concurrent use.
type BrowsingHistory struct {
	mu   sync.RWMutex
	ids  []string
	seen map[string]struct{}
}

// NewBrowsingHistory creates an empty browsing history.
func NewBrowsingHistory() *BrowsingHistory {
	return &BrowsingHistory{
		seen: make(map[string]struct{}),
	}
}

// Add records a product view. It returns true when the product was newly
// added; repeat views keep the original position and return false.
func (h *BrowsingHistory) Add(productID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.seen[productID]; ok {
		return false
	}
	h.seen[productID] = struct{}{}
	h.ids = append(h.ids, productID)
	return true
}

// IDs returns the viewed product IDs in view order.
func (h *BrowsingHistory) IDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}

// Len returns the number of distinct products viewed.
func (h *BrowsingHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.ids)
}

// Clear empties the history.
func (h *BrowsingHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ids = nil
	h.seen = make(map[string]struct{})
}
