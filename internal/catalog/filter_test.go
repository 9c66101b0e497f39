package catalog

import (
	"testing"

	"github.com/hollowaylabs/vitrine/internal/types"
)

func filterIDs(products []types.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestFilter_NoPreferencesReturnsEverything(t *testing.T) {
	products := testProducts()

	got := Filter(products, types.Preferences{})
	if len(got) != len(products) {
		t.Errorf("Filter(no prefs) returned %d products, want %d", len(got), len(products))
	}
}

func TestFilter_PriceRangeAll(t *testing.T) {
	products := testProducts()

	got := Filter(products, types.Preferences{PriceRange: types.PriceRangeAll})
	if len(got) != len(products) {
		t.Errorf("Filter(all) returned %d products, want %d", len(got), len(products))
	}
}

func TestFilter_PriceRangeLow(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{PriceRange: types.PriceRangeLow})

	// prod003 at 45.00 and prod004 at exactly 50.00 both qualify
	ids := filterIDs(got)
	if len(ids) != 2 || ids[0] != "prod003" || ids[1] != "prod004" {
		t.Errorf("Filter(0-50) = %v, want [prod003 prod004]", ids)
	}
}

func TestFilter_PriceRangeMid(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{PriceRange: types.PriceRangeMid})

	// 50.00 belongs to the low band; 100.00 still counts as mid
	ids := filterIDs(got)
	if len(ids) != 2 || ids[0] != "prod001" || ids[1] != "prod006" {
		t.Errorf("Filter(50-100) = %v, want [prod001 prod006]", ids)
	}
}

func TestFilter_PriceRangeHigh(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{PriceRange: types.PriceRangeHigh})

	ids := filterIDs(got)
	if len(ids) != 2 || ids[0] != "prod002" || ids[1] != "prod005" {
		t.Errorf("Filter(100+) = %v, want [prod002 prod005]", ids)
	}
}

func TestFilter_BandBoundaries(t *testing.T) {
	products := []types.Product{
		{ID: "at50", Price: 50.00},
		{ID: "just-over-50", Price: 50.01},
		{ID: "at100", Price: 100.00},
		{ID: "just-over-100", Price: 100.01},
	}

	low := filterIDs(Filter(products, types.Preferences{PriceRange: types.PriceRangeLow}))
	if len(low) != 1 || low[0] != "at50" {
		t.Errorf("low band = %v, want [at50]", low)
	}

	mid := filterIDs(Filter(products, types.Preferences{PriceRange: types.PriceRangeMid}))
	if len(mid) != 2 || mid[0] != "just-over-50" || mid[1] != "at100" {
		t.Errorf("mid band = %v, want [just-over-50 at100]", mid)
	}

	high := filterIDs(Filter(products, types.Preferences{PriceRange: types.PriceRangeHigh}))
	if len(high) != 1 || high[0] != "just-over-100" {
		t.Errorf("high band = %v, want [just-over-100]", high)
	}
}

func TestFilter_ByCategory(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{Categories: []string{"Footwear"}})

	ids := filterIDs(got)
	if len(ids) != 3 || ids[0] != "prod001" || ids[1] != "prod003" || ids[2] != "prod006" {
		t.Errorf("Filter(Footwear) = %v, want [prod001 prod003 prod006]", ids)
	}
}

func TestFilter_ByMultipleCategories(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{Categories: []string{"Bags", "Electronics"}})

	if len(got) != 3 {
		t.Errorf("Filter(Bags|Electronics) returned %d products, want 3", len(got))
	}
}

func TestFilter_ByBrand(t *testing.T) {
	got := Filter(testProducts(), types.Preferences{Brands: []string{"SportsFlex"}})

	ids := filterIDs(got)
	if len(ids) != 2 || ids[0] != "prod001" || ids[1] != "prod004" {
		t.Errorf("Filter(SportsFlex) = %v, want [prod001 prod004]", ids)
	}
}

func TestFilter_Combined(t *testing.T) {
	prefs := types.Preferences{
		PriceRange: types.PriceRangeMid,
		Categories: []string{"Footwear"},
		Brands:     []string{"SportsFlex"},
	}

	got := Filter(testProducts(), prefs)
	ids := filterIDs(got)
	if len(ids) != 1 || ids[0] != "prod001" {
		t.Errorf("Filter(combined) = %v, want [prod001]", ids)
	}
}

func TestFilter_NoMatches(t *testing.T) {
	prefs := types.Preferences{
		PriceRange: types.PriceRangeHigh,
		Categories: []string{"Footwear"},
		Brands:     []string{"AudioPhase"},
	}

	got := Filter(testProducts(), prefs)
	if got == nil {
		t.Error("Filter should return empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("Filter(impossible prefs) returned %d products, want 0", len(got))
	}
}

func TestFilter_PreservesOrderAndInput(t *testing.T) {
	products := testProducts()
	original := filterIDs(products)

	Filter(products, types.Preferences{Categories: []string{"Footwear"}})

	after := filterIDs(products)
	for i := range original {
		if original[i] != after[i] {
			t.Fatalf("Filter mutated its input at index %d: %q -> %q", i, original[i], after[i])
		}
	}
}
