package recommend

import (
	"strings"
	"testing"

	"github.com/hollowaylabs/vitrine/internal/types"
)

func promptFixtures() (types.Preferences, []string, []types.Product) {
	prefs := types.Preferences{
		PriceRange: types.PriceRangeAll,
		Categories: []string{"Footwear"},
		Brands:     []string{},
	}
	history := []string{"prod001", "prod003"}
	products := []types.Product{
		{ID: "prod001", Name: "Ultra-Comfort Running Shoes", Category: "Footwear", Brand: "SportsFlex", Price: 89.99, Tags: []string{"running"}},
		{ID: "prod002", Name: "Wireless Earbuds Pro", Category: "Electronics", Brand: "AudioPhase", Price: 129.99},
		{ID: "prod003", Name: "Everyday Canvas Sneakers", Category: "Footwear", Brand: "UrbanStep", Price: 45.00},
		{ID: "prod004", Name: "Smart Fitness Band", Category: "Electronics", Brand: "SportsFlex", Price: 50.00},
		{ID: "prod005", Name: "Leather Weekend Duffel", Category: "Bags", Brand: "Voyager", Price: 159.50},
		{ID: "prod006", Name: "Trail Hiking Boots", Category: "Footwear", Brand: "SummitGear", Price: 100.00},
		{ID: "prod007", Name: "Insulated Water Bottle", Category: "Outdoors", Brand: "SummitGear", Price: 24.99},
	}
	return prefs, history, products
}

func TestBuildPrompt_SectionsInOrder(t *testing.T) {
	prefs, history, products := promptFixtures()

	prompt := BuildPrompt(prefs, history, products, 5)

	sections := []string{
		"User Preferences:\n",
		"Browsing History:\n",
		"Available Products (sample):\n",
		"Please recommend between 3 to 5 products",
		"confidence score (1-10)",
		`[{"id": "prodXYZ", "explanation": "Because...", "confidence_score": 8}, ...]`,
	}

	pos := 0
	for _, section := range sections {
		idx := strings.Index(prompt[pos:], section)
		if idx == -1 {
			t.Fatalf("prompt missing section %q (after offset %d):\n%s", section, pos, prompt)
		}
		pos += idx + len(section)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	prefs, history, products := promptFixtures()

	first := BuildPrompt(prefs, history, products, 5)
	second := BuildPrompt(prefs, history, products, 5)

	if first != second {
		t.Error("BuildPrompt is not byte-stable for identical input")
	}
}

func TestBuildPrompt_SampleIsFirstN(t *testing.T) {
	prefs, history, products := promptFixtures()

	prompt := BuildPrompt(prefs, history, products, 5)

	for _, id := range []string{"prod001", "prod002", "prod003", "prod004", "prod005"} {
		if !strings.Contains(prompt, id) {
			t.Errorf("prompt missing sampled product %s", id)
		}
	}
	if strings.Contains(prompt, "prod006") || strings.Contains(prompt, "prod007") {
		t.Error("prompt should only include the first 5 products")
	}
}

func TestBuildPrompt_SampleLargerThanCatalog(t *testing.T) {
	prefs, history, _ := promptFixtures()
	products := []types.Product{{ID: "prod001", Name: "Only One", Price: 9.99}}

	prompt := BuildPrompt(prefs, history, products, 5)

	if !strings.Contains(prompt, "prod001") {
		t.Error("prompt should include the whole catalog when smaller than the sample size")
	}
}

func TestBuildPrompt_EmptyHistoryRendersArray(t *testing.T) {
	prefs, _, products := promptFixtures()

	prompt := BuildPrompt(prefs, nil, products, 5)

	if !strings.Contains(prompt, "Browsing History:\n[]") {
		t.Errorf("nil history should render as [], got:\n%s", prompt)
	}
}

func TestBuildPrompt_EmptyCatalogRendersArray(t *testing.T) {
	prefs, history, _ := promptFixtures()

	prompt := BuildPrompt(prefs, history, nil, 5)

	if !strings.Contains(prompt, "Available Products (sample):\n[]") {
		t.Errorf("empty catalog should render as [], got:\n%s", prompt)
	}
}

func TestBuildPrompt_RendersNormalizedPreferences(t *testing.T) {
	_, history, products := promptFixtures()
	prefs := types.Preferences{
		PriceRange: types.PriceRangeMid,
		Categories: []string{"Footwear"},
		Brands:     []string{"SportsFlex"},
	}.Normalize()

	prompt := BuildPrompt(prefs, history, products, 5)

	if !strings.Contains(prompt, `"priceRange": "50-100"`) {
		t.Error("prompt missing priceRange value")
	}
	if !strings.Contains(prompt, `"Footwear"`) {
		t.Error("prompt missing category value")
	}
}

func TestBuildPrompt_HasNoTrailingWhitespace(t *testing.T) {
	prefs, history, products := promptFixtures()

	prompt := BuildPrompt(prefs, history, products, 5)

	if prompt != strings.TrimSpace(prompt) {
		t.Error("prompt should be trimmed of surrounding whitespace")
	}
}

func TestCacheKey_KnownDigest(t *testing.T) {
	// md5("hello") per RFC 1321 test vectors
	key := CacheKey("hello")
	if key != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("CacheKey(hello) = %q, want 5d41402abc4b2a76b9719d911017c592", key)
	}
}

func TestCacheKey_Stable(t *testing.T) {
	prefs, history, products := promptFixtures()
	prompt := BuildPrompt(prefs, history, products, 5)

	if CacheKey(prompt) != CacheKey(prompt) {
		t.Error("CacheKey is not stable for the same prompt")
	}
	if len(CacheKey(prompt)) != 32 {
		t.Errorf("CacheKey length = %d, want 32", len(CacheKey(prompt)))
	}
}

func TestCacheKey_DistinguishesPrompts(t *testing.T) {
	prefs, history, products := promptFixtures()

	base := BuildPrompt(prefs, history, products, 5)
	other := BuildPrompt(prefs, append(history, "prod005"), products, 5)

	if CacheKey(base) == CacheKey(other) {
		t.Error("different prompts should produce different cache keys")
	}
}

func TestBuildPrompt_HistoryChangesPrompt(t *testing.T) {
	prefs, _, products := promptFixtures()

	a := BuildPrompt(prefs, []string{"prod001"}, products, 5)
	b := BuildPrompt(prefs, []string{"prod002"}, products, 5)

	if a == b {
		t.Error("different browsing history should change the prompt")
	}
}

func TestBuildPrompt_SampleSizeChangesPrompt(t *testing.T) {
	prefs, history, products := promptFixtures()

	a := BuildPrompt(prefs, history, products, 3)
	b := BuildPrompt(prefs, history, products, 5)

	if a == b {
		t.Error("different sample sizes should change the prompt")
	}
}
