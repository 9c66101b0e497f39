package e2e

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/hollowaylabs/vitrine/internal/api"
	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/hollowaylabs/vitrine/internal/completion"
	"github.com/hollowaylabs/vitrine/internal/history"
	"github.com/hollowaylabs/vitrine/internal/recommend"
	"github.com/hollowaylabs/vitrine/internal/types"
	"github.com/hollowaylabs/vitrine/pkg/browse"
)

// --- Fixtures ---

func fixturesDir() string {
	if dir := os.Getenv("TEST_FIXTURES_DIR"); dir != "" {
		return dir
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "fixtures")
}

func seedProductsPath() string {
	return filepath.Join(fixturesDir(), "products.json")
}

func loadSeedProducts(t *testing.T) []types.Product {
	t.Helper()
	products, err := catalog.ReadProductsFile(seedProductsPath())
	if err != nil {
		t.Fatalf("load product fixture: %v", err)
	}
	return products
}

// --- Scripted Completion Provider ---

// scriptedGenerator stands in for the remote completion provider. Each call
// consumes the next scripted response; the last one repeats when the script
// runs out, and an empty script answers with an empty JSON array. A set
// error takes priority and fails every call until cleared.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (g *scriptedGenerator) Complete(_ context.Context, prompt string, _ int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "[]", nil
	}
	resp := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return resp, nil
}

func (g *scriptedGenerator) ModelName() string { return "scripted-test-model" }

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func (g *scriptedGenerator) promptAt(i int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.prompts) {
		return ""
	}
	return g.prompts[i]
}

func (g *scriptedGenerator) setError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

var _ completion.Generator = (*scriptedGenerator)(nil)

// recommendationScript renders a model-style answer for the given product
// IDs, wrapped in the prose a chat model tends to add around the JSON.
func recommendationScript(t *testing.T, ids ...string) string {
	t.Helper()
	items := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		items[i] = map[string]interface{}{
			"id":               id,
			"explanation":      "Pairs well with your browsing history",
			"confidence_score": 8,
		}
	}
	b, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal scripted response: %v", err)
	}
	return "Here are my picks:\n" + string(b) + "\nEnjoy!"
}

// historySection cuts the browsing-history block out of a prompt. Product
// IDs appear in the catalog sample too, so history assertions must not
// search the whole prompt.
func historySection(t *testing.T, prompt string) string {
	t.Helper()
	start := strings.Index(prompt, "Browsing History:")
	end := strings.Index(prompt, "Available Products")
	if start == -1 || end == -1 || end < start {
		t.Fatalf("prompt missing history section:\n%s", prompt)
	}
	return prompt[start:end]
}

// --- Storefront Setup ---

// storefront is a fully wired service instance: fixture products imported
// into a temp SQLite catalog, the recommendation engine running against a
// scripted provider, and the router served on a real listener.
type storefront struct {
	server *httptest.Server
	engine *recommend.Engine
}

func (s *storefront) url() string { return s.server.URL }

func setupStorefront(t *testing.T, gen completion.Generator, apiKey string) *storefront {
	t.Helper()
	ctx := context.Background()

	repo, err := catalog.NewRepository(filepath.Join(t.TempDir(), "vitrine.db"))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if _, err := repo.ImportProducts(ctx, loadSeedProducts(t)); err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}
	products, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	cat := catalog.New(products)

	// Sample the whole fixture so every product is visible to the model.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := recommend.NewEngine(gen, cat, logger, len(products), 256)

	handler := api.NewHandler(cat, engine, history.NewManager(), apiKey, "e2e-test")
	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)

	return &storefront{server: srv, engine: engine}
}

func newBrowseClient(t *testing.T, baseURL, apiKey string) *browse.Client {
	t.Helper()
	client, err := browse.New(browse.Config{BaseURL: baseURL, APIKey: apiKey})
	if err != nil {
		t.Fatalf("browse.New() error = %v", err)
	}
	return client
}
