package recommend

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/hollowaylabs/vitrine/internal/types"
)

// defaultConfidence is assumed when the model omits a confidence score.
const defaultConfidence = 5

// ProductLookup resolves recommended product IDs to catalog entries.
type ProductLookup interface {
	Get(id string) (types.Product, bool)
}

// parsedItem mirrors one element of the model's JSON array output.
type parsedItem struct {
	ID              string   `json:"id"`
	Explanation     string   `json:"explanation"`
	ConfidenceScore *float64 `json:"confidence_score"`
}

// ParseResponse extracts recommendations from raw model output. The JSON
// array is located by scanning for the first '[' and the last ']', which
// tolerates prose the model wraps around it. Unparseable output yields an
// empty result rather than an error; unknown product IDs are logged and
// skipped.
func ParseResponse(raw string, lookup ProductLookup, logger *slog.Logger) []types.Recommendation {
	if logger == nil {
		logger = slog.Default()
	}

	recommendations := []types.Recommendation{}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		logger.Error("could not find JSON array in model output")
		return recommendations
	}

	var parsed []parsedItem
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		logger.Error("failed to parse JSON from model output", "error", err)
		return recommendations
	}

	for _, item := range parsed {
		product, ok := lookup.Get(item.ID)
		if !ok {
			logger.Warn("unknown product ID recommended", "product_id", item.ID)
			continue
		}

		score := float64(defaultConfidence)
		if item.ConfidenceScore != nil {
			score = *item.ConfidenceScore
		}

		recommendations = append(recommendations, types.Recommendation{
			Product:         product,
			Explanation:     item.Explanation,
			ConfidenceScore: score,
		})
	}

	return recommendations
}
