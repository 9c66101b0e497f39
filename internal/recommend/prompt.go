// Package recommend implements the recommendation pipeline: prompt
// construction, model invocation, response parsing, and result caching.
package recommend

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/hollowaylabs/vitrine/internal/types"
)

const promptInstruction = "Please recommend between 3 to 5 products that best match these preferences and browsing history. " +
	"For each recommendation, provide the product ID, a brief explanation, and a confidence score (1-10). " +
	"Output only valid JSON in the following format:\n" +
	`[{"id": "prodXYZ", "explanation": "Because...", "confidence_score": 8}, ...]`

// BuildPrompt assembles the model prompt from the normalized preferences,
// the browsing history, and the first sampleSize catalog products. Equal
// inputs always produce byte-identical prompts; the cache key depends on it.
func BuildPrompt(prefs types.Preferences, history []string, products []types.Product, sampleSize int) string {
	if history == nil {
		history = []string{}
	}
	if sampleSize < 0 {
		sampleSize = 0
	}
	if sampleSize > len(products) {
		sampleSize = len(products)
	}
	sample := make([]types.Product, sampleSize)
	copy(sample, products[:sampleSize])

	var sb strings.Builder
	sb.WriteString("User Preferences:\n")
	sb.WriteString(jsonBlock(prefs))
	sb.WriteString("\n\n")
	sb.WriteString("Browsing History:\n")
	sb.WriteString(jsonBlock(history))
	sb.WriteString("\n\n")
	sb.WriteString("Available Products (sample):\n")
	sb.WriteString(jsonBlock(sample))
	sb.WriteString("\n\n")
	sb.WriteString(promptInstruction)

	return strings.TrimSpace(sb.String())
}

// CacheKey derives the result cache key for a prompt.
// Keys only need stability, not collision resistance.
func CacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// jsonBlock renders a value as two-space indented JSON. The prompt inputs
// are plain data types, so marshaling cannot fail.
func jsonBlock(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
