package completion

import "context"

// Generator defines the interface contract for text completion services.
type Generator interface {
	Complete(ctx context.Context, prompt string, maxNewTokens int64) (string, error)
	ModelName() string
}
