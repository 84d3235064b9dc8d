package summarizer

import "context"

// Summarizer condenses transcript text into a summary ending in the
// fixed study-tips block. Backends are interchangeable behind this
// contract.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
