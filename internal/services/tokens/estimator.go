// Package tokens estimates token counts for chunk-boundary decisions.
// Counts are exact when a tiktoken encoding is available and degrade to a
// deterministic character-based approximation when it is not.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingModel is the model whose tokenizer is used for exact counts.
const EncodingModel = "gpt-4"

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// Estimate returns the token count of text. The result is deterministic and
// monotonically non-decreasing in text length for a fixed encoding. When the
// tokenizer is unavailable the fallback is ceil(len(text)/4).
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	encodingOnce.Do(func() {
		// Loading the BPE ranks can fail (no local cache, no network);
		// encoding stays nil and every call uses the fallback.
		enc, err := tiktoken.EncodingForModel(EncodingModel)
		if err == nil {
			encoding = enc
		}
	})

	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}

	return estimateApprox(text)
}

// estimateApprox is the character-based fallback: one token per 4 characters,
// rounded up.
func estimateApprox(text string) int {
	return (len(text) + 3) / 4
}
