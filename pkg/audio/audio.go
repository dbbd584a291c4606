package audio

import (
	"context"
	"strings"
)

// Synthesizer turns text into audio bytes with a given voice. Implementations
// wrap a vendor text-to-speech API.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// IsRateLimit reports whether a synthesis error indicates throttling. The
// vendor APIs signal this as a 429 status or a "rate limit" message.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "rate") || strings.Contains(s, "429")
}
