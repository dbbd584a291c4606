// Package generator drives audio synthesis from the manifests, with
// checkpointed resume, bounded retry on throttling, and a dry-run mode.
package generator

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/fbngrm/fr-audio/pkg/audio"
)

const (
	defaultMaxRetries = 3
	defaultSaveEvery  = 5
	backoffUnit       = 60 * time.Second
)

// Summary is the end-of-run result of a generator.
type Summary struct {
	Completed int
	Failed    int
	CharsUsed int
}

// Combiner concatenates per-line audio files into one unit file. The real
// implementation shells out to ffmpeg.
type Combiner interface {
	Concat(ctx context.Context, dir string, files []string, listFile, out string) error
}

// synthRunner performs one synthesis call with rate-limit retries and writes
// the result to disk. Execution is strictly sequential; the wait is a real
// blocking sleep.
type synthRunner struct {
	synth      audio.Synthesizer
	maxRetries int
	sleep      func(time.Duration)
}

// run returns the number of characters consumed on success. A throttling
// error is retried after an escalating wait of backoffUnit × attempt; any
// other error is terminal immediately.
func (r synthRunner) run(ctx context.Context, text, voice, path string) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		b, err := r.synth.Synthesize(ctx, text, voice)
		if err == nil {
			if werr := os.WriteFile(path, b, 0o644); werr != nil {
				return 0, fmt.Errorf("could not write audio file: %w", werr)
			}
			return utf8.RuneCountInString(text), nil
		}
		if !audio.IsRateLimit(err) {
			return 0, err
		}
		lastErr = err
		if attempt < r.maxRetries {
			wait := time.Duration(attempt) * backoffUnit
			fmt.Printf("    rate limited, waiting %s...\n", wait)
			r.sleep(wait)
		}
	}
	return 0, fmt.Errorf("rate limit retries exhausted: %w", lastErr)
}
