package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fbngrm/fr-audio/pkg/audio"
	"github.com/fbngrm/fr-audio/pkg/checkpoint"
	"github.com/fbngrm/fr-audio/pkg/manifest"
	"golang.org/x/exp/slog"
)

// DrillGenerator synthesizes the French and English halves of each manifest
// drill. Progress is checkpointed so an interrupted run resumes; a drill
// already in the completed set, or a half whose output file already exists,
// is never re-synthesized.
type DrillGenerator struct {
	Manifest    manifest.Drills
	Checkpoints checkpoint.Store
	Synth       audio.Synthesizer
	Voices      audio.Voices
	AudioDir    string
	DryRun      bool
	MaxRetries  int
	SaveEvery   int
	// Sleep is the blocking wait used for rate-limit backoff; nil means
	// time.Sleep. Tests inject a recorder here.
	Sleep func(time.Duration)
}

func (g *DrillGenerator) Run(ctx context.Context) (Summary, error) {
	if g.MaxRetries == 0 {
		g.MaxRetries = defaultMaxRetries
	}
	if g.SaveEvery == 0 {
		g.SaveEvery = defaultSaveEvery
	}
	if g.Sleep == nil {
		g.Sleep = time.Sleep
	}

	var state checkpoint.DrillState
	if _, err := g.Checkpoints.Load(checkpoint.DrillFile, &state); err != nil {
		return Summary{}, err
	}
	completed := make(map[string]struct{}, len(state.Completed))
	for _, id := range state.Completed {
		completed[id] = struct{}{}
	}

	fmt.Printf("manifest: %d drills\n", len(g.Manifest.Drills))
	fmt.Printf("already completed: %d\n", len(completed))
	fmt.Printf("characters used so far: %d\n", state.CharsUsed)
	if g.DryRun {
		fmt.Println("[dry run - no audio will be generated]")
	} else {
		if err := os.MkdirAll(g.AudioDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("could not create audio dir: %w", err)
		}
	}

	runner := synthRunner{synth: g.Synth, maxRetries: g.MaxRetries, sleep: g.Sleep}

	for i, d := range g.Manifest.Drills {
		if _, ok := completed[d.ID]; ok {
			continue
		}

		fmt.Printf("\n[%d/%d] %s\n", i+1, len(g.Manifest.Drills), d.ID)
		if g.DryRun {
			fmt.Printf("  would generate: %s, %s\n",
				manifest.DrillAudioFile(d.ID, "fr"), manifest.DrillAudioFile(d.ID, "en"))
			continue
		}

		ok, chars := g.half(ctx, runner, &state, d.ID, "fr", d.French)
		if !ok {
			continue
		}
		state.CharsUsed += chars

		ok, chars = g.half(ctx, runner, &state, d.ID, "en", d.English)
		if !ok {
			// the French half that already succeeded is kept on disk
			continue
		}
		state.CharsUsed += chars

		completed[d.ID] = struct{}{}
		state.Completed = append(state.Completed, d.ID)

		if len(completed)%g.SaveEvery == 0 {
			if err := g.Checkpoints.Save(checkpoint.DrillFile, &state); err != nil {
				return Summary{}, err
			}
			fmt.Printf("  [checkpoint: %d done, %d chars]\n", len(completed), state.CharsUsed)
		}
	}

	if !g.DryRun {
		if err := g.Checkpoints.Save(checkpoint.DrillFile, &state); err != nil {
			return Summary{}, err
		}
	}
	return Summary{Completed: len(completed), Failed: len(state.Failed), CharsUsed: state.CharsUsed}, nil
}

// half synthesizes one language half of a drill unless its file already
// exists. On failure the half is recorded in the failed list and the
// checkpoint is persisted immediately.
func (g *DrillGenerator) half(ctx context.Context, runner synthRunner, state *checkpoint.DrillState, id, lang, text string) (bool, int) {
	path := filepath.Join(g.AudioDir, manifest.DrillAudioFile(id, lang))
	if _, err := os.Stat(path); err == nil {
		return true, 0
	}

	fmt.Printf("  generating %s...\n", lang)
	chars, err := runner.run(ctx, text, g.Voices.ForDrill(lang), path)
	if err != nil {
		slog.Error("synthesize drill audio", "id", id, "lang", lang, "err", err)
		state.Failed = append(state.Failed, fmt.Sprintf("%s_%s", id, lang))
		if serr := g.Checkpoints.Save(checkpoint.DrillFile, state); serr != nil {
			slog.Error("save drill checkpoint", "err", serr)
		}
		return false, 0
	}
	return true, chars
}
