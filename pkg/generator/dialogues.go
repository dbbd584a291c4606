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

// DialogueGenerator synthesizes each dialogue line of a unit to a temp file
// and concatenates them into one per-unit file. A unit is checkpointed as
// completed only after the concat succeeds, so a failed unit is retried on
// the next run.
//
// On concat failure the intermediates are kept for inspection; they are
// removed only on the success path.
type DialogueGenerator struct {
	Manifest    manifest.Dialogues
	Checkpoints checkpoint.Store
	Synth       audio.Synthesizer
	Voices      audio.Voices
	AudioDir    string
	Combine     Combiner
	DryRun      bool
	MaxRetries  int
	Sleep       func(time.Duration)
}

func (g *DialogueGenerator) Run(ctx context.Context) (Summary, error) {
	if g.MaxRetries == 0 {
		g.MaxRetries = defaultMaxRetries
	}
	if g.Sleep == nil {
		g.Sleep = time.Sleep
	}

	var state checkpoint.DialogueState
	if _, err := g.Checkpoints.Load(checkpoint.DialogueFile, &state); err != nil {
		return Summary{}, err
	}
	completed := make(map[int]struct{}, len(state.Completed))
	for _, unit := range state.Completed {
		completed[unit] = struct{}{}
	}

	fmt.Printf("manifest: %d units, %d lines\n", g.Manifest.TotalUnits, g.Manifest.TotalLines)
	fmt.Printf("already completed: %d units\n", len(completed))
	fmt.Printf("characters used so far: %d\n", state.CharsUsed)
	if g.DryRun {
		fmt.Println("[dry run - no audio will be generated]")
	} else {
		if err := os.MkdirAll(g.AudioDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("could not create audio dir: %w", err)
		}
	}

	runner := synthRunner{synth: g.Synth, maxRetries: g.MaxRetries, sleep: g.Sleep}

	for _, u := range g.Manifest.Units {
		if _, ok := completed[u.Unit]; ok {
			continue
		}
		final := manifest.DialogueAudioFile(u.Unit)

		fmt.Printf("\nunit %d: %d lines\n", u.Unit, len(u.Lines))
		if g.DryRun {
			for _, line := range u.Lines {
				label := "[no label]"
				if line.HasSpeakerLabel {
					label = "[+speaker]"
				}
				fmt.Printf("  %s %.50s...\n", label, line.TextToSpeak)
			}
			fmt.Printf("  would generate: %s\n", final)
			continue
		}

		// output already on disk from an earlier run, count it as done
		if _, err := os.Stat(filepath.Join(g.AudioDir, final)); err == nil {
			fmt.Printf("  %s exists, skipping\n", final)
			completed[u.Unit] = struct{}{}
			state.Completed = append(state.Completed, u.Unit)
			if err := g.Checkpoints.Save(checkpoint.DialogueFile, &state); err != nil {
				return Summary{}, err
			}
			continue
		}

		var lineFiles []string
		unitChars := 0
		failed := false
		for _, line := range u.Lines {
			name := manifest.DialogueLineFile(u.Unit, line.Index)
			voice := g.Voices.ForLine(line.Speaker, line.Index)

			fmt.Printf("  line %d: %.40s...\n", line.Index, line.TextToSpeak)
			chars, err := runner.run(ctx, line.TextToSpeak, voice, filepath.Join(g.AudioDir, name))
			if err != nil {
				slog.Error("synthesize dialogue line", "unit", u.Unit, "line", line.Index, "err", err)
				state.Failed = append(state.Failed, fmt.Sprintf("unit%d_line%d_en", u.Unit, line.Index))
				g.removeLineFiles(lineFiles)
				if serr := g.Checkpoints.Save(checkpoint.DialogueFile, &state); serr != nil {
					return Summary{}, serr
				}
				failed = true
				break
			}
			lineFiles = append(lineFiles, name)
			unitChars += chars
		}
		if failed || len(lineFiles) == 0 {
			continue
		}

		listFile := manifest.DialogueListFile(u.Unit)
		if err := g.Combine.Concat(ctx, g.AudioDir, lineFiles, listFile, final); err != nil {
			slog.Error("combine dialogue audio", "unit", u.Unit, "err", err)
			state.Failed = append(state.Failed, fmt.Sprintf("unit%d_combine", u.Unit))
			if serr := g.Checkpoints.Save(checkpoint.DialogueFile, &state); serr != nil {
				return Summary{}, serr
			}
			continue
		}
		g.removeLineFiles(lineFiles)
		fmt.Printf("  -> %s (%d chars)\n", final, unitChars)

		state.CharsUsed += unitChars
		completed[u.Unit] = struct{}{}
		state.Completed = append(state.Completed, u.Unit)
		if err := g.Checkpoints.Save(checkpoint.DialogueFile, &state); err != nil {
			return Summary{}, err
		}
	}

	return Summary{Completed: len(completed), Failed: len(state.Failed), CharsUsed: state.CharsUsed}, nil
}

func (g *DialogueGenerator) removeLineFiles(names []string) {
	for _, name := range names {
		if err := os.Remove(filepath.Join(g.AudioDir, name)); err != nil {
			slog.Error("remove temp line file", "file", name, "err", err)
		}
	}
}
