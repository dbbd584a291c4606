package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fbngrm/fr-audio/pkg/audio"
	"github.com/fbngrm/fr-audio/pkg/checkpoint"
	"github.com/fbngrm/fr-audio/pkg/config"
	"github.com/fbngrm/fr-audio/pkg/drill"
	"github.com/fbngrm/fr-audio/pkg/ffmpeg"
	"github.com/fbngrm/fr-audio/pkg/generator"
	"github.com/fbngrm/fr-audio/pkg/lesson"
	"github.com/fbngrm/fr-audio/pkg/manifest"
	"github.com/fbngrm/fr-audio/pkg/translate"
	"github.com/fbngrm/fr-audio/pkg/verify"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

var (
	manifests        bool
	drills           bool
	dialogues        bool
	verifyAudio      bool
	dryRun           bool
	reset            bool
	fillTranslations bool
	configPath       string
)

func main() {
	_ = godotenv.Load()

	flag.BoolVar(&manifests, "manifests", false, "build drill and dialogue manifests")
	flag.BoolVar(&drills, "drills", false, "generate drill audio")
	flag.BoolVar(&dialogues, "dialogues", false, "generate dialogue audio")
	flag.BoolVar(&verifyAudio, "verify", false, "verify generated audio against the manifests")
	flag.BoolVar(&dryRun, "dry-run", false, "print the plan without synthesizing or writing audio")
	flag.BoolVar(&reset, "reset", false, "delete checkpoints and exit")
	flag.BoolVar(&fillTranslations, "fill-translations", false, "fill missing English drill text via Google Translate")
	flag.StringVar(&configPath, "config", "config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := &checkpoint.FileStore{Dir: cfg.Checkpoint.Dir}

	if reset {
		for _, name := range []string{checkpoint.DrillFile, checkpoint.DialogueFile} {
			if err := store.Reset(name); err != nil {
				fmt.Fprintf(os.Stderr, "could not reset checkpoint %s: %v\n", name, err)
				os.Exit(1)
			}
			fmt.Printf("reset %s\n", name)
		}
		return
	}

	if verifyAudio {
		runVerify(cfg)
		return
	}

	if fillTranslations {
		runFillTranslations(cfg)
		return
	}

	if !manifests && !drills && !dialogues {
		flag.Usage()
		fmt.Println("\nspecify -manifests, -drills, -dialogues, -verify, -fill-translations or -reset")
		return
	}

	if manifests {
		runManifests(cfg)
	}

	if !drills && !dialogues {
		return
	}

	var synth audio.Synthesizer
	if !dryRun {
		synth = newSynthesizer(cfg)
	}
	voices := loadVoices(cfg)
	ctx := context.Background()

	if drills {
		m, err := manifest.LoadDrills(cfg.Manifest.Drills)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		gen := generator.DrillGenerator{
			Manifest:    m,
			Checkpoints: store,
			Synth:       synth,
			Voices:      voices,
			AudioDir:    cfg.Audio.DrillsDir,
			DryRun:      dryRun,
			MaxRetries:  cfg.TTS.MaxRetries,
			SaveEvery:   cfg.TTS.SaveEvery,
		}
		sum, err := gen.Run(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printSummary("drill generation complete", sum, len(m.Drills))
	}

	if dialogues {
		m, err := manifest.LoadDialogues(cfg.Manifest.Dialogues)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		gen := generator.DialogueGenerator{
			Manifest:    m,
			Checkpoints: store,
			Synth:       synth,
			Voices:      voices,
			AudioDir:    cfg.Audio.Dir,
			Combine:     ffmpeg.Tool{Binary: cfg.Audio.FFmpeg},
			DryRun:      dryRun,
			MaxRetries:  cfg.TTS.MaxRetries,
		}
		sum, err := gen.Run(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printSummary("dialogue generation complete", sum, m.TotalUnits)
	}
}

// newSynthesizer builds the configured text-to-speech backend. The pipeline
// cannot do any paid work without a credential, so a missing one is fatal
// before anything happens.
func newSynthesizer(cfg *config.Config) audio.Synthesizer {
	switch cfg.TTS.Provider {
	case "gcp":
		return audio.NewGCP()
	default:
		if cfg.TTS.APIKey == "" {
			fmt.Fprintln(os.Stderr, "ERROR: ELEVENLABS_API_KEY is not set")
			fmt.Fprintln(os.Stderr, "  export ELEVENLABS_API_KEY=your_key_here")
			os.Exit(1)
		}
		return audio.NewElevenLabs(cfg.TTS.APIKey, cfg.TTS.Model, cfg.TTS.Stability, cfg.TTS.SimilarityBoost)
	}
}

func loadVoices(cfg *config.Config) audio.Voices {
	speakers, err := audio.LoadSpeakers(cfg.Voices.Speakers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return audio.Voices{
		FrenchMale:    cfg.Voices.FrenchMale,
		FrenchFemale:  cfg.Voices.FrenchFemale,
		BritishMale:   cfg.Voices.BritishMale,
		BritishFemale: cfg.Voices.BritishFemale,
		Speakers:      speakers,
	}
}

func runManifests(cfg *config.Config) {
	records, err := drill.Load(cfg.Data.Drills)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mapping, err := drill.LoadAudioMapping(cfg.Data.AudioMapping)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	table, err := translate.LoadTable(cfg.Data.Translations)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// table lookups only here; -fill-translations does the paid calls
	records, err = drill.FillMissing(context.Background(), records, table, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	units, parseErrs, err := lesson.Load(cfg.Data.LessonSource)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, e := range parseErrs {
		slog.Warn("lesson extraction", "err", e.Error())
	}

	dm := manifest.BuildDrills(records, mapping, manifest.Range{Start: cfg.Drills.UnitStart, End: cfg.Drills.UnitEnd}, cfg.Drills.PerUnit)
	if err := manifest.Write(cfg.Manifest.Drills, dm); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("saved: %s\n", cfg.Manifest.Drills)
	fmt.Printf("  drills: %d\n", dm.TotalDrills)
	fmt.Printf("  french chars: %d\n", dm.TotalCharsFr)
	fmt.Printf("  english chars: %d\n", dm.TotalCharsEn)

	gm := manifest.BuildDialogues(units)
	if err := manifest.Write(cfg.Manifest.Dialogues, gm); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("saved: %s\n", cfg.Manifest.Dialogues)
	fmt.Printf("  units: %d\n", gm.TotalUnits)
	fmt.Printf("  lines: %d\n", gm.TotalLines)

	total := dm.TotalChars + gm.TotalChars
	fmt.Printf("\ndrills (fr+en): %d chars\n", dm.TotalChars)
	fmt.Printf("dialogues (en): %d chars\n", gm.TotalChars)
	fmt.Printf("grand total:    %d chars\n", total)
	fmt.Printf("budget:         %d chars\n", cfg.BudgetChars)
	if total <= cfg.BudgetChars {
		fmt.Printf("[OK] fits within budget, %d chars to spare\n", cfg.BudgetChars-total)
	} else {
		fmt.Printf("[WARNING] over budget by %d chars!\n", total-cfg.BudgetChars)
	}
}

func runVerify(cfg *config.Config) {
	dm, err := manifest.LoadDrills(cfg.Manifest.Drills)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gm, err := manifest.LoadDialogues(cfg.Manifest.Dialogues)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rep := verify.Run(dm, gm, cfg.Audio.DrillsDir, cfg.Audio.Dir)
	rep.Print()
}

func runFillTranslations(cfg *config.Config) {
	records, err := drill.Load(cfg.Data.Drills)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	table, err := translate.LoadTable(cfg.Data.Translations)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	client, err := translate.NewGoogleClient("en-GB")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	before := table.Len()
	if _, err := drill.FillMissing(context.Background(), records, table, client); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := table.Write(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("translated %d missing drill texts, table now holds %d entries\n", table.Len()-before, table.Len())
}

func printSummary(title string, sum generator.Summary, total int) {
	fmt.Printf("\n%s\n", title)
	fmt.Printf("  completed: %d/%d\n", sum.Completed, total)
	fmt.Printf("  characters used: %d\n", sum.CharsUsed)
	fmt.Printf("  failed: %d\n", sum.Failed)
}
