// Package verify checks generated audio files against the manifests. It is
// read-only: no synthesis, no state mutation.
package verify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbngrm/fr-audio/pkg/manifest"
)

// preview cap for missing drill files; dialogue lists are short enough to
// print in full
const missingPreview = 10

type Report struct {
	DrillFiles       int
	MissingDrills    []string
	DialogueFiles    int
	MissingDialogues []string
}

func (r Report) DrillsOK() bool {
	return len(r.MissingDrills) == 0
}

func (r Report) DialoguesOK() bool {
	return len(r.MissingDialogues) == 0
}

func (r Report) OK() bool {
	return r.DrillsOK() && r.DialoguesOK()
}

// Run checks that every audio file the manifests promise exists on disk.
func Run(drills manifest.Drills, dialogues manifest.Dialogues, drillsDir, audioDir string) Report {
	var rep Report

	for _, d := range drills.Drills {
		for _, lang := range []string{"fr", "en"} {
			name := manifest.DrillAudioFile(d.ID, lang)
			if _, err := os.Stat(filepath.Join(drillsDir, name)); err != nil {
				rep.MissingDrills = append(rep.MissingDrills, name)
			}
		}
	}
	rep.DrillFiles = len(drills.Drills) * 2

	for _, u := range dialogues.Units {
		name := manifest.DialogueAudioFile(u.Unit)
		if _, err := os.Stat(filepath.Join(audioDir, name)); err != nil {
			rep.MissingDialogues = append(rep.MissingDialogues, name)
		}
	}
	rep.DialogueFiles = len(dialogues.Units)

	return rep
}

// Print writes the report to stdout, previewing at most missingPreview
// missing drill files.
func (r Report) Print() {
	fmt.Println("\n[Drills]")
	if r.DrillsOK() {
		fmt.Printf("  OK: all %d drill audio files exist\n", r.DrillFiles)
	} else {
		fmt.Printf("  MISSING: %d files\n", len(r.MissingDrills))
		for i, m := range r.MissingDrills {
			if i == missingPreview {
				fmt.Printf("    ... and %d more\n", len(r.MissingDrills)-missingPreview)
				break
			}
			fmt.Printf("    - %s\n", m)
		}
	}

	fmt.Println("\n[Dialogues]")
	if r.DialoguesOK() {
		fmt.Printf("  OK: all %d dialogue audio files exist\n", r.DialogueFiles)
	} else {
		fmt.Printf("  MISSING: %d files\n", len(r.MissingDialogues))
		for _, m := range r.MissingDialogues {
			fmt.Printf("    - %s\n", m)
		}
	}
}
