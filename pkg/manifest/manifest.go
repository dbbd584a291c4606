package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Drills is the declarative plan for drill audio. It is written once by the
// builder and treated as immutable ground truth by the generator and the
// verifier.
type Drills struct {
	Description   string       `json:"description"`
	Units         []int        `json:"units"`
	DrillsPerUnit int          `json:"drills_per_unit"`
	TotalDrills   int          `json:"total_drills"`
	TotalCharsFr  int          `json:"total_chars_fr"`
	TotalCharsEn  int          `json:"total_chars_en"`
	TotalChars    int          `json:"total_chars"`
	Drills        []DrillEntry `json:"drills"`
}

type DrillEntry struct {
	ID          string `json:"id"`
	Unit        int    `json:"unit"`
	Rank        int    `json:"rank"`
	Commonality int    `json:"commonality"`
	French      string `json:"french"`
	English     string `json:"english"`
	CharsFr     int    `json:"chars_fr"`
	CharsEn     int    `json:"chars_en"`
}

// Dialogues is the declarative plan for dialogue audio.
type Dialogues struct {
	Description string         `json:"description"`
	TotalUnits  int            `json:"total_units"`
	TotalLines  int            `json:"total_lines"`
	TotalChars  int            `json:"total_chars"`
	Units       []DialogueUnit `json:"units"`
}

type DialogueUnit struct {
	Unit       int            `json:"unit"`
	Lines      []DialogueLine `json:"lines"`
	TotalChars int            `json:"total_chars"`
}

type DialogueLine struct {
	Index           int    `json:"index"`
	Speaker         string `json:"speaker"`
	OriginalEnglish string `json:"original_english"`
	TextToSpeak     string `json:"text_to_speak"`
	HasSpeakerLabel bool   `json:"has_speaker_label"`
	Chars           int    `json:"chars"`
}

// Write persists a manifest as indented JSON. HTML escaping is off so
// accented French text is stored literally.
func Write(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write manifest: %w", err)
	}
	return nil
}

// LoadDrills reads the drill manifest. The pipeline cannot proceed without
// its plan, so a missing or unreadable manifest is an error.
func LoadDrills(path string) (Drills, error) {
	var m Drills
	if err := load(path, &m); err != nil {
		return Drills{}, err
	}
	return m, nil
}

// LoadDialogues reads the dialogue manifest.
func LoadDialogues(path string) (Dialogues, error) {
	var m Dialogues
	if err := load(path, &m); err != nil {
		return Dialogues{}, err
	}
	return m, nil
}

func load(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open manifest: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal manifest %s: %w", path, err)
	}
	return nil
}
