package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoadDrills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill_manifest.json")

	m := Drills{
		Description:   "test plan",
		Units:         []int{9},
		DrillsPerUnit: 20,
		TotalDrills:   1,
		TotalCharsFr:  8,
		TotalCharsEn:  6,
		TotalChars:    14,
		Drills: []DrillEntry{
			{ID: "d1", Unit: 9, Rank: 1, Commonality: 3, French: "Où est-ce ?", English: "Where?", CharsFr: 8, CharsEn: 6},
		},
	}
	require.NoError(t, Write(path, m))

	got, err := LoadDrills(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	// accented text stored literally, not HTML-escaped
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Où est-ce ?")
}

func TestLoadDrillsMissing(t *testing.T) {
	_, err := LoadDrills(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open manifest")
}

func TestLoadDialoguesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogue_manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadDialogues(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not unmarshal manifest")
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "d1_fr.mp3", DrillAudioFile("d1", "fr"))
	assert.Equal(t, "d1_en.mp3", DrillAudioFile("d1", "en"))
	assert.Equal(t, "unit09_dialogue_en.mp3", DialogueAudioFile(9))
	assert.Equal(t, "unit14_dialogue_en.mp3", DialogueAudioFile(14))
	assert.Equal(t, "temp_unit09_line03_en.mp3", DialogueLineFile(9, 3))
	assert.Equal(t, "temp_concat_unit09.txt", DialogueListFile(9))
}
