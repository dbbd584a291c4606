package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbngrm/fr-audio/pkg/audio"
	"github.com/fbngrm/fr-audio/pkg/checkpoint"
	"github.com/fbngrm/fr-audio/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCombiner struct {
	calls []combineCall
	err   error
}

type combineCall struct {
	dir      string
	files    []string
	listFile string
	out      string
}

func (f *fakeCombiner) Concat(ctx context.Context, dir string, files []string, listFile, out string) error {
	f.calls = append(f.calls, combineCall{dir: dir, files: files, listFile: listFile, out: out})
	return f.err
}

func dialogueManifest() manifest.Dialogues {
	return manifest.Dialogues{
		TotalUnits: 1,
		TotalLines: 3,
		Units: []manifest.DialogueUnit{
			{
				Unit: 9,
				Lines: []manifest.DialogueLine{
					{Index: 0, Speaker: "Janine", TextToSpeak: "Janine: Good morning.", HasSpeakerLabel: true, Chars: 21},
					{Index: 1, Speaker: "Roger", TextToSpeak: "Roger: Hello.", HasSpeakerLabel: true, Chars: 13},
					{Index: 2, Speaker: "Janine", TextToSpeak: "Very well.", Chars: 10},
				},
			},
		},
	}
}

func TestDialogueGeneratorRun(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{}
	combine := &fakeCombiner{}
	store := checkpoint.NewMemStore()

	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: store,
		Synth:       synth,
		AudioDir:    dir,
		Combine:     combine,
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 0, sum.Failed)
	require.Len(t, synth.calls, 3)

	require.Len(t, combine.calls, 1)
	call := combine.calls[0]
	assert.Equal(t, dir, call.dir)
	assert.Equal(t, []string{
		"temp_unit09_line00_en.mp3",
		"temp_unit09_line01_en.mp3",
		"temp_unit09_line02_en.mp3",
	}, call.files)
	assert.Equal(t, "temp_concat_unit09.txt", call.listFile)
	assert.Equal(t, "unit09_dialogue_en.mp3", call.out)

	// per-line temp files are cleaned up after a successful concat
	for _, name := range call.files {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}

	var state checkpoint.DialogueState
	_, err = store.Load(checkpoint.DialogueFile, &state)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, state.Completed)
	assert.Equal(t, len("Janine: Good morning.")+len("Roger: Hello.")+len("Very well."), state.CharsUsed)
}

func TestDialogueGeneratorCombineFailureKeepsIntermediates(t *testing.T) {
	dir := t.TempDir()
	combine := &fakeCombiner{err: errors.New("ffmpeg exited with status 1")}
	store := checkpoint.NewMemStore()

	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: store,
		Synth:       &fakeSynth{},
		AudioDir:    dir,
		Combine:     combine,
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Completed)
	assert.Equal(t, 1, sum.Failed)

	// line files stay on disk for inspection
	for i := 0; i < 3; i++ {
		assert.FileExists(t, filepath.Join(dir, manifest.DialogueLineFile(9, i)))
	}

	var state checkpoint.DialogueState
	_, err = store.Load(checkpoint.DialogueFile, &state)
	require.NoError(t, err)
	assert.Equal(t, []string{"unit9_combine"}, state.Failed)
	assert.Empty(t, state.Completed)
	assert.Zero(t, state.CharsUsed)
}

func TestDialogueGeneratorLineFailureRemovesIntermediates(t *testing.T) {
	dir := t.TempDir()
	// line 0 succeeds, line 1 fails
	synth := &fakeSynth{errs: []error{nil, errors.New("bad request")}}
	combine := &fakeCombiner{}
	store := checkpoint.NewMemStore()

	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: store,
		Synth:       synth,
		AudioDir:    dir,
		Combine:     combine,
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Completed)
	assert.Equal(t, 1, sum.Failed)
	// unit abandoned, no concat attempted, temps removed
	assert.Empty(t, combine.calls)
	assert.NoFileExists(t, filepath.Join(dir, manifest.DialogueLineFile(9, 0)))
	// line 2 never synthesized
	require.Len(t, synth.calls, 2)

	var state checkpoint.DialogueState
	_, err = store.Load(checkpoint.DialogueFile, &state)
	require.NoError(t, err)
	assert.Equal(t, []string{"unit9_line1_en"}, state.Failed)
}

func TestDialogueGeneratorSkipsCompletedUnits(t *testing.T) {
	store := checkpoint.NewMemStore()
	require.NoError(t, store.Save(checkpoint.DialogueFile, checkpoint.DialogueState{
		Completed: []int{9},
	}))

	synth := &fakeSynth{}
	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: store,
		Synth:       synth,
		AudioDir:    t.TempDir(),
		Combine:     &fakeCombiner{},
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Completed)
	assert.Empty(t, synth.calls)
}

func TestDialogueGeneratorAdoptsExistingFinalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit09_dialogue_en.mp3"), []byte("mp3"), 0o644))

	synth := &fakeSynth{}
	store := checkpoint.NewMemStore()
	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: store,
		Synth:       synth,
		AudioDir:    dir,
		Combine:     &fakeCombiner{},
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Completed)
	assert.Empty(t, synth.calls)

	var state checkpoint.DialogueState
	_, err = store.Load(checkpoint.DialogueFile, &state)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, state.Completed)
}

func TestDialogueGeneratorVoiceSelection(t *testing.T) {
	synth := &fakeSynth{}
	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: checkpoint.NewMemStore(),
		Synth:       synth,
		Voices: audio.Voices{
			BritishMale:   "bm",
			BritishFemale: "bf",
			Speakers:      map[string]string{"Janine": "female"},
		},
		AudioDir: t.TempDir(),
		Combine:  &fakeCombiner{},
	}
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, synth.calls, 3)
	// known speaker table wins
	assert.Equal(t, "bf", synth.calls[0].voice)
	// unknown speaker alternates by index parity: odd index is female
	assert.Equal(t, "bf", synth.calls[1].voice)
	assert.Equal(t, "bf", synth.calls[2].voice)
}

func TestDialogueGeneratorDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio")
	synth := &fakeSynth{}
	combine := &fakeCombiner{}

	g := DialogueGenerator{
		Manifest:    dialogueManifest(),
		Checkpoints: checkpoint.NewMemStore(),
		Synth:       synth,
		AudioDir:    dir,
		Combine:     combine,
		DryRun:      true,
	}
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, synth.calls)
	assert.Empty(t, combine.calls)
	assert.NoDirExists(t, dir)
	assert.Equal(t, 0, sum.Completed)
}
