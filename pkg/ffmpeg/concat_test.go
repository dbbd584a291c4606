package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatWritesListAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	files := []string{"temp_unit09_line00_en.mp3", "temp_unit09_line01_en.mp3"}

	// "true" stands in for ffmpeg so only the wrapper's own behavior is
	// under test
	err := Concat(context.Background(), "true", dir, files, "temp_concat_unit09.txt", "unit09_dialogue_en.mp3")
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "temp_concat_unit09.txt"))
}

func TestConcatKeepsListOnFailure(t *testing.T) {
	dir := t.TempDir()
	files := []string{"temp_unit09_line00_en.mp3", "temp_unit09_line01_en.mp3"}

	err := Concat(context.Background(), "false", dir, files, "temp_concat_unit09.txt", "unit09_dialogue_en.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg concat")

	// the list survives for inspection, in demuxer format and input order
	b, err := os.ReadFile(filepath.Join(dir, "temp_concat_unit09.txt"))
	require.NoError(t, err)
	assert.Equal(t, "file 'temp_unit09_line00_en.mp3'\nfile 'temp_unit09_line01_en.mp3'\n", string(b))
}

func TestConcatNoInputs(t *testing.T) {
	err := Concat(context.Background(), "true", t.TempDir(), nil, "list.txt", "out.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files")
}

func TestToolSatisfiesCombiner(t *testing.T) {
	tool := Tool{Binary: "true"}
	err := tool.Concat(context.Background(), t.TempDir(), []string{"a.mp3"}, "list.txt", "out.mp3")
	require.NoError(t, err)
}
