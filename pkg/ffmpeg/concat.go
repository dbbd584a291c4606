// Package ffmpeg invokes the external ffmpeg binary to concatenate audio
// files with the concat demuxer and stream copy.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tool runs a configurable ffmpeg binary. It satisfies the generator's
// Combiner interface.
type Tool struct {
	Binary string
}

func (t Tool) Concat(ctx context.Context, dir string, files []string, listFile, out string) error {
	return Concat(ctx, t.Binary, dir, files, listFile, out)
}

// Concat combines the named audio files, in order, into a single output
// file. All names are relative to dir. The concat list file is written
// first and removed again on success; on failure it is left behind next to
// the intermediates for inspection.
func Concat(ctx context.Context, binary, dir string, files []string, listFile, out string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if len(files) == 0 {
		return errors.New("ffmpeg concat: no input files")
	}

	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "file '%s'\n", f)
	}
	listPath := filepath.Join(dir, listFile)
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("ffmpeg concat: write list: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, "-y", "-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", out)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return os.Remove(listPath)
}
