package lesson

import (
	"fmt"
	"os"
)

// Line is one spoken line of a unit dialogue.
type Line struct {
	Speaker string
	French  string
	English string
}

// BlockError reports a malformed record or block in the lesson source.
// Extraction continues past it; the caller decides whether to surface it.
type BlockError struct {
	Unit   int
	Offset int
	Reason string
}

func (e BlockError) Error() string {
	return fmt.Sprintf("lesson source: unit %d, offset %d: %s", e.Unit, e.Offset, e.Reason)
}

// Load reads the lesson source file and extracts the dialogues per unit.
func Load(path string) (map[int][]Line, []BlockError, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open lesson source: %w", err)
	}
	units, errs := Parse(string(b))
	return units, errs, nil
}
