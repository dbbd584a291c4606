package drill

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Record is one bilingual practice phrase as stored in drills.json.
type Record struct {
	ID          string `json:"id"`
	Unit        int    `json:"unit"`
	Commonality int    `json:"commonality"`
	French      string `json:"french_formal"`
	English     string `json:"english"`
}

// Load reads the drill data file.
func Load(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open drills file: %w", err)
	}
	var doc struct {
		Drills []Record `json:"drills"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal drills file: %w", err)
	}
	return doc.Drills, nil
}

// LoadAudioMapping reads the mapping of drill ids that already have audio.
// An absent file means no drill is voiced yet.
func LoadAudioMapping(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open audio mapping file: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("could not unmarshal audio mapping file: %w", err)
	}
	return m, nil
}
