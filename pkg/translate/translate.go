package translate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Table is a persisted french→english lookup table. It caches translations so
// repeated runs never pay for the same phrase twice.
type Table struct {
	path string
	dict map[string]string
}

// LoadTable reads the table from a yaml file. An absent file yields an empty
// table that can be written later.
func LoadTable(path string) (*Table, error) {
	t := &Table{
		path: path,
		dict: map[string]string{},
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open translations file: %w", err)
	}
	if err := yaml.Unmarshal(b, &t.dict); err != nil {
		return nil, fmt.Errorf("could not unmarshal translations file: %w", err)
	}
	return t, nil
}

func (t *Table) Lookup(s string) string {
	return t.dict[s]
}

func (t *Table) Add(key, val string) {
	t.dict[key] = val
}

func (t *Table) Len() int {
	return len(t.dict)
}

// Write persists the table back to its yaml file.
func (t *Table) Write() error {
	b, err := yaml.Marshal(t.dict)
	if err != nil {
		return fmt.Errorf("could not marshal translations: %w", err)
	}
	if err := os.WriteFile(t.path, b, 0o644); err != nil {
		return fmt.Errorf("could not write translations file: %w", err)
	}
	return nil
}
