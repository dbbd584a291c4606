package audio

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// we support 4 different voices only: one per language and gender
type Voices struct {
	FrenchMale    string
	FrenchFemale  string
	BritishMale   string
	BritishFemale string
	// speaker label -> "male" | "female"; overrides parity for known speakers
	Speakers map[string]string
}

// speaker roster of the course; the speakers file can extend or override it
var defaultSpeakers = map[string]string{
	"M. Durand": "male", "M. Lelong": "male",
	"Client": "male", "Voyageur": "male", "Patient": "male",
	"Employé": "male", "Locataire": "male", "Coiffeur": "male",
	"Étudiant": "male", "A": "male",
	"Réceptionniste": "female", "Vendeur": "female", "Serveur": "female",
	"Agent": "female", "Secrétaire": "female", "Médecin": "female",
	"Professeur": "female", "Collègue": "female", "Passant": "female",
	"Guichet": "female", "B": "female", "FSI": "female",
}

// ForDrill returns the fixed voice for a drill language half.
func (v Voices) ForDrill(lang string) string {
	if lang == "fr" {
		return v.FrenchMale
	}
	return v.BritishMale
}

// ForLine returns the voice for a dialogue line. Known speakers use their
// configured gender; unknown speakers alternate by line-index parity for a
// dialogue feel.
func (v Voices) ForLine(speaker string, index int) string {
	gender, ok := v.Speakers[speaker]
	if !ok {
		if index%2 == 0 {
			gender = "male"
		} else {
			gender = "female"
		}
	}
	if gender == "female" {
		return v.BritishFemale
	}
	return v.BritishMale
}

// LoadSpeakers merges the yaml speaker table at path over the built-in
// roster. An absent file yields the roster unchanged.
func LoadSpeakers(path string) (map[string]string, error) {
	speakers := make(map[string]string, len(defaultSpeakers))
	for k, v := range defaultSpeakers {
		speakers[k] = v
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return speakers, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open speakers file: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return nil, fmt.Errorf("could not unmarshal speakers file: %w", err)
	}
	for k, v := range overrides {
		speakers[k] = v
	}
	return speakers, nil
}
