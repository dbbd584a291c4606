package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
const UNIT_DATA = {};
UNIT_DATA[9] = {
    title: 'Getting around',
    dialogue: [
        {speaker: 'M. Durand', fr: 'Où est la gare ?', en: 'Where is the station?'},
        {speaker: 'Mme Martin', fr: 'Tout droit, monsieur.', en: 'Straight ahead, sir.'},
        {speaker: '', fr: '', en: '(pause)'},
        {speaker: 'Narrator', fr: '', en: 'Exercice 9.1'},
    ],
};
UNIT_DATA[10] = {
    dialogue: [
        {speaker: 'Janine', fr: 'C\'est l\'heure.', en: 'It\'s time.'},
    ],
};
`
	units, errs := Parse(src)
	assert.Empty(t, errs)
	require.Len(t, units, 2)

	require.Len(t, units[9], 2)
	assert.Equal(t, Line{Speaker: "M. Durand", French: "Où est la gare ?", English: "Where is the station?"}, units[9][0])
	assert.Equal(t, "Mme Martin", units[9][1].Speaker)

	require.Len(t, units[10], 1)
	assert.Equal(t, "C'est l'heure.", units[10][0].French)
	assert.Equal(t, "It's time.", units[10][0].English)
}

func TestParseInlineUnitKey(t *testing.T) {
	src := `
const data = {
    12: {
        dialogue: [
            {speaker: 'A', fr: 'Oui.', en: 'Yes.'},
        ],
    },
};
`
	units, errs := Parse(src)
	assert.Empty(t, errs)
	require.Len(t, units, 1)
	require.Len(t, units[12], 1)
	assert.Equal(t, "Oui.", units[12][0].French)
}

func TestParseMalformedRecordReported(t *testing.T) {
	src := `
UNIT_DATA[9] = {
    dialogue: [
        {speaker: 'A', fr: 'Bonjour.', en: 'Hello.'},
        {speaker: 'B', fr: 'Salut.'},
        {speaker: 'C', fr: 'Bonsoir.', en: 'Good evening.'},
    ],
};
`
	units, errs := Parse(src)
	require.Len(t, errs, 1)
	assert.Equal(t, 9, errs[0].Unit)
	assert.Contains(t, errs[0].Reason, `missing field "en"`)

	// well-formed siblings survive
	require.Len(t, units[9], 2)
	assert.Equal(t, "Hello.", units[9][0].English)
	assert.Equal(t, "Good evening.", units[9][1].English)
}

func TestParseNoUnitMarker(t *testing.T) {
	src := `dialogue: [ {speaker: 'A', fr: 'Oui.', en: 'Yes.'} ]`
	units, errs := Parse(src)
	assert.Empty(t, units)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Reason, "no unit marker")
}

func TestParseBracketsInsideStrings(t *testing.T) {
	src := `
UNIT_DATA[11] = {
    dialogue: [
        {speaker: 'A', fr: 'Voilà [enfin].', en: 'There [at last].'},
    ],
};
`
	units, errs := Parse(src)
	assert.Empty(t, errs)
	require.Len(t, units[11], 1)
	assert.Equal(t, "There [at last].", units[11][0].English)
}

func TestParseEmptyUnitOmitted(t *testing.T) {
	src := `
UNIT_DATA[13] = {
    dialogue: [
        {speaker: '', fr: '', en: '(recording starts)'},
    ],
};
`
	units, errs := Parse(src)
	assert.Empty(t, errs)
	assert.NotContains(t, units, 13)
}

func TestParenthetical(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"(pause)", true},
		{"(long pause)", true},
		{"Where is it?", false},
		{"(partial", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parenthetical(tt.text), tt.text)
	}
}
