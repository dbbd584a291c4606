package manifest

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fbngrm/fr-audio/pkg/drill"
	"github.com/fbngrm/fr-audio/pkg/lesson"
)

// Range is an inclusive unit range.
type Range struct {
	Start int
	End   int
}

// BuildDrills plans audio for the most common drills of each unit in range.
// Drills already present in the audio mapping are skipped. Within a unit,
// drills are ordered by commonality descending (stable on ties), capped at
// perUnit, and drills lacking French or English text are dropped. Ranks are
// assigned after the text filter so they always form a contiguous 1..k
// sequence. The build is pure and deterministic.
func BuildDrills(records []drill.Record, audioMapping map[string]string, r Range, perUnit int) Drills {
	m := Drills{
		Description:   fmt.Sprintf("Top %d most common drills per unit (%d-%d), French + English", perUnit, r.Start, r.End),
		DrillsPerUnit: perUnit,
	}

	for unit := r.Start; unit <= r.End; unit++ {
		m.Units = append(m.Units, unit)

		var unitDrills []drill.Record
		for _, d := range records {
			if d.Unit != unit {
				continue
			}
			if _, ok := audioMapping[d.ID]; ok {
				continue
			}
			unitDrills = append(unitDrills, d)
		}
		sort.SliceStable(unitDrills, func(i, j int) bool {
			return unitDrills[i].Commonality > unitDrills[j].Commonality
		})
		if len(unitDrills) > perUnit {
			unitDrills = unitDrills[:perUnit]
		}

		rank := 0
		for _, d := range unitDrills {
			french := strings.TrimSpace(d.French)
			english := strings.TrimSpace(d.English)
			if french == "" || english == "" {
				continue
			}
			rank++
			e := DrillEntry{
				ID:          d.ID,
				Unit:        unit,
				Rank:        rank,
				Commonality: d.Commonality,
				French:      french,
				English:     english,
				CharsFr:     chars(french),
				CharsEn:     chars(english),
			}
			m.Drills = append(m.Drills, e)
			m.TotalCharsFr += e.CharsFr
			m.TotalCharsEn += e.CharsEn
		}
	}

	m.TotalDrills = len(m.Drills)
	m.TotalChars = m.TotalCharsFr + m.TotalCharsEn
	return m
}

// BuildDialogues plans English dialogue audio per unit. Parenthetical
// metadata lines are dropped and the survivors reindexed from zero; the
// first two surviving lines of a unit are spoken with a speaker label
// prefix. Units with no surviving lines are omitted.
func BuildDialogues(units map[int][]lesson.Line) Dialogues {
	m := Dialogues{
		Description: "English dialogue audio - speaker labels on first 2 lines only",
	}

	nums := make([]int, 0, len(units))
	for n := range units {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	for _, num := range nums {
		u := DialogueUnit{Unit: num}
		for _, line := range units[num] {
			if lesson.Parenthetical(line.English) {
				continue
			}
			idx := len(u.Lines)
			text := line.English
			if idx < 2 {
				text = line.Speaker + ": " + line.English
			}
			l := DialogueLine{
				Index:           idx,
				Speaker:         line.Speaker,
				OriginalEnglish: line.English,
				TextToSpeak:     text,
				HasSpeakerLabel: idx < 2,
				Chars:           chars(text),
			}
			u.Lines = append(u.Lines, l)
			u.TotalChars += l.Chars
		}
		if len(u.Lines) == 0 {
			continue
		}
		m.Units = append(m.Units, u)
		m.TotalLines += len(u.Lines)
		m.TotalChars += u.TotalChars
	}

	m.TotalUnits = len(m.Units)
	return m
}

func chars(s string) int {
	return utf8.RuneCountInString(s)
}
