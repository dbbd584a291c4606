package lesson

import (
	"fmt"
	"regexp"
	"strings"
)

// how far we look back from a dialogue block for its unit marker
const unitLookback = 500

var (
	explicitUnitRe = regexp.MustCompile(`UNIT_DATA\[(\d+)\]`)
	inlineUnitRe   = regexp.MustCompile(`(\d+):\s*\{`)
)

// Parse extracts the unit dialogues from the lesson source document.
//
// The document contains repeated blocks of the shape
//
//	dialogue: [ {speaker: 'X', fr: 'Y', en: 'Z'}, ... ]
//
// keyed by a preceding UNIT_DATA[N] marker or an inline "N: {" key. Records
// are scanned with a quote-aware reader so escaped quotes inside the payload
// survive. Records whose English text is parenthetical metadata or an
// exercise marker are dropped. Units with no surviving lines are omitted.
//
// This is a best-effort extraction over a semi-structured source; malformed
// records are reported, not fatal.
func Parse(src string) (map[int][]Line, []BlockError) {
	units := make(map[int][]Line)
	var errs []BlockError

	pos := 0
	for {
		idx := strings.Index(src[pos:], "dialogue:")
		if idx == -1 {
			break
		}
		at := pos + idx
		i := at + len("dialogue:")
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		if i >= len(src) || src[i] != '[' {
			pos = at + len("dialogue:")
			continue
		}

		unit := unitBefore(src, at)
		body, end, ok := scanArray(src, i)
		if !ok {
			errs = append(errs, BlockError{Unit: unit, Offset: i, Reason: "unterminated dialogue array"})
			break
		}
		pos = end

		if unit == 0 {
			errs = append(errs, BlockError{Offset: at, Reason: "no unit marker before dialogue block"})
			continue
		}

		lines, recErrs := parseRecords(body, unit, i+1)
		errs = append(errs, recErrs...)
		if len(lines) > 0 {
			units[unit] = lines
		}
	}
	return units, errs
}

// Parenthetical reports whether the text is a parenthetical stage note like
// "(pause)" rather than a spoken line.
func Parenthetical(s string) bool {
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

func excluded(english string) bool {
	return Parenthetical(english) || strings.Contains(english, "Exercice")
}

// unitBefore finds the unit number governing the block starting at the given
// position. An explicit UNIT_DATA[N] marker wins over an inline "N: {" key;
// in both cases the nearest preceding match is taken. Returns 0 if no marker
// is found within the lookback window.
func unitBefore(src string, at int) int {
	start := at - unitLookback
	if start < 0 {
		start = 0
	}
	window := src[start:at]

	if m := explicitUnitRe.FindAllStringSubmatch(window, -1); len(m) > 0 {
		return atoi(m[len(m)-1][1])
	}
	if m := inlineUnitRe.FindAllStringSubmatch(window, -1); len(m) > 0 {
		return atoi(m[len(m)-1][1])
	}
	return 0
}

// scanArray returns the contents of the bracketed array starting at src[i]
// (which must be '[') and the position just past the closing bracket. Strings
// are tracked so brackets inside quoted text do not terminate the scan.
func scanArray(src string, i int) (string, int, bool) {
	depth := 0
	var quote byte
	for j := i; j < len(src); j++ {
		c := src[j]
		if quote != 0 {
			if c == '\\' {
				j++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return src[i+1 : j], j + 1, true
			}
		}
	}
	return "", 0, false
}

// parseRecords walks the array body object by object. A record that cannot be
// parsed is reported and skipped; well-formed siblings are kept.
func parseRecords(body string, unit, base int) ([]Line, []BlockError) {
	var lines []Line
	var errs []BlockError

	i := 0
	for i < len(body) {
		open := strings.IndexByte(body[i:], '{')
		if open == -1 {
			break
		}
		start := i + open
		rec, end, ok := scanObject(body, start)
		if !ok {
			errs = append(errs, BlockError{Unit: unit, Offset: base + start, Reason: "unterminated record"})
			break
		}
		i = end

		line, err := parseRecord(rec)
		if err != nil {
			errs = append(errs, BlockError{Unit: unit, Offset: base + start, Reason: err.Error()})
			continue
		}
		if excluded(line.English) {
			continue
		}
		lines = append(lines, line)
	}
	return lines, errs
}

func scanObject(src string, i int) (string, int, bool) {
	depth := 0
	var quote byte
	for j := i; j < len(src); j++ {
		c := src[j]
		if quote != 0 {
			if c == '\\' {
				j++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[i+1 : j], j + 1, true
			}
		}
	}
	return "", 0, false
}

// parseRecord reads a {speaker: '...', fr: '...', en: '...'} payload.
func parseRecord(rec string) (Line, error) {
	fields := make(map[string]string, 3)

	i := skipSeparators(rec, 0)
	for i < len(rec) {
		j := i
		for j < len(rec) && isIdent(rec[j]) {
			j++
		}
		if j == i {
			return Line{}, fmt.Errorf("expected field name at offset %d", i)
		}
		name := rec[i:j]

		i = skipSpaces(rec, j)
		if i >= len(rec) || rec[i] != ':' {
			return Line{}, fmt.Errorf("missing ':' after field %q", name)
		}
		i = skipSpaces(rec, i+1)

		val, next, err := scanString(rec, i)
		if err != nil {
			return Line{}, fmt.Errorf("field %q: %v", name, err)
		}
		fields[name] = val
		i = skipSeparators(rec, next)
	}

	for _, name := range []string{"speaker", "fr", "en"} {
		if _, ok := fields[name]; !ok {
			return Line{}, fmt.Errorf("missing field %q", name)
		}
	}
	return Line{
		Speaker: fields["speaker"],
		French:  fields["fr"],
		English: fields["en"],
	}, nil
}

// scanString reads a single- or double-quoted string starting at src[i],
// unescaping escaped quotes, and returns the value and the position just past
// the closing quote.
func scanString(src string, i int) (string, int, error) {
	if i >= len(src) || (src[i] != '\'' && src[i] != '"') {
		return "", 0, fmt.Errorf("expected quoted string at offset %d", i)
	}
	quote := src[i]

	var b strings.Builder
	for j := i + 1; j < len(src); j++ {
		c := src[j]
		if c == '\\' && j+1 < len(src) {
			next := src[j+1]
			if next == '\'' || next == '"' {
				b.WriteByte(next)
				j++
				continue
			}
			b.WriteByte(c)
			continue
		}
		if c == quote {
			return b.String(), j + 1, nil
		}
		b.WriteByte(c)
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", i)
}

func skipSpaces(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipSeparators(s string, i int) int {
	for i < len(s) && (isSpace(s[i]) || s[i] == ',') {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
