package csvio

import (
	"bytes"
	"slices"

	"github.com/csimplestring/go-csv/detector"

	"github.com/Iron-Ham/cairos/internal/errors"
)

// Auto asks Read to sniff the delimiter from the file contents.
const Auto rune = 0

// preferred breaks ties between detector candidates, which come back in no
// particular order.
var preferred = []rune{',', ';', '\t', '|'}

// ParseDelimiter converts a configuration value into a delimiter rune.
// "auto" and "" yield Auto; `\t` and "tab" yield a tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	case ",", ";", "|":
		return rune(s[0]), nil
	default:
		return Auto, errors.NewValidationError("unsupported delimiter").
			WithField("table.delimiter").WithValue(s)
	}
}

// DelimiterName renders a delimiter the way configuration spells it.
func DelimiterName(r rune) string {
	switch r {
	case Auto:
		return "auto"
	case '\t':
		return `\t`
	default:
		return string(r)
	}
}

// Sniff guesses the delimiter of data. It falls back to a comma when nothing
// looks like a delimiter.
func Sniff(data []byte) rune {
	candidates := detector.New().DetectDelimiter(bytes.NewReader(data), '"')
	found := make([]rune, 0, len(candidates))
	for _, c := range candidates {
		if r := []rune(c); len(r) == 1 {
			found = append(found, r[0])
		}
	}
	for _, p := range preferred {
		if slices.Contains(found, p) {
			return p
		}
	}
	if len(found) > 0 {
		slices.Sort(found)
		return found[0]
	}
	return ','
}
