// Package cityname normalizes free-text city names for duplicate
// detection and display.
package cityname

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	separators = strings.NewReplacer("-", " ", "–", " ", "'", " ", "’", " ")
	spaces     = regexp.MustCompile(`\s+`)
	digits     = regexp.MustCompile(`\d+`)
)

// Normalize folds a city name into its canonical duplicate-check form:
// lowercase, diacritics stripped, hyphens and apostrophes replaced by
// spaces, whitespace collapsed. "São Paulo" and "sao-paulo" normalize
// identically.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = separators.Replace(s)
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// Short returns the display label of a geocoder address: the segment
// before the first comma.
func Short(full string) string {
	if i := strings.IndexByte(full, ','); i >= 0 {
		full = full[:i]
	}
	return strings.TrimSpace(full)
}

// ParsePopulation extracts an integer population from a free-form tag
// value such as "2 148 271" or "2,148,271". Returns 0 when no digits
// are present, or when the digits do not add up to a plausible count:
// provider tag values are free text, so a digit-heavy blob must never
// overflow into a negative population.
func ParsePopulation(raw string) int {
	joined := strings.Join(digits.FindAllString(raw, -1), "")
	if joined == "" || len(joined) > 10 {
		return 0
	}
	n, err := strconv.Atoi(joined)
	if err != nil {
		return 0
	}
	return n
}

// Similarity scores how alike two city names are in [0, 1] using the
// Sørensen–Dice coefficient over character bigrams of the normalized
// forms. 1 means identical after normalization.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1
	}
	ba, bb := bigrams(na), bigrams(nb)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	common := 0
	for g, n := range ba {
		if m, ok := bb[g]; ok {
			common += min(n, m)
		}
	}
	total := 0
	for _, n := range ba {
		total += n
	}
	for _, n := range bb {
		total += n
	}
	return 2 * float64(common) / float64(total)
}

func bigrams(s string) map[string]int {
	rs := []rune(s)
	m := make(map[string]int, len(rs))
	for i := 0; i+1 < len(rs); i++ {
		m[string(rs[i:i+2])]++
	}
	return m
}
