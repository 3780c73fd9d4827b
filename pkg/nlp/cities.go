package nlp

import (
	"sort"
	"strings"
)

type cityEntry struct {
	display string
	folded  string
}

// Supported origins/destinations. Matching happens on the folded form; the
// display form is what flows into search parameters and radar records.
var supportedCities = []cityEntry{
	{display: "São Paulo"},
	{display: "Rio de Janeiro"},
	{display: "Brasília"},
	{display: "Salvador"},
	{display: "Belo Horizonte"},
	{display: "Fortaleza"},
	{display: "Recife"},
	{display: "Porto Alegre"},
	{display: "Curitiba"},
	{display: "Manaus"},
	{display: "Florianópolis"},
	{display: "Natal"},
	{display: "Belém"},
	{display: "Goiânia"},
	{display: "Foz do Iguaçu"},
	{display: "Miami"},
	{display: "Orlando"},
	{display: "Nova York"},
	{display: "Lisboa"},
	{display: "Porto"},
	{display: "Paris"},
	{display: "Londres"},
	{display: "Madri"},
	{display: "Roma"},
	{display: "Buenos Aires"},
	{display: "Santiago"},
	{display: "Bogotá"},
	{display: "Cancún"},
	{display: "Cidade do México"},
	{display: "Dubai"},
	{display: "Tóquio"},
}

func init() {
	for i := range supportedCities {
		supportedCities[i].folded = normalizeText(supportedCities[i].display)
	}
	// Longest names first so "Porto Alegre" wins over "Porto".
	sort.SliceStable(supportedCities, func(i, j int) bool {
		return len(supportedCities[i].folded) > len(supportedCities[j].folded)
	})
}

type cityMatch struct {
	display string
	index   int
}

// findCities locates every supported city in the normalized text, in order of
// appearance. Overlapping matches are resolved in favor of the longer name.
func findCities(text string) []cityMatch {
	masked := []byte(text)
	var matches []cityMatch

	for _, city := range supportedCities {
		offset := 0
		for {
			idx := strings.Index(string(masked[offset:]), city.folded)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(city.folded)

			if isWordBounded(text, start, end) {
				matches = append(matches, cityMatch{display: city.display, index: start})
				for i := start; i < end; i++ {
					masked[i] = '#'
				}
			}
			offset = end
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].index < matches[j].index
	})
	return matches
}

func isWordBounded(text string, start, end int) bool {
	if start > 0 && text[start-1] != ' ' {
		return false
	}
	if end < len(text) && text[end] != ' ' && text[end] != ',' && text[end] != '.' {
		return false
	}
	return true
}

// resolveRoute picks origin and destination out of the matched cities using
// the prepositions that precede each mention. "de São Paulo para Miami" works
// with either ordering; with no usable prepositions, text order decides.
func resolveRoute(text string, matches []cityMatch) (origin, destination string) {
	var positional []cityMatch

	for _, match := range matches {
		switch precedingWord(text, match.index) {
		case "de", "do", "da", "desde", "saindo":
			if origin == "" {
				origin = match.display
				continue
			}
		case "para", "pra", "ate", "a", "rumo":
			if destination == "" && match.display != origin {
				destination = match.display
				continue
			}
		}
		positional = append(positional, match)
	}

	for _, match := range positional {
		if origin == "" && match.display != destination {
			origin = match.display
		} else if destination == "" && match.display != origin {
			destination = match.display
		}
	}

	return origin, destination
}

func precedingWord(text string, index int) string {
	if index == 0 {
		return ""
	}
	before := strings.Fields(text[:index])
	if len(before) == 0 {
		return ""
	}
	return before[len(before)-1]
}
