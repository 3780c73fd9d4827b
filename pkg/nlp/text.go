package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stopWords = map[string]bool{
	"eu": true, "o": true, "a": true, "os": true, "as": true, "um": true,
	"uma": true, "e": true, "ou": true, "em": true, "no": true, "na": true,
	"que": true, "meu": true, "minha": true, "por": true, "favor": true,
}

// normalizeText lowercases, strips diacritics and collapses everything that is
// not a letter, digit or space. All keyword matching happens on this form, so
// "São Paulo", "amanhã" and "preço" match their unaccented spellings too.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '/' || r == ',' || r == '.' {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func extractTokens(text string) []string {
	words := strings.Fields(text)
	var tokens []string

	for _, word := range words {
		word = strings.Trim(word, ".,")
		if word != "" && !stopWords[word] {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

func containsToken(tokens []string, keyword string) bool {
	for _, token := range tokens {
		if token == keyword {
			return true
		}
	}
	return false
}

func containsAnyToken(tokens []string, keywords ...string) bool {
	for _, keyword := range keywords {
		if containsToken(tokens, keyword) {
			return true
		}
	}
	return false
}

func containsAnyPhrase(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
