package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

var (
	dayOfMonthPattern = regexp.MustCompile(`\bdia (\d{1,2})(?: de (\p{L}+))?`)
	writtenPattern    = regexp.MustCompile(`\b(\d{1,2}) de (\p{L}+)`)
	numericPattern    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
)

// relative phrases ordered so that "depois de amanha" is tried before "amanha".
var relativeDates = []struct {
	phrase string
	days   int
}{
	{"depois de amanha", 2},
	{"amanha", 1},
	{"hoje", 0},
	{"proxima semana", 7},
	{"semana que vem", 7},
	{"proximo mes", 30},
	{"mes que vem", 30},
}

const isoDate = "2006-01-02"

// resolveDate turns the first date expression found in the normalized text
// into an ISO date. It returns the empty string when nothing parseable is
// present. Dates already behind `now` roll over to the next year.
func resolveDate(text string, now time.Time) string {
	date, _ := resolveDateAt(text, now)
	return date
}

// resolveDateAt additionally reports the byte offset of the expression, which
// the flight extractor uses to tell departure from return dates.
func resolveDateAt(text string, now time.Time) (string, int) {
	type candidate struct {
		date  string
		index int
	}
	var best *candidate

	consider := func(date string, index int) {
		if date == "" {
			return
		}
		if best == nil || index < best.index {
			best = &candidate{date: date, index: index}
		}
	}

	for _, rel := range relativeDates {
		if idx := strings.Index(text, rel.phrase); idx >= 0 {
			consider(now.AddDate(0, 0, rel.days).Format(isoDate), idx)
			break
		}
	}

	if loc := dayOfMonthPattern.FindStringSubmatchIndex(text); loc != nil {
		m := dayOfMonthPattern.FindStringSubmatch(text)
		consider(buildDate(m[1], m[2], "", now), loc[0])
	} else if loc := writtenPattern.FindStringSubmatchIndex(text); loc != nil {
		m := writtenPattern.FindStringSubmatch(text)
		if _, ok := monthNames[m[2]]; ok {
			consider(buildDate(m[1], m[2], "", now), loc[0])
		}
	}

	if loc := numericPattern.FindStringSubmatchIndex(text); loc != nil {
		m := numericPattern.FindStringSubmatch(text)
		consider(buildNumericDate(m[1], m[2], m[3], now), loc[0])
	}

	if best == nil {
		return "", -1
	}
	return best.date, best.index
}

func buildDate(dayStr, monthStr, yearStr string, now time.Time) string {
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return ""
	}

	month := now.Month()
	if monthStr != "" {
		named, ok := monthNames[monthStr]
		if !ok {
			return ""
		}
		month = named
	}

	year := now.Year()
	if yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return ""
		}
		if parsed < 100 {
			parsed += 2000
		}
		year = parsed
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if yearStr == "" && date.Before(now.Truncate(24*time.Hour)) {
		date = date.AddDate(1, 0, 0)
	}
	if date.Day() != day {
		return ""
	}
	return date.Format(isoDate)
}

func buildNumericDate(dayStr, monthStr, yearStr string, now time.Time) string {
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return buildDate(dayStr, monthName(time.Month(month)), yearStr, now)
}

func monthName(m time.Month) string {
	for name, month := range monthNames {
		if month == m {
			return name
		}
	}
	return ""
}

// hasDateHint reports whether the text mentions anything date-like at all,
// used to distinguish "no date given" from "date given but unparseable".
func hasDateHint(text string) bool {
	if containsAnyPhrase(text, "dia ", "/") {
		return true
	}
	for _, rel := range relativeDates {
		if strings.Contains(text, rel.phrase) {
			return true
		}
	}
	for name := range monthNames {
		if strings.Contains(text, " de "+name) {
			return true
		}
	}
	return false
}
