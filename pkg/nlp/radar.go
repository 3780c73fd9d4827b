package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyPattern = regexp.MustCompile(`\br\$?\s*(\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?)`)
	reaisPattern    = regexp.MustCompile(`\b(\d+(?:\.\d{3})*)\s*(mil\s*)?rea(?:l|is)\b`)
	mileagePattern  = regexp.MustCompile(`\b(\d+)\s*(mil\s*)?(?:milhas|pontos)\b`)
	plainMilPattern = regexp.MustCompile(`\b(\d+)\s*mil\b`)
)

var mileageKeywords = []string{"milhas", "milha", "pontos", "milheiro"}

// ExtractRadar parses a radar-creation utterance. Origin and destination are
// the only hard requirements; date bounds and target value are enhancements
// that raise confidence without being able to lower it below the threshold.
func (p *Processor) ExtractRadar(text string) *RadarCommand {
	normalized := normalizeText(text)
	now := p.now()

	cmd := &RadarCommand{
		MonitorType: MonitorTypeCurrency,
	}

	cmd.Origin, cmd.Destination = resolveRoute(normalized, findCities(normalized))
	if cmd.Origin == "" {
		cmd.Errors = append(cmd.Errors, "cidade de origem não identificada")
	}
	if cmd.Destination == "" {
		cmd.Errors = append(cmd.Errors, "cidade de destino não identificada")
	}

	typeExplicit := false
	for _, keyword := range mileageKeywords {
		if strings.Contains(normalized, keyword) {
			cmd.MonitorType = MonitorTypeMileage
			typeExplicit = true
			break
		}
	}
	if !typeExplicit && containsAnyPhrase(normalized, "reais", "real", "dinheiro") {
		typeExplicit = true
	}

	if value, ok := extractTargetValue(normalized); ok {
		cmd.TargetValue = &value
	}

	if start, idx := resolveDateAt(normalized, now); idx >= 0 {
		cmd.StartDate = start
		if end := resolveDate(normalized[idx+1:], now); end != "" && end != start {
			cmd.EndDate = end
		}
	}

	cmd.Confidence = radarConfidence(cmd, typeExplicit)
	return cmd
}

// radarConfidence: origin and destination each carry 25, so a resolved pair
// sits exactly at the execution threshold before any optional extras.
func radarConfidence(cmd *RadarCommand, typeExplicit bool) int {
	score := 0
	if cmd.Origin != "" {
		score += 25
	}
	if cmd.Destination != "" {
		score += 25
	}
	if cmd.TargetValue != nil {
		score += 15
	}
	if cmd.StartDate != "" {
		score += 10
	}
	if typeExplicit {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func extractTargetValue(text string) (float64, bool) {
	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		cleaned := strings.ReplaceAll(m[1], ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		if value, err := strconv.ParseFloat(cleaned, 64); err == nil && value > 0 {
			return value, true
		}
	}

	if m := reaisPattern.FindStringSubmatch(text); m != nil {
		cleaned := strings.ReplaceAll(m[1], ".", "")
		value, err := strconv.ParseFloat(cleaned, 64)
		if err == nil && value > 0 {
			if m[2] != "" {
				value *= 1000
			}
			return value, true
		}
	}

	if m := mileagePattern.FindStringSubmatch(text); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil && value > 0 {
			if m[2] != "" {
				value *= 1000
			}
			return value, true
		}
	}

	if m := plainMilPattern.FindStringSubmatch(text); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil && value > 0 {
			return value * 1000, true
		}
	}

	return 0, false
}
