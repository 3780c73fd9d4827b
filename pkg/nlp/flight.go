package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	CabinEconomy  = "economica"
	CabinBusiness = "executiva"
	CabinFirst    = "primeira"
)

var passengerPattern = regexp.MustCompile(`\b(\d{1,2})\s+(passageiros?|pessoas?|adultos?|viajantes?)`)

var numberWords = map[string]int{
	"um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3, "quatro": 4,
	"cinco": 5, "seis": 6, "sete": 7, "oito": 8, "nove": 9, "dez": 10,
}

var returnMarkers = []string{"voltando", "volta", "retorno", "regresso"}

// ExtractFlight parses origin, destination, dates, passenger count and cabin
// class out of a flight-search utterance. Confidence crosses the execution
// threshold only when origin, destination and departure date are all present.
func (p *Processor) ExtractFlight(text string) *FlightCommand {
	normalized := normalizeText(text)
	now := p.now()

	cmd := &FlightCommand{
		Passengers: 1,
		CabinClass: CabinEconomy,
	}

	cmd.Origin, cmd.Destination = resolveRoute(normalized, findCities(normalized))
	if cmd.Origin == "" {
		cmd.Errors = append(cmd.Errors, "cidade de origem não identificada")
	}
	if cmd.Destination == "" {
		cmd.Errors = append(cmd.Errors, "cidade de destino não identificada")
	}

	departureText, returnText := splitOnReturnMarker(normalized)

	cmd.DepartureDate = resolveDate(departureText, now)
	if cmd.DepartureDate == "" {
		if hasDateHint(departureText) {
			cmd.Errors = append(cmd.Errors, "data de ida não reconhecida")
		} else {
			cmd.Errors = append(cmd.Errors, "data de ida não informada")
		}
	}
	if returnText != "" {
		cmd.ReturnDate = resolveDate(returnText, now)
	}

	passengers, passengersExplicit := extractPassengers(normalized)
	if passengersExplicit {
		cmd.Passengers = passengers
	}

	cabin, cabinExplicit := extractCabinClass(normalized)
	if cabinExplicit {
		cmd.CabinClass = cabin
	}

	cmd.Confidence = flightConfidence(cmd, passengersExplicit, cabinExplicit)
	return cmd
}

// flightConfidence is any monotonic score honoring the single load-bearing
// rule: >= 50 iff all three hard fields resolved. Per-field points alone top
// out at 45; the hard-field bonus pushes a complete command to 65.
func flightConfidence(cmd *FlightCommand, passengersExplicit, cabinExplicit bool) int {
	score := 0
	if cmd.Origin != "" {
		score += 15
	}
	if cmd.Destination != "" {
		score += 15
	}
	if cmd.DepartureDate != "" {
		score += 15
	}
	if cmd.Origin != "" && cmd.Destination != "" && cmd.DepartureDate != "" {
		score += 20
	}
	if cmd.ReturnDate != "" {
		score += 5
	}
	if passengersExplicit {
		score += 5
	}
	if cabinExplicit {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func splitOnReturnMarker(text string) (departure, ret string) {
	for _, marker := range returnMarkers {
		if idx := strings.Index(text, marker); idx >= 0 {
			return text[:idx], text[idx:]
		}
	}
	return text, ""
}

func extractPassengers(text string) (int, bool) {
	if m := passengerPattern.FindStringSubmatch(text); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil && count > 0 {
			return count, true
		}
	}

	words := strings.Fields(text)
	for i := 0; i+1 < len(words); i++ {
		count, ok := numberWords[words[i]]
		if !ok {
			continue
		}
		switch strings.Trim(words[i+1], ".,") {
		case "passageiro", "passageiros", "pessoa", "pessoas",
			"adulto", "adultos", "viajante", "viajantes":
			return count, true
		}
	}

	return 1, false
}

func extractCabinClass(text string) (string, bool) {
	switch {
	case containsAnyPhrase(text, "primeira classe"):
		return CabinFirst, true
	case containsAnyPhrase(text, "executiva", "business"):
		return CabinBusiness, true
	case containsAnyPhrase(text, "economica", "economy"):
		return CabinEconomy, true
	}
	return CabinEconomy, false
}
