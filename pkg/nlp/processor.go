package nlp

import (
	"strings"
	"sync"
	"time"
)

type Processor struct {
	mu            sync.RWMutex
	routeMappings map[string]RouteMappingData
	rules         []commandRule
	now           func() time.Time
}

// commandRule is one entry of the intent table. Rules are evaluated in
// ascending priority order and the first match wins; the interrogative check
// runs before any of them.
type commandRule struct {
	priority int
	intent   Intent
	matches  func(p *Processor, text string, tokens []string) bool
}

func NewProcessor() IProcessor {
	return newProcessor(time.Now)
}

// NewProcessorWithClock pins "hoje"/"amanhã" resolution to a fixed clock.
func NewProcessorWithClock(now func() time.Time) IProcessor {
	return newProcessor(now)
}

func newProcessor(now func() time.Time) *Processor {
	p := &Processor{
		routeMappings: getDefaultRouteMappings(),
		now:           now,
	}
	p.rules = []commandRule{
		{priority: 10, intent: IntentFlightSearch, matches: matchFlightSearch},
		{priority: 20, intent: IntentRadarCreate, matches: matchRadarCreate},
		{priority: 30, intent: IntentRadarOpen, matches: matchRadarOpen},
		{priority: 40, intent: IntentRadarDelete, matches: matchRadarDelete},
		{priority: 50, intent: IntentNavigate, matches: matchNavigate},
		{priority: 60, intent: IntentBack, matches: matchBack},
	}
	return p
}

var questionPhrases = []string{
	"por que", "porque", "o que", "me fale", "me diga",
}

var questionTokens = []string{
	"como", "qual", "quando", "onde", "quem", "explique", "ajuda", "pode",
}

func (p *Processor) Classify(text string) Classification {
	raw := text
	normalized := normalizeText(text)
	tokens := extractTokens(normalized)

	if isQuestion(raw, normalized, tokens) {
		return Classification{Intent: IntentQuestion}
	}

	for _, rule := range p.rules {
		if rule.matches(p, normalized, tokens) {
			cls := Classification{Intent: rule.intent}
			if rule.intent == IntentNavigate {
				if mapping, ok := p.matchRoute(normalized, tokens); ok {
					cls.RouteID = mapping.RouteID
					cls.RoutePath = mapping.Path
					cls.RouteDisplayName = mapping.DisplayName
				}
			}
			return cls
		}
	}

	return Classification{Intent: IntentUnrecognized}
}

func isQuestion(raw, normalized string, tokens []string) bool {
	if strings.Contains(raw, "?") {
		return true
	}
	if containsAnyPhrase(normalized, questionPhrases...) {
		return true
	}
	return containsAnyToken(tokens, questionTokens...)
}

func matchFlightSearch(_ *Processor, text string, tokens []string) bool {
	if containsAnyPhrase(text, "buscar voo", "procurar voo", "quero viajar") {
		return true
	}
	return containsAnyToken(tokens, "voar", "passagem", "passagens")
}

func matchRadarCreate(_ *Processor, text string, tokens []string) bool {
	if strings.Contains(text, "radar") {
		return containsAnyToken(tokens, "criar", "crie", "criando", "novo", "nova", "adicionar", "adicione")
	}
	if !containsToken(tokens, "monitorar") {
		return false
	}
	return containsAnyToken(tokens, "voo", "voos", "preco", "precos")
}

func matchRadarOpen(_ *Processor, text string, tokens []string) bool {
	return containsAnyToken(tokens, "abrir", "ver") && strings.Contains(text, "radar")
}

func matchRadarDelete(_ *Processor, text string, tokens []string) bool {
	return containsAnyToken(tokens, "remover", "deletar", "excluir", "apagar") &&
		strings.Contains(text, "radar")
}

func matchNavigate(p *Processor, text string, tokens []string) bool {
	if !containsAnyPhrase(text, "ir para", "abrir", "navegar") {
		return false
	}
	_, ok := p.matchRoute(text, tokens)
	return ok
}

func matchBack(_ *Processor, _ string, tokens []string) bool {
	return containsAnyToken(tokens, "voltar", "retornar")
}

// matchRoute is safe for concurrent use: route mappings can be added while
// live sessions are classifying.
func (p *Processor) matchRoute(text string, tokens []string) (RouteMappingData, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var best RouteMappingData
	bestLen := 0

	for _, mapping := range p.routeMappings {
		for _, keyword := range mapping.Keywords {
			matched := false
			if strings.Contains(keyword, " ") {
				matched = strings.Contains(text, keyword)
			} else {
				matched = containsToken(tokens, keyword)
			}
			// longest keyword wins so "busca de voos" beats "radar" etc.
			if matched && len(keyword) > bestLen {
				best = mapping
				bestLen = len(keyword)
			}
		}
	}

	return best, bestLen > 0
}

func (p *Processor) GetRouteMapping(routeID string) (RouteMappingData, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	mapping, exists := p.routeMappings[routeID]
	return mapping, exists
}

// GetAllRouteMappings returns a snapshot copy so callers cannot mutate the
// matcher's state.
func (p *Processor) GetAllRouteMappings() map[string]RouteMappingData {
	p.mu.RLock()
	defer p.mu.RUnlock()

	mappings := make(map[string]RouteMappingData, len(p.routeMappings))
	for routeID, mapping := range p.routeMappings {
		mappings[routeID] = mapping
	}
	return mappings
}

func (p *Processor) AddRouteMapping(routeID string, mapping RouteMappingData) error {
	normalized := make([]string, 0, len(mapping.Keywords))
	for _, keyword := range mapping.Keywords {
		normalized = append(normalized, normalizeText(keyword))
	}
	mapping.Keywords = normalized

	p.mu.Lock()
	defer p.mu.Unlock()

	p.routeMappings[routeID] = mapping
	return nil
}

func (p *Processor) RemoveRouteMapping(routeID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.routeMappings, routeID)
}

func getDefaultRouteMappings() map[string]RouteMappingData {
	return map[string]RouteMappingData{
		"dashboard": {
			RouteID:     "dashboard",
			Path:        "/dashboard",
			DisplayName: "Dashboard",
			Keywords:    []string{"dashboard", "painel", "inicio", "tela inicial"},
		},
		"flight_search": {
			RouteID:     "flight_search",
			Path:        "/busca-voos",
			DisplayName: "Busca de Voos",
			Keywords:    []string{"busca de voos", "buscar voos", "busca voo"},
		},
		"profile": {
			RouteID:     "profile",
			Path:        "/perfil",
			DisplayName: "Perfil",
			Keywords:    []string{"perfil", "minha conta"},
		},
		"itinerary": {
			RouteID:     "itinerary",
			Path:        "/roteiro",
			DisplayName: "Roteiro",
			Keywords:    []string{"roteiro", "itinerario", "planejador"},
		},
		"radar": {
			RouteID:     "radar",
			Path:        "/radar",
			DisplayName: "Radar de Preços",
			Keywords:    []string{"radar", "radares"},
		},
		"loyalty": {
			RouteID:     "loyalty",
			Path:        "/fidelidade",
			DisplayName: "Fidelidade",
			Keywords:    []string{"fidelidade", "milhas", "pontos"},
		},
		"new_trip": {
			RouteID:     "new_trip",
			Path:        "/nova-viagem",
			DisplayName: "Nova Viagem",
			Keywords:    []string{"nova viagem"},
		},
		"support": {
			RouteID:     "support",
			Path:        "/suporte",
			DisplayName: "Suporte",
			Keywords:    []string{"suporte", "atendimento"},
		},
		"sustainable": {
			RouteID:     "sustainable",
			Path:        "/sustentavel",
			DisplayName: "Viagem Sustentável",
			Keywords:    []string{"sustentavel", "sustentabilidade"},
		},
	}
}
