package nlp

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func testClock() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

func newTestProcessor() IProcessor {
	return NewProcessorWithClock(testClock)
}

func TestClassifyIntents(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"question mark", "como faço para buscar um voo?", IntentQuestion},
		{"interrogative word", "qual o preço da passagem para Miami", IntentQuestion},
		{"me diga phrase", "me diga onde fica o roteiro", IntentQuestion},
		{"question beats command keywords", "pode criar radar de São Paulo para Miami", IntentQuestion},
		{"buscar voo", "buscar voo de São Paulo para Rio de Janeiro amanhã", IntentFlightSearch},
		{"quero viajar", "quero viajar para Lisboa na próxima semana", IntentFlightSearch},
		{"passagem token", "preciso de passagem para Salvador", IntentFlightSearch},
		{"criar radar", "criar radar de Brasília para Miami", IntentRadarCreate},
		{"monitorar preco", "monitorar preço de voo para Recife", IntentRadarCreate},
		{"abrir radares", "abrir meus radares", IntentRadarOpen},
		{"ver radar", "ver radar de Fortaleza", IntentRadarOpen},
		{"excluir radar", "excluir o radar de Miami", IntentRadarDelete},
		{"apagar radar", "apagar radar antigo", IntentRadarDelete},
		{"navigate perfil", "ir para o meu perfil", IntentNavigate},
		{"navigate fidelidade", "abrir fidelidade", IntentNavigate},
		{"navigate dashboard", "navegar para o dashboard", IntentNavigate},
		{"back", "voltar para a tela anterior", IntentBack},
		{"small talk", "bom dia, tudo bem", IntentUnrecognized},
		{"empty", "", IntentUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Classify(tt.text)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q).Intent = %q, want %q", tt.text, got.Intent, tt.want)
			}
		})
	}
}

func TestClassifyNavigateResolvesRoute(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		text     string
		wantPath string
	}{
		{"ir para o meu perfil", "/perfil"},
		{"abrir o painel", "/dashboard"},
		{"navegar para minhas milhas", "/fidelidade"},
		{"ir para nova viagem", "/nova-viagem"},
		{"abrir suporte", "/suporte"},
		{"ir para viagem sustentável", "/sustentavel"},
	}

	for _, tt := range tests {
		got := p.Classify(tt.text)
		if got.Intent != IntentNavigate {
			t.Errorf("Classify(%q).Intent = %q, want navigate", tt.text, got.Intent)
			continue
		}
		if got.RoutePath != tt.wantPath {
			t.Errorf("Classify(%q).RoutePath = %q, want %q", tt.text, got.RoutePath, tt.wantPath)
		}
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	p := newTestProcessor()

	inputs := []string{
		"buscar voo de São Paulo para Rio de Janeiro amanhã",
		"como faço para buscar um voo?",
		"criar radar de Brasília para Miami",
		"qualquer coisa sem sentido",
	}

	for _, text := range inputs {
		first := p.Classify(text)
		second := p.Classify(text)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Classify(%q) not idempotent: %+v vs %+v", text, first, second)
		}
	}
}

func TestAddRouteMapping(t *testing.T) {
	p := newTestProcessor()

	err := p.AddRouteMapping("promotions", RouteMappingData{
		RouteID:     "promotions",
		Path:        "/promocoes",
		DisplayName: "Promoções",
		Keywords:    []string{"promoções", "ofertas"},
	})
	if err != nil {
		t.Fatalf("AddRouteMapping: %v", err)
	}

	got := p.Classify("abrir promoções")
	if got.Intent != IntentNavigate || got.RoutePath != "/promocoes" {
		t.Errorf("Classify after AddRouteMapping = %+v, want navigate to /promocoes", got)
	}
}

func TestRemoveRouteMapping(t *testing.T) {
	p := newTestProcessor()

	err := p.AddRouteMapping("promotions", RouteMappingData{
		RouteID:     "promotions",
		Path:        "/promocoes",
		DisplayName: "Promoções",
		Keywords:    []string{"promoções"},
	})
	if err != nil {
		t.Fatalf("AddRouteMapping: %v", err)
	}

	p.RemoveRouteMapping("promotions")

	got := p.Classify("abrir promoções")
	if got.Intent == IntentNavigate {
		t.Errorf("Classify after RemoveRouteMapping = %+v, want no navigation", got)
	}
	if _, ok := p.GetRouteMapping("promotions"); ok {
		t.Error("GetRouteMapping still finds removed route")
	}
}

func TestGetAllRouteMappingsReturnsSnapshot(t *testing.T) {
	p := newTestProcessor()

	mappings := p.GetAllRouteMappings()
	delete(mappings, "profile")

	got := p.Classify("ir para o meu perfil")
	if got.Intent != IntentNavigate || got.RoutePath != "/perfil" {
		t.Errorf("Classify = %+v, want navigate to /perfil after mutating the snapshot", got)
	}
}

// Route mappings are written by the catalog endpoints while live sessions
// classify transcripts, so the matcher must survive concurrent use.
func TestRouteMappingsConcurrentAccess(t *testing.T) {
	p := newTestProcessor()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				p.Classify("ir para o meu perfil")
				p.GetAllRouteMappings()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 200; j++ {
			routeID := "promotions"
			_ = p.AddRouteMapping(routeID, RouteMappingData{
				RouteID:     routeID,
				Path:        "/promocoes",
				DisplayName: "Promoções",
				Keywords:    []string{"promoções", "ofertas"},
			})
			p.RemoveRouteMapping(routeID)
		}
	}()

	wg.Wait()
}
