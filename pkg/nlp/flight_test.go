package nlp

import (
	"strings"
	"testing"
)

func TestExtractFlightCompleteCommand(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractFlight("buscar voo de São Paulo para Rio de Janeiro amanhã")

	if cmd.Origin != "São Paulo" {
		t.Errorf("Origin = %q, want São Paulo", cmd.Origin)
	}
	if cmd.Destination != "Rio de Janeiro" {
		t.Errorf("Destination = %q, want Rio de Janeiro", cmd.Destination)
	}
	if cmd.DepartureDate != "2026-03-02" {
		t.Errorf("DepartureDate = %q, want 2026-03-02", cmd.DepartureDate)
	}
	if cmd.Passengers != 1 {
		t.Errorf("Passengers = %d, want default 1", cmd.Passengers)
	}
	if cmd.CabinClass != CabinEconomy {
		t.Errorf("CabinClass = %q, want %q", cmd.CabinClass, CabinEconomy)
	}
	if cmd.Confidence < CommandConfidenceThreshold {
		t.Errorf("Confidence = %d, want >= %d", cmd.Confidence, CommandConfidenceThreshold)
	}
	if len(cmd.Errors) != 0 {
		t.Errorf("Errors = %v, want empty", cmd.Errors)
	}
}

func TestExtractFlightMissingDestination(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractFlight("buscar voo de São Paulo amanhã")

	if cmd.Destination != "" {
		t.Errorf("Destination = %q, want empty", cmd.Destination)
	}
	if cmd.Confidence >= CommandConfidenceThreshold {
		t.Errorf("Confidence = %d, want < %d", cmd.Confidence, CommandConfidenceThreshold)
	}

	found := false
	for _, e := range cmd.Errors {
		if strings.Contains(e, "destino") {
			found = true
		}
	}
	if !found {
		t.Errorf("Errors = %v, want a destination entry", cmd.Errors)
	}
}

func TestExtractFlightDates(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"hoje", "voar de Recife para Lisboa hoje", "2026-03-01"},
		{"amanha", "voar de Recife para Lisboa amanhã", "2026-03-02"},
		{"depois de amanha", "voar de Recife para Lisboa depois de amanhã", "2026-03-03"},
		{"proxima semana", "voar de Recife para Lisboa próxima semana", "2026-03-08"},
		{"dia de mes", "voar de Recife para Lisboa dia 15 de março", "2026-03-15"},
		{"mes passado rola para o proximo ano", "voar de Recife para Lisboa dia 10 de janeiro", "2027-01-10"},
		{"numerico", "voar de Recife para Lisboa 15/07", "2026-07-15"},
		{"sem data", "voar de Recife para Lisboa", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := p.ExtractFlight(tt.text)
			if cmd.DepartureDate != tt.want {
				t.Errorf("DepartureDate = %q, want %q", cmd.DepartureDate, tt.want)
			}
		})
	}
}

func TestExtractFlightReturnDate(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractFlight("buscar voo de São Paulo para Miami dia 10 de março voltando dia 20 de março")

	if cmd.DepartureDate != "2026-03-10" {
		t.Errorf("DepartureDate = %q, want 2026-03-10", cmd.DepartureDate)
	}
	if cmd.ReturnDate != "2026-03-20" {
		t.Errorf("ReturnDate = %q, want 2026-03-20", cmd.ReturnDate)
	}
}

func TestExtractFlightPassengersAndCabin(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name           string
		text           string
		wantPassengers int
		wantCabin      string
	}{
		{"numeric passengers", "passagem de Curitiba para Miami amanhã para 3 pessoas", 3, CabinEconomy},
		{"written passengers", "voar de Natal para Recife hoje com duas pessoas", 2, CabinEconomy},
		{"business", "buscar voo de São Paulo para Paris amanhã na executiva", 1, CabinBusiness},
		{"first class", "buscar voo de São Paulo para Dubai amanhã em primeira classe", 1, CabinFirst},
		{"defaults", "buscar voo de São Paulo para Miami amanhã", 1, CabinEconomy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := p.ExtractFlight(tt.text)
			if cmd.Passengers != tt.wantPassengers {
				t.Errorf("Passengers = %d, want %d", cmd.Passengers, tt.wantPassengers)
			}
			if cmd.CabinClass != tt.wantCabin {
				t.Errorf("CabinClass = %q, want %q", cmd.CabinClass, tt.wantCabin)
			}
		})
	}
}

// Confidence crosses 50 exactly when origin, destination and departure date
// are all present.
func TestExtractFlightConfidenceThreshold(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name         string
		text         string
		wantRunnable bool
	}{
		{"all fields", "buscar voo de São Paulo para Miami amanhã", true},
		{"all fields with extras", "buscar voo de São Paulo para Miami amanhã para 2 pessoas na executiva", true},
		{"no date", "buscar voo de São Paulo para Miami", false},
		{"no date with extras", "buscar voo de São Paulo para Miami para 4 pessoas na executiva", false},
		{"no origin", "buscar voo para Miami amanhã", false},
		{"nothing", "buscar voo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := p.ExtractFlight(tt.text)
			runnable := cmd.Confidence >= CommandConfidenceThreshold
			if runnable != tt.wantRunnable {
				t.Errorf("Confidence = %d (runnable=%v), want runnable=%v", cmd.Confidence, runnable, tt.wantRunnable)
			}
		})
	}
}
