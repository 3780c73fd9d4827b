package nlp

import (
	"strings"
	"testing"
)

func TestExtractRadarOriginDestinationOnly(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractRadar("criar radar de Brasília para Miami")

	if cmd.Origin != "Brasília" {
		t.Errorf("Origin = %q, want Brasília", cmd.Origin)
	}
	if cmd.Destination != "Miami" {
		t.Errorf("Destination = %q, want Miami", cmd.Destination)
	}
	if cmd.MonitorType != MonitorTypeCurrency {
		t.Errorf("MonitorType = %q, want default %q", cmd.MonitorType, MonitorTypeCurrency)
	}
	if cmd.TargetValue != nil {
		t.Errorf("TargetValue = %v, want nil", *cmd.TargetValue)
	}
	if cmd.Confidence < CommandConfidenceThreshold {
		t.Errorf("Confidence = %d, want >= %d without dates or value", cmd.Confidence, CommandConfidenceThreshold)
	}
	if len(cmd.Errors) != 0 {
		t.Errorf("Errors = %v, want empty", cmd.Errors)
	}
}

func TestExtractRadarTargetValue(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name     string
		text     string
		want     float64
		wantType string
	}{
		{"currency symbol", "criar radar de São Paulo para Lisboa abaixo de R$ 2.500", 2500, MonitorTypeCurrency},
		{"reais word", "criar radar de São Paulo para Lisboa por 1500 reais", 1500, MonitorTypeCurrency},
		{"mil reais", "criar radar de São Paulo para Lisboa até 2 mil reais", 2000, MonitorTypeCurrency},
		{"mileage", "monitorar voo de Recife para Miami por 50 mil milhas", 50000, MonitorTypeMileage},
		{"points", "criar radar de Curitiba para Orlando por 80000 pontos", 80000, MonitorTypeMileage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := p.ExtractRadar(tt.text)
			if cmd.TargetValue == nil {
				t.Fatalf("TargetValue = nil, want %v", tt.want)
			}
			if *cmd.TargetValue != tt.want {
				t.Errorf("TargetValue = %v, want %v", *cmd.TargetValue, tt.want)
			}
			if cmd.MonitorType != tt.wantType {
				t.Errorf("MonitorType = %q, want %q", cmd.MonitorType, tt.wantType)
			}
		})
	}
}

func TestExtractRadarDateBounds(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractRadar("criar radar de Salvador para Lisboa entre dia 10 de maio e dia 25 de maio")

	if cmd.StartDate != "2026-05-10" {
		t.Errorf("StartDate = %q, want 2026-05-10", cmd.StartDate)
	}
	if cmd.EndDate != "2026-05-25" {
		t.Errorf("EndDate = %q, want 2026-05-25", cmd.EndDate)
	}
	if cmd.Confidence < CommandConfidenceThreshold {
		t.Errorf("Confidence = %d, want >= %d", cmd.Confidence, CommandConfidenceThreshold)
	}
}

func TestExtractRadarMissingDestination(t *testing.T) {
	p := newTestProcessor()

	cmd := p.ExtractRadar("criar radar de Salvador")

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

// Optional fields can only raise confidence, never push a resolved pair below
// the threshold.
func TestExtractRadarOptionalFieldsNeverLowerConfidence(t *testing.T) {
	p := newTestProcessor()

	base := p.ExtractRadar("criar radar de Brasília para Miami")
	withExtras := p.ExtractRadar("criar radar de Brasília para Miami até 2 mil reais a partir do dia 10 de maio")

	if withExtras.Confidence < base.Confidence {
		t.Errorf("extras lowered confidence: %d < %d", withExtras.Confidence, base.Confidence)
	}
}
