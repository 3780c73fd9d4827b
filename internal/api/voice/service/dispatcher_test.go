package voiceService

import (
	"ProjectViagem/internal/api/radar"
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/internal/api/voice/session"
	voiceRepository "ProjectViagem/internal/api/voice/repository"
	"ProjectViagem/internal/entity"
	"ProjectViagem/pkg/nlp"
	"ProjectViagem/pkg/utils"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type fakeAgent struct {
	answer string
	err    error
}

func (a *fakeAgent) Answer(_ context.Context, _ string) (string, error) {
	return a.answer, a.err
}

func (a *fakeAgent) Close() error { return nil }

type fakeRadarService struct {
	mu      sync.Mutex
	created []radar.CreateRadarRequest
	err     error
}

func (r *fakeRadarService) CreateRadar(_ context.Context, _ string, req radar.CreateRadarRequest) (radar.RadarResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return radar.RadarResponse{}, r.err
	}
	r.created = append(r.created, req)
	return radar.RadarResponse{ID: "radar-1", Origin: req.Origin, Destination: req.Destination}, nil
}

func (r *fakeRadarService) GetRadars(_ context.Context, _ string) (radar.ListRadarsResponse, error) {
	return radar.ListRadarsResponse{}, nil
}

func (r *fakeRadarService) DeleteRadar(_ context.Context, _ string, _ string) error {
	return nil
}

type fakeRedis struct{}

func (fakeRedis) SetActiveSession(_ context.Context, _ string, _ string) error    { return nil }
func (fakeRedis) GetActiveSession(_ context.Context, _ string) (string, error)    { return "", nil }
func (fakeRedis) RefreshActiveSession(_ context.Context, _ string) error          { return nil }
func (fakeRedis) DeleteActiveSession(_ context.Context, _ string, _ string) error { return nil }

type fakeUtterances struct {
	mu      sync.Mutex
	records []entity.VoiceUtterance
}

func (f *fakeUtterances) CreateUtterance(_ context.Context, utterance entity.VoiceUtterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, utterance)
	return nil
}

func (f *fakeUtterances) GetUtterancesByUserID(_ context.Context, _ string, _, _ int) ([]entity.VoiceUtterance, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.VoiceUtterance(nil), f.records...), len(f.records), nil
}

type fakeRouteMappings struct {
	mu          sync.Mutex
	mappings    []entity.RouteMapping
	deactivated []string
}

func (f *fakeRouteMappings) CreateRouteMapping(_ context.Context, mapping entity.RouteMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mappings = append(f.mappings, mapping)
	return nil
}

func (f *fakeRouteMappings) GetRouteMappingByID(_ context.Context, routeID string) (entity.RouteMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.mappings {
		if m.RouteID == routeID {
			return m, nil
		}
	}
	return entity.RouteMapping{}, voice.ErrRouteMappingNotFound
}

func (f *fakeRouteMappings) GetAllRouteMappings(_ context.Context) ([]entity.RouteMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.RouteMapping(nil), f.mappings...), nil
}

func (f *fakeRouteMappings) UpdateRouteMapping(_ context.Context, _ entity.RouteMapping) error {
	return nil
}

func (f *fakeRouteMappings) DeactivateRouteMapping(_ context.Context, routeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deactivated = append(f.deactivated, routeID)
	return nil
}

type fakeRepo struct {
	utterances *fakeUtterances
	routes     *fakeRouteMappings
}

func (f *fakeRepo) NewClient(_ bool) (voiceRepository.Client, error) {
	return voiceRepository.Client{
		Utterances:    f.utterances,
		RouteMappings: f.routes,
		Commit:        func() error { return nil },
		Rollback:      func() error { return nil },
	}, nil
}

type serviceFixture struct {
	service    IVoiceService
	dispatcher session.Dispatcher
	agent      *fakeAgent
	radars     *fakeRadarService
	utterances *fakeUtterances
	routes     *fakeRouteMappings
}

func newServiceFixture(t *testing.T) *serviceFixture {
	return newServiceFixtureWithConfig(t, VoiceConfig{AgentID: "agent-1", InactivityTimeout: time.Minute})
}

func newServiceFixtureWithConfig(t *testing.T, config VoiceConfig) *serviceFixture {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	agent := &fakeAgent{answer: "O radar avisa quando o preço do voo cai."}
	radars := &fakeRadarService{}
	utterances := &fakeUtterances{}
	routes := &fakeRouteMappings{}

	svc := New(
		logger,
		&fakeRepo{utterances: utterances, routes: routes},
		radars,
		nlp.NewProcessor(),
		agent,
		fakeRedis{},
		utils.New(),
		config,
	)

	dispatcher, ok := svc.(session.Dispatcher)
	if !ok {
		t.Fatal("voice service does not implement session.Dispatcher")
	}

	return &serviceFixture{
		service:    svc,
		dispatcher: dispatcher,
		agent:      agent,
		radars:     radars,
		utterances: utterances,
		routes:     routes,
	}
}

func streamEvent(t *testing.T, outcome session.Outcome) voice.StreamEvent {
	t.Helper()
	event, ok := outcome.Event.(voice.StreamEvent)
	if !ok {
		t.Fatalf("outcome event is %T, want voice.StreamEvent", outcome.Event)
	}
	return event
}

func TestDispatchCompleteFlightCommandNavigates(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "buscar voo de São Paulo para o Rio de Janeiro amanhã")

	if outcome.Kind != session.OutcomeExecuted {
		t.Fatalf("Kind = %q, want executed", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Type != voice.EventTypeNavigate {
		t.Errorf("event type = %q, want navigate", event.Type)
	}
	if event.Target != "/busca-voos" {
		t.Errorf("target = %q, want /busca-voos", event.Target)
	}
	if event.Params["origin"] != "São Paulo" || event.Params["destination"] != "Rio de Janeiro" {
		t.Errorf("route params = %v", event.Params)
	}
	if event.Params["departure_date"] == "" {
		t.Error("departure_date param missing")
	}
	if outcome.DisconnectAfter != 500*time.Millisecond {
		t.Errorf("DisconnectAfter = %v, want 500ms", outcome.DisconnectAfter)
	}
}

func TestDispatchIncompleteFlightCommandOpensForm(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "buscar voo para o Rio de Janeiro")

	if outcome.Kind != session.OutcomeForm {
		t.Fatalf("Kind = %q, want form", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Type != voice.EventTypeForm {
		t.Errorf("event type = %q, want form", event.Type)
	}
	if event.Params["destination"] != "Rio de Janeiro" {
		t.Errorf("destination param = %q", event.Params["destination"])
	}
	if _, ok := event.Params["origin"]; ok {
		t.Error("origin param should be absent")
	}
	if outcome.DisconnectAfter != 1500*time.Millisecond {
		t.Errorf("DisconnectAfter = %v, want 1.5s", outcome.DisconnectAfter)
	}
}

func TestDispatchRadarCreateExecutes(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "criar um radar de Recife para Lisboa")

	if outcome.Kind != session.OutcomeExecuted {
		t.Fatalf("Kind = %q, want executed", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Target != "/radar" {
		t.Errorf("target = %q, want /radar", event.Target)
	}
	if len(f.radars.created) != 1 {
		t.Fatalf("created %d radars, want 1", len(f.radars.created))
	}
	created := f.radars.created[0]
	if created.Origin != "Recife" || created.Destination != "Lisboa" {
		t.Errorf("created radar %+v", created)
	}
	if outcome.DisconnectAfter != 1500*time.Millisecond {
		t.Errorf("DisconnectAfter = %v, want 1.5s", outcome.DisconnectAfter)
	}
}

func TestDispatchRadarCreateFailureReportsError(t *testing.T) {
	f := newServiceFixture(t)
	f.radars.err = errors.New("storage down")

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "criar um radar de Recife para Lisboa")

	if outcome.Kind != session.OutcomeFailed {
		t.Fatalf("Kind = %q, want failed", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Type != voice.EventTypeError {
		t.Errorf("event type = %q, want error", event.Type)
	}
	if outcome.DisconnectAfter != 2*time.Second {
		t.Errorf("DisconnectAfter = %v, want 2s", outcome.DisconnectAfter)
	}
}

func TestDispatchLowConfidenceRadarOpensForm(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "criar um radar para Lisboa")

	if outcome.Kind != session.OutcomeForm {
		t.Fatalf("Kind = %q, want form", outcome.Kind)
	}
	if len(f.radars.created) != 0 {
		t.Errorf("created %d radars, want none", len(f.radars.created))
	}
}

func TestDispatchQuestionKeepsSessionOpen(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "como funciona o radar de preços?")

	if outcome.Kind != session.OutcomeAnswer {
		t.Fatalf("Kind = %q, want answer", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Type != voice.EventTypeAnswer {
		t.Errorf("event type = %q, want answer", event.Type)
	}
	if event.Text != f.agent.answer {
		t.Errorf("answer = %q", event.Text)
	}
	if outcome.DisconnectAfter != 0 {
		t.Errorf("DisconnectAfter = %v, want 0 (keep open)", outcome.DisconnectAfter)
	}
}

func TestDispatchAgentFailureKeepsSessionOpen(t *testing.T) {
	f := newServiceFixture(t)
	f.agent.err = errors.New("agent down")

	outcome := f.dispatcher.Dispatch(context.Background(),
		"user-1", "qual o melhor mês para viajar?")

	if outcome.Kind != session.OutcomeFailed {
		t.Fatalf("Kind = %q, want failed", outcome.Kind)
	}
	if outcome.DisconnectAfter != 0 {
		t.Errorf("DisconnectAfter = %v, want 0 (keep open)", outcome.DisconnectAfter)
	}
}

func TestDispatchNavigateCommand(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(), "user-1", "ir para o perfil")

	if outcome.Kind != session.OutcomeNavigate {
		t.Fatalf("Kind = %q, want navigate", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Target != "/perfil" {
		t.Errorf("target = %q, want /perfil", event.Target)
	}
	if outcome.DisconnectAfter != 500*time.Millisecond {
		t.Errorf("DisconnectAfter = %v, want 500ms", outcome.DisconnectAfter)
	}
}

func TestDispatchBackCommand(t *testing.T) {
	f := newServiceFixture(t)

	outcome := f.dispatcher.Dispatch(context.Background(), "user-1", "voltar")

	if outcome.Kind != session.OutcomeNavigate {
		t.Fatalf("Kind = %q, want navigate", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Target != "back" {
		t.Errorf("target = %q, want back", event.Target)
	}
}

func TestDispatchRecordsUtteranceHistory(t *testing.T) {
	f := newServiceFixture(t)

	f.dispatcher.Dispatch(context.Background(), "user-1", "abrir o radar")

	f.utterances.mu.Lock()
	defer f.utterances.mu.Unlock()
	if len(f.utterances.records) != 1 {
		t.Fatalf("recorded %d utterances, want 1", len(f.utterances.records))
	}
	record := f.utterances.records[0]
	if record.UserID != "user-1" {
		t.Errorf("user id = %q", record.UserID)
	}
	if record.Intent != string(nlp.IntentRadarOpen) {
		t.Errorf("intent = %q, want radar_open", record.Intent)
	}
}

func TestInterpretFlightTranscript(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Interpret(context.Background(), "user-1", voice.InterpretRequest{
		Transcript: "buscar voo de São Paulo para Lisboa amanhã",
	})
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}

	if resp.Intent != string(nlp.IntentFlightSearch) {
		t.Errorf("intent = %q, want flight_search", resp.Intent)
	}
	if resp.Flight == nil {
		t.Fatal("flight payload missing")
	}
	if resp.Flight.Origin != "São Paulo" || resp.Flight.Destination != "Lisboa" {
		t.Errorf("flight = %+v", resp.Flight)
	}
	if resp.Confidence < nlp.CommandConfidenceThreshold {
		t.Errorf("confidence = %d, want >= %d", resp.Confidence, nlp.CommandConfidenceThreshold)
	}
}

func TestInterpretRejectsEmptyTranscript(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Interpret(context.Background(), "user-1", voice.InterpretRequest{
		Transcript: "   ",
	})
	if !errors.Is(err, voice.ErrEmptyTranscript) {
		t.Errorf("err = %v, want ErrEmptyTranscript", err)
	}
}

func TestOpenSessionRequiresAgentConfig(t *testing.T) {
	f := newServiceFixtureWithConfig(t, VoiceConfig{InactivityTimeout: time.Minute})

	_, err := f.service.OpenSession(context.Background(), "user-1", nil)
	if !errors.Is(err, voice.ErrAgentNotConfigured) {
		t.Errorf("err = %v, want ErrAgentNotConfigured", err)
	}
}

func TestSyncRouteMappingsHydratesMatcher(t *testing.T) {
	f := newServiceFixture(t)
	f.routes.mappings = []entity.RouteMapping{
		{
			RouteID:     "promotions",
			Path:        "/promocoes",
			DisplayName: "Promoções",
			Keywords:    pq.StringArray{"promoções", "ofertas"},
			IsActive:    true,
		},
	}

	if err := f.service.SyncRouteMappings(context.Background()); err != nil {
		t.Fatalf("SyncRouteMappings: %v", err)
	}

	outcome := f.dispatcher.Dispatch(context.Background(), "user-1", "ir para promoções")
	if outcome.Kind != session.OutcomeNavigate {
		t.Fatalf("Kind = %q, want navigate", outcome.Kind)
	}
	event := streamEvent(t, outcome)
	if event.Target != "/promocoes" {
		t.Errorf("target = %q, want /promocoes", event.Target)
	}
}

func TestDeleteRouteMappingStopsMatching(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.CreateRouteMapping(context.Background(), voice.RouteMappingRequest{
		RouteID:     "promotions",
		Path:        "/promocoes",
		DisplayName: "Promoções",
		Keywords:    []string{"promoções"},
	})
	if err != nil {
		t.Fatalf("CreateRouteMapping: %v", err)
	}

	if err := f.service.DeleteRouteMapping(context.Background(), "promotions"); err != nil {
		t.Fatalf("DeleteRouteMapping: %v", err)
	}

	f.routes.mu.Lock()
	deactivated := append([]string(nil), f.routes.deactivated...)
	f.routes.mu.Unlock()
	if len(deactivated) != 1 || deactivated[0] != "promotions" {
		t.Errorf("deactivated = %v, want [promotions]", deactivated)
	}

	outcome := f.dispatcher.Dispatch(context.Background(), "user-1", "ir para promoções")
	if outcome.Kind == session.OutcomeNavigate {
		t.Errorf("deleted route still navigates: %+v", outcome)
	}
}
