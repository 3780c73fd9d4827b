package voiceService

import (
	"ProjectViagem/internal/api/radar"
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/internal/api/voice/session"
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"ProjectViagem/pkg/nlp"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Delays before a session closes itself after a terminal outcome. Navigation
// closes fast; outcomes the user should read first hold the session a bit
// longer, and errors longest.
const (
	disconnectAfterNavigate = 500 * time.Millisecond
	disconnectAfterNotice   = 1500 * time.Millisecond
	disconnectAfterError    = 2 * time.Second
)

const (
	outcomeAnswered      = "answered"
	outcomeNavigated     = "navigated"
	outcomeFormPrefilled = "form_prefilled"
	outcomeRadarCreated  = "radar_created"
	outcomeFailed        = "failed"
)

// Dispatch interprets one transcript and decides what the session does next.
// It implements session.Dispatcher and runs inside the session's dispatch
// loop, so one transcript is fully handled before the next is read.
func (s *voiceService) Dispatch(ctx context.Context, userID string, transcript string) session.Outcome {
	classification := s.processor.Classify(transcript)

	var outcome session.Outcome
	var confidence int
	var recorded string

	switch classification.Intent {
	case nlp.IntentQuestion, nlp.IntentUnrecognized:
		outcome = s.dispatchQuestion(ctx, transcript)
		recorded = outcomeAnswered
		if outcome.Kind == session.OutcomeFailed {
			recorded = outcomeFailed
		}

	case nlp.IntentFlightSearch:
		cmd := s.processor.ExtractFlight(transcript)
		confidence = cmd.Confidence
		outcome, recorded = s.dispatchFlight(cmd)

	case nlp.IntentRadarCreate:
		cmd := s.processor.ExtractRadar(transcript)
		confidence = cmd.Confidence
		outcome, recorded = s.dispatchRadarCreate(ctx, userID, cmd)

	case nlp.IntentRadarOpen, nlp.IntentRadarDelete:
		outcome = navigateOutcome("/radar", nil)
		recorded = outcomeNavigated

	case nlp.IntentNavigate:
		outcome = navigateOutcome(classification.RoutePath, nil)
		recorded = outcomeNavigated

	case nlp.IntentBack:
		outcome = session.Outcome{
			Kind:            session.OutcomeNavigate,
			Status:          "Comando executado",
			Event:           voice.StreamEvent{Type: voice.EventTypeNavigate, Target: "back"},
			DisconnectAfter: disconnectAfterNavigate,
		}
		recorded = outcomeNavigated
	}

	s.recordUtterance(ctx, userID, transcript, string(classification.Intent), confidence, recorded)

	return outcome
}

func (s *voiceService) dispatchQuestion(ctx context.Context, transcript string) session.Outcome {
	answer, err := s.agent.Answer(ctx, transcript)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Voice agent failed to answer")
		return session.Outcome{
			Kind:   session.OutcomeFailed,
			Status: session.StatusListening,
			Event: voice.StreamEvent{
				Type: voice.EventTypeError,
				Text: "Não consegui responder agora. Tente novamente.",
			},
		}
	}

	// Answers keep the session open so the user can follow up.
	return session.Outcome{
		Kind:   session.OutcomeAnswer,
		Status: session.StatusListening,
		Event:  voice.StreamEvent{Type: voice.EventTypeAnswer, Text: answer},
	}
}

func (s *voiceService) dispatchFlight(cmd *nlp.FlightCommand) (session.Outcome, string) {
	params := flightParams(cmd)

	if cmd.Confidence >= nlp.CommandConfidenceThreshold {
		return session.Outcome{
			Kind:   session.OutcomeExecuted,
			Status: "Comando executado",
			Event: voice.StreamEvent{
				Type:       voice.EventTypeNavigate,
				Target:     "/busca-voos",
				Params:     params,
				Intent:     string(nlp.IntentFlightSearch),
				Confidence: cmd.Confidence,
			},
			DisconnectAfter: disconnectAfterNavigate,
		}, outcomeNavigated
	}

	// Incomplete command: open the search form with what was understood and
	// let the user finish by hand.
	return session.Outcome{
		Kind:   session.OutcomeForm,
		Status: "Complete os campos restantes",
		Event: voice.StreamEvent{
			Type:       voice.EventTypeForm,
			Target:     "/busca-voos",
			Text:       "Não entendi todos os dados do voo. Preenchi o que consegui.",
			Params:     params,
			Intent:     string(nlp.IntentFlightSearch),
			Confidence: cmd.Confidence,
		},
		DisconnectAfter: disconnectAfterNotice,
	}, outcomeFormPrefilled
}

func (s *voiceService) dispatchRadarCreate(ctx context.Context, userID string, cmd *nlp.RadarCommand) (session.Outcome, string) {
	params := radarParams(cmd)

	if cmd.Confidence < nlp.CommandConfidenceThreshold {
		return session.Outcome{
			Kind:   session.OutcomeForm,
			Status: "Complete os campos restantes",
			Event: voice.StreamEvent{
				Type:       voice.EventTypeForm,
				Target:     "/radar",
				Text:       "Não entendi todos os dados do radar. Preenchi o que consegui.",
				Params:     params,
				Intent:     string(nlp.IntentRadarCreate),
				Confidence: cmd.Confidence,
			},
			DisconnectAfter: disconnectAfterNotice,
		}, outcomeFormPrefilled
	}

	req := radar.CreateRadarRequest{
		Origin:      cmd.Origin,
		Destination: cmd.Destination,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		TargetValue: cmd.TargetValue,
		MonitorType: cmd.MonitorType,
	}

	if _, err := s.radarService.CreateRadar(ctx, userID, req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create radar from voice command")
		return session.Outcome{
			Kind:   session.OutcomeFailed,
			Status: "Não foi possível criar o radar",
			Event: voice.StreamEvent{
				Type: voice.EventTypeError,
				Text: "Não foi possível criar o radar. Tente novamente pela tela de radar.",
			},
			DisconnectAfter: disconnectAfterError,
		}, outcomeFailed
	}

	return session.Outcome{
		Kind:   session.OutcomeExecuted,
		Status: "Radar criado",
		Event: voice.StreamEvent{
			Type:       voice.EventTypeNavigate,
			Target:     "/radar",
			Text:       "Radar criado com sucesso.",
			Params:     params,
			Intent:     string(nlp.IntentRadarCreate),
			Confidence: cmd.Confidence,
		},
		DisconnectAfter: disconnectAfterNotice,
	}, outcomeRadarCreated
}

func navigateOutcome(path string, params map[string]string) session.Outcome {
	return session.Outcome{
		Kind:   session.OutcomeNavigate,
		Status: "Comando executado",
		Event: voice.StreamEvent{
			Type:   voice.EventTypeNavigate,
			Target: path,
			Params: params,
		},
		DisconnectAfter: disconnectAfterNavigate,
	}
}

func flightParams(cmd *nlp.FlightCommand) map[string]string {
	params := make(map[string]string)
	if cmd.Origin != "" {
		params["origin"] = cmd.Origin
	}
	if cmd.Destination != "" {
		params["destination"] = cmd.Destination
	}
	if cmd.DepartureDate != "" {
		params["departure_date"] = cmd.DepartureDate
	}
	if cmd.ReturnDate != "" {
		params["return_date"] = cmd.ReturnDate
	}
	if cmd.Passengers > 0 {
		params["passengers"] = itoa(cmd.Passengers)
	}
	if cmd.CabinClass != "" {
		params["cabin_class"] = cmd.CabinClass
	}
	return params
}

func radarParams(cmd *nlp.RadarCommand) map[string]string {
	params := make(map[string]string)
	if cmd.Origin != "" {
		params["origin"] = cmd.Origin
	}
	if cmd.Destination != "" {
		params["destination"] = cmd.Destination
	}
	if cmd.StartDate != "" {
		params["start_date"] = cmd.StartDate
	}
	if cmd.EndDate != "" {
		params["end_date"] = cmd.EndDate
	}
	if cmd.TargetValue != nil {
		params["target_value"] = formatFloat(*cmd.TargetValue)
	}
	if cmd.MonitorType != "" {
		params["monitor_type"] = cmd.MonitorType
	}
	return params
}

func (s *voiceService) recordUtterance(ctx context.Context, userID, transcript, intent string, confidence int, outcome string) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return
	}

	utterance := entity.VoiceUtterance{
		ID:         id,
		UserID:     userID,
		SessionID:  contextPkg.GetSessionID(ctx),
		Transcript: transcript,
		Intent:     intent,
		Confidence: confidence,
		Outcome:    outcome,
		CreatedAt:  time.Now().UTC(),
	}

	// History is best effort; a storage failure must not break the session.
	if err := repo.Utterances.CreateUtterance(ctx, utterance); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Failed to record voice utterance")
	}
}
