package voiceService

import (
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/internal/api/voice/session"
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"ProjectViagem/pkg/nlp"
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// OpenSession starts a new voice session for the user. A user holds at most
// one live session: starting a second one replaces the first, both locally
// and in the cross-instance registry.
func (s *voiceService) OpenSession(ctx context.Context, userID string, sink session.Sink) (*session.Manager, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.config.AgentID == "" {
		return nil, voice.ErrAgentNotConfigured
	}

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing, ok := s.sessions[userID]; ok {
		existing.Stop(session.ReasonReplaced)
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	manager := session.NewManager(s.log, s, sink, userID, sessionID, session.Config{
		AgentID:           s.config.AgentID,
		InactivityTimeout: s.config.InactivityTimeout,
	})

	if err := manager.Start(ctx); err != nil {
		return nil, err
	}

	if err := s.redis.SetActiveSession(ctx, userID, sessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Failed to register session, continuing locally")
	}

	s.mu.Lock()
	s.sessions[userID] = manager
	s.mu.Unlock()

	go func() {
		<-manager.Done()

		s.mu.Lock()
		if s.sessions[userID] == manager {
			delete(s.sessions, userID)
		}
		s.mu.Unlock()

		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.redis.DeleteActiveSession(cleanupCtx, userID, sessionID); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id":    userID,
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to release session registration")
		}
	}()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("Voice session opened")

	return manager, nil
}

// Interpret classifies a transcript without running a session. It powers the
// REST endpoint used for debugging and for clients without websocket support.
func (s *voiceService) Interpret(ctx context.Context, userID string, req voice.InterpretRequest) (voice.InterpretResponse, error) {
	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return voice.InterpretResponse{}, voice.ErrEmptyTranscript
	}

	classification := s.processor.Classify(transcript)

	resp := voice.InterpretResponse{
		Transcript: transcript,
		Intent:     string(classification.Intent),
	}

	switch classification.Intent {
	case nlp.IntentFlightSearch:
		cmd := s.processor.ExtractFlight(transcript)
		resp.Confidence = cmd.Confidence
		resp.Flight = &voice.FlightCommandData{
			Origin:        cmd.Origin,
			Destination:   cmd.Destination,
			DepartureDate: cmd.DepartureDate,
			ReturnDate:    cmd.ReturnDate,
			Passengers:    cmd.Passengers,
			CabinClass:    cmd.CabinClass,
			Errors:        cmd.Errors,
		}

	case nlp.IntentRadarCreate:
		cmd := s.processor.ExtractRadar(transcript)
		resp.Confidence = cmd.Confidence
		resp.Radar = &voice.RadarCommandData{
			Origin:      cmd.Origin,
			Destination: cmd.Destination,
			StartDate:   cmd.StartDate,
			EndDate:     cmd.EndDate,
			TargetValue: cmd.TargetValue,
			MonitorType: cmd.MonitorType,
			Errors:      cmd.Errors,
		}

	case nlp.IntentNavigate:
		resp.Route = &voice.RouteData{
			RouteID:     classification.RouteID,
			Path:        classification.RoutePath,
			DisplayName: classification.RouteDisplayName,
		}
	}

	s.recordUtterance(ctx, userID, transcript, string(classification.Intent), resp.Confidence, "interpreted")

	return resp, nil
}

func (s *voiceService) GetHistory(ctx context.Context, userID string, limit, offset int) (voice.HistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return voice.HistoryResponse{}, err
	}

	utterances, total, err := repo.Utterances.GetUtterancesByUserID(ctx, userID, limit, offset)
	if err != nil {
		return voice.HistoryResponse{}, err
	}

	resp := voice.HistoryResponse{
		Utterances: make([]voice.UtteranceResponse, 0, len(utterances)),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
	for _, u := range utterances {
		resp.Utterances = append(resp.Utterances, voice.UtteranceResponse{
			ID:         u.ID,
			SessionID:  u.SessionID,
			Transcript: u.Transcript,
			Intent:     u.Intent,
			Confidence: u.Confidence,
			Outcome:    u.Outcome,
			CreatedAt:  u.CreatedAt,
		})
	}

	return resp, nil
}

// SyncRouteMappings loads the active route catalog from the database into
// the in-memory matcher. It runs at startup so routes created through the
// API survive restarts.
func (s *voiceService) SyncRouteMappings(ctx context.Context) error {
	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return err
	}

	mappings, err := repo.RouteMappings.GetAllRouteMappings(ctx)
	if err != nil {
		return err
	}

	for _, m := range mappings {
		if err := s.processor.AddRouteMapping(m.RouteID, nlp.RouteMappingData{
			RouteID:     m.RouteID,
			Path:        m.Path,
			DisplayName: m.DisplayName,
			Keywords:    []string(m.Keywords),
		}); err != nil {
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"count": len(mappings),
	}).Info("Route mappings loaded into matcher")

	return nil
}

func (s *voiceService) GetRouteMappings(ctx context.Context) ([]voice.RouteMappingResponse, error) {
	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	mappings, err := repo.RouteMappings.GetAllRouteMappings(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]voice.RouteMappingResponse, 0, len(mappings))
	for _, m := range mappings {
		resp = append(resp, voice.RouteMappingResponse{
			RouteID:     m.RouteID,
			Path:        m.Path,
			DisplayName: m.DisplayName,
			Keywords:    []string(m.Keywords),
			IsActive:    m.IsActive,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}

	return resp, nil
}

func (s *voiceService) CreateRouteMapping(ctx context.Context, req voice.RouteMappingRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.voiceRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	now := time.Now().UTC()
	mapping := entity.RouteMapping{
		RouteID:     req.RouteID,
		Path:        req.Path,
		DisplayName: req.DisplayName,
		Keywords:    req.Keywords,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.RouteMappings.CreateRouteMapping(ctx, mapping); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	// Keep the in-memory matcher in sync so the new route is usable without
	// a restart.
	if err := s.processor.AddRouteMapping(req.RouteID, nlp.RouteMappingData{
		RouteID:     req.RouteID,
		Path:        req.Path,
		DisplayName: req.DisplayName,
		Keywords:    req.Keywords,
	}); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"route_id":   req.RouteID,
			"error":      err.Error(),
		}).Warn("Failed to sync route mapping into matcher")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"route_id":   req.RouteID,
	}).Info("Route mapping created")

	return nil
}

func (s *voiceService) UpdateRouteMapping(ctx context.Context, routeID string, req voice.RouteMappingRequest) error {
	repo, err := s.voiceRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	if _, err := repo.RouteMappings.GetRouteMappingByID(ctx, routeID); err != nil {
		return err
	}

	mapping := entity.RouteMapping{
		RouteID:     routeID,
		Path:        req.Path,
		DisplayName: req.DisplayName,
		Keywords:    req.Keywords,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := repo.RouteMappings.UpdateRouteMapping(ctx, mapping); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	if err := s.processor.AddRouteMapping(routeID, nlp.RouteMappingData{
		RouteID:     routeID,
		Path:        req.Path,
		DisplayName: req.DisplayName,
		Keywords:    req.Keywords,
	}); err != nil {
		s.log.WithFields(logrus.Fields{
			"route_id": routeID,
			"error":    err.Error(),
		}).Warn("Failed to sync route mapping into matcher")
	}

	return nil
}

func (s *voiceService) DeleteRouteMapping(ctx context.Context, routeID string) error {
	repo, err := s.voiceRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	if err := repo.RouteMappings.DeactivateRouteMapping(ctx, routeID); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	// Deactivated routes must stop matching immediately, not on next restart.
	s.processor.RemoveRouteMapping(routeID)

	return nil
}
