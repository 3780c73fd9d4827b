package voiceHandler

import (
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/internal/api/voice/session"
	jwtPkg "ProjectViagem/pkg/jwt"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// wsSink adapts a websocket connection to the session's event sink. Writes
// are serialized: the dispatch loop and the close path both send frames.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(event interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(event)
}

func (s *wsSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}

// Stream runs one voice session over a websocket connection.
func (h *VoiceHandler) Stream(conn *websocket.Conn) {
	defer conn.Close()

	userID, err := h.authenticateStream(conn)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Rejected unauthenticated voice stream")
		_ = conn.WriteJSON(voice.StreamEvent{
			Type: voice.EventTypeError,
			Text: "Unauthorized",
		})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &wsSink{conn: conn}
	manager, err := h.voiceService.OpenSession(ctx, userID, sink)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to open voice session")
		_ = sink.Send(voice.StreamEvent{
			Type:   voice.EventTypeError,
			Status: managerStartStatus(err),
			Text:   "Não foi possível iniciar a sessão de voz.",
		})
		return
	}

	for {
		var msg voice.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			manager.Stop(session.ReasonUserStop)
			return
		}

		switch msg.Type {
		case voice.MessageTypeStop:
			manager.Stop(session.ReasonUserStop)
			return

		case voice.MessageTypeTranscript:
			role := session.RoleUser
			if msg.Role == session.RoleAgent {
				role = session.RoleAgent
			}
			if err := manager.HandleMessage(session.Message{Role: role, Text: msg.Text}); err != nil {
				return
			}

		default:
			// Unknown frame types are ignored so protocol additions stay
			// backward compatible.
		}
	}
}

func (h *VoiceHandler) authenticateStream(conn *websocket.Conn) (string, error) {
	token := conn.Query("token")

	parsed, err := jwtPkg.VerifyToken(token, "JWT_ACCESS_TOKEN_SECRET")
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return userID, nil
}

func managerStartStatus(err error) string {
	if errors.Is(err, voice.ErrAgentNotConfigured) || errors.Is(err, session.ErrAgentNotConfigured) {
		return "Agente de voz não configurado"
	}
	return ""
}
