package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State string

const (
	StateDisconnected  State = "disconnected"
	StateConnecting    State = "connecting"
	StateListening     State = "listening"
	StateDisconnecting State = "disconnecting"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

type DisconnectReason string

const (
	ReasonUserStop   DisconnectReason = "user_stop"
	ReasonCommand    DisconnectReason = "command"
	ReasonInactivity DisconnectReason = "inactivity"
	ReasonReplaced   DisconnectReason = "replaced"
)

const (
	StatusConnecting   = "Conectando..."
	StatusListening    = "Ouvindo..."
	StatusDisconnected = "Desconectado"
)

const DefaultInactivityTimeout = 60 * time.Second

var (
	ErrAgentNotConfigured = errors.New("voice agent id not configured")
	ErrAlreadyStarted     = errors.New("session already started")
	ErrNotListening       = errors.New("session is not listening")
)

type Message struct {
	Role       string
	Text       string
	ReceivedAt time.Time
}

type OutcomeKind string

const (
	OutcomeNone     OutcomeKind = "none"
	OutcomeAnswer   OutcomeKind = "answer"
	OutcomeNavigate OutcomeKind = "navigate"
	OutcomeForm     OutcomeKind = "form"
	OutcomeExecuted OutcomeKind = "executed"
	OutcomeFailed   OutcomeKind = "failed"
)

// Outcome is what the dispatcher decided for one utterance. A zero
// DisconnectAfter keeps the session open (questions, ordinary conversation).
type Outcome struct {
	Kind            OutcomeKind
	Status          string
	Event           interface{}
	DisconnectAfter time.Duration
}

type Dispatcher interface {
	Dispatch(ctx context.Context, userID, transcript string) Outcome
}

// Sink is the write side of the client connection. Close ends the underlying
// voice session.
type Sink interface {
	Send(event interface{}) error
	Close() error
}

type Config struct {
	AgentID           string
	InactivityTimeout time.Duration
	QueueSize         int
}

// Manager owns one voice session: its state, its message counter, the single
// live inactivity timer and the pending post-command disconnect. All inbound
// messages funnel through one dispatch loop, so timer resets are ordered with
// message receipt and cannot race.
type Manager struct {
	log        *logrus.Logger
	dispatcher Dispatcher
	sink       Sink
	cfg        Config
	userID     string
	sessionID  string

	mu                sync.Mutex
	state             State
	status            string
	messageCount      int
	inactivity        *time.Timer
	pendingDisconnect *time.Timer
	reason            DisconnectReason

	messages chan Message
	done     chan struct{}
	stopOnce sync.Once
}

func NewManager(
	log *logrus.Logger,
	dispatcher Dispatcher,
	sink Sink,
	userID string,
	sessionID string,
	cfg Config,
) *Manager {
	if cfg.InactivityTimeout <= 0 {
		cfg.InactivityTimeout = DefaultInactivityTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}

	return &Manager{
		log:        log,
		dispatcher: dispatcher,
		sink:       sink,
		cfg:        cfg,
		userID:     userID,
		sessionID:  sessionID,
		state:      StateDisconnected,
		status:     StatusDisconnected,
		messages:   make(chan Message, cfg.QueueSize),
		done:       make(chan struct{}),
	}
}

// Start performs the handshake and moves the session into Listening. A missing
// agent id is a hard precondition failure: the state stays Disconnected and no
// retry happens here.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateDisconnected {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	if m.cfg.AgentID == "" {
		m.status = "Agente de voz não configurado"
		m.mu.Unlock()
		return ErrAgentNotConfigured
	}

	m.state = StateConnecting
	m.status = StatusConnecting
	m.messageCount = 0
	m.mu.Unlock()

	if err := m.sink.Send(statusEvent(StatusConnecting)); err != nil {
		m.mu.Lock()
		m.state = StateDisconnected
		m.status = "Falha ao conectar"
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.state = StateListening
	m.status = StatusListening
	m.inactivity = time.AfterFunc(m.cfg.InactivityTimeout, func() {
		m.Stop(ReasonInactivity)
	})
	m.mu.Unlock()

	if err := m.sink.Send(statusEvent(StatusListening)); err != nil {
		m.Stop(ReasonUserStop)
		return err
	}

	m.log.WithFields(logrus.Fields{
		"session_id": m.sessionID,
		"user_id":    m.userID,
	}).Info("Voice session listening")

	go m.run(ctx)
	return nil
}

// HandleMessage enqueues an inbound transcript for the dispatch loop.
func (m *Manager) HandleMessage(msg Message) error {
	m.mu.Lock()
	listening := m.state == StateListening
	m.mu.Unlock()
	if !listening {
		return ErrNotListening
	}

	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	select {
	case m.messages <- msg:
		return nil
	case <-m.done:
		return ErrNotListening
	}
}

func (m *Manager) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.Stop(ReasonUserStop)
			return
		case <-m.done:
			return
		case msg := <-m.messages:
			m.touch()
			if msg.Role != RoleUser {
				continue
			}
			outcome := m.dispatcher.Dispatch(ctx, m.userID, msg.Text)
			m.apply(outcome)
		}
	}
}

// touch counts the message and reschedules the inactivity timer. There is at
// most one live timer per session: the previous one is always stopped first.
func (m *Manager) touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messageCount++
	if m.inactivity != nil {
		m.inactivity.Stop()
		m.inactivity.Reset(m.cfg.InactivityTimeout)
	}
}

func (m *Manager) apply(outcome Outcome) {
	if outcome.Event != nil {
		if err := m.sink.Send(outcome.Event); err != nil {
			m.log.WithFields(logrus.Fields{
				"session_id": m.sessionID,
				"error":      err.Error(),
			}).Warn("Failed to deliver session event")
		}
	}

	m.mu.Lock()
	if outcome.Status != "" {
		m.status = outcome.Status
	}
	if outcome.DisconnectAfter > 0 {
		if m.pendingDisconnect != nil {
			m.pendingDisconnect.Stop()
		}
		m.pendingDisconnect = time.AfterFunc(outcome.DisconnectAfter, func() {
			m.Stop(ReasonCommand)
		})
	}
	m.mu.Unlock()
}

// Stop tears the session down. Explicit user stop, post-command disconnect
// and the inactivity timeout all converge here; calling it more than once is
// harmless.
func (m *Manager) Stop(reason DisconnectReason) {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		m.state = StateDisconnecting
		m.reason = reason
		messageCount := m.messageCount
		if m.inactivity != nil {
			m.inactivity.Stop()
		}
		if m.pendingDisconnect != nil {
			m.pendingDisconnect.Stop()
		}
		m.mu.Unlock()

		close(m.done)

		if err := m.sink.Close(); err != nil {
			m.log.WithFields(logrus.Fields{
				"session_id": m.sessionID,
				"error":      err.Error(),
			}).Debug("Session sink close")
		}

		m.mu.Lock()
		m.state = StateDisconnected
		m.status = StatusDisconnected
		m.mu.Unlock()

		m.log.WithFields(logrus.Fields{
			"session_id": m.sessionID,
			"user_id":    m.userID,
			"reason":     string(reason),
			"messages":   messageCount,
		}).Info("Voice session closed")
	})
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messageCount
}

func (m *Manager) SessionID() string {
	return m.sessionID
}

// Done is closed once teardown begins.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

func (m *Manager) Reason() DisconnectReason {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

func statusEvent(status string) interface{} {
	return map[string]interface{}{
		"type":   "status",
		"status": status,
	}
}
