package gesture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotAttached is returned when a frame targets an object with no session.
var ErrNotAttached = errors.New("gesture: target not attached")

// Session binds one Detector to one Target. Events from the detector are
// applied to the target by the manager's Handler before any other listener
// registered through On sees them.
type Session struct {
	ID       uuid.UUID
	target   Target
	detector *Detector
}

// Target returns the object this session transforms.
func (s *Session) Target() Target {
	return s.target
}

// Detector returns the session's state machine.
func (s *Session) Detector() *Detector {
	return s.detector
}

// On registers an extra listener on the session's detector.
func (s *Session) On(fn func(Event)) ListenerHandle {
	return s.detector.On(fn)
}

// Manager owns the sessions of all attached targets. Targets are used as map
// keys and must be comparable, which in practice means pointers.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	viewport Viewport
	handler  *Handler
	sessions map[Target]*Session
	opts     []Option
	log      *zap.Logger
}

// NewManager creates a manager that applies events with a Handler built from cfg.
func NewManager(vp Viewport, cfg Config, opts ...Option) *Manager {
	o := buildOptions(opts)
	return &Manager{
		viewport: vp,
		handler:  NewHandler(cfg, opts...),
		sessions: make(map[Target]*Session),
		opts:     opts,
		log:      o.log,
	}
}

// Handler returns the handler shared by all sessions.
func (m *Manager) Handler() *Handler {
	return m.handler
}

// Attach prepares the target and creates its session. Attaching a target
// twice returns the existing session unchanged.
func (m *Manager) Attach(t Target) *Session {
	if s, ok := m.sessions[t]; ok {
		return s
	}

	m.handler.Prepare(t)

	id := uuid.New()
	log := m.log.With(zap.String("session", id.String()))
	opts := append(append([]Option(nil), m.opts...), WithLogger(log))
	det := NewDetector(m.viewport, opts...)

	s := &Session{ID: id, target: t, detector: det}
	det.On(func(ev Event) {
		m.handler.Apply(ev, t)
	})
	m.sessions[t] = s

	log.Info("target attached", zap.Int("sessions", len(m.sessions)))
	return s
}

// Detach drops the target's session together with any gesture in progress.
// It reports whether the target was attached.
func (m *Manager) Detach(t Target) bool {
	s, ok := m.sessions[t]
	if !ok {
		return false
	}
	s.detector.Reset()
	delete(m.sessions, t)
	m.log.Info("target detached",
		zap.String("session", s.ID.String()),
		zap.Int("sessions", len(m.sessions)),
	)
	return true
}

// Session returns the session of an attached target.
func (m *Manager) Session(t Target) (*Session, bool) {
	s, ok := m.sessions[t]
	return s, ok
}

// Len returns the number of attached targets.
func (m *Manager) Len() int {
	return len(m.sessions)
}

// SetViewport updates the viewport of the manager and every session.
func (m *Manager) SetViewport(vp Viewport) {
	m.viewport = vp
	for _, s := range m.sessions {
		s.detector.SetViewport(vp)
	}
}

// Frame feeds one input frame to the target's session.
func (m *Manager) Frame(t Target, touches []TouchPoint) ([]Event, error) {
	s, ok := m.sessions[t]
	if !ok {
		return nil, ErrNotAttached
	}
	events, err := s.detector.Frame(touches)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}
	return events, nil
}
