package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/capture"
	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/curriculum"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// StartRequest describes a new session.
type StartRequest struct {
	// ProfileID selects the learner to credit. Nil starts a guest session.
	ProfileID *uuid.UUID
	// Surface dimensions. Zero values select the configured defaults.
	Width      float64
	Height     float64
	PixelRatio float64
}

// Forgetter drops per-session data kept outside the controller, such as an
// event journal.
type Forgetter interface {
	Forget(sessionID uuid.UUID)
}

// Manager owns the live controllers of the process.
type Manager struct {
	deps      Dependencies
	cfg       config.SessionConfig
	logger    *slog.Logger
	forgetter Forgetter
	generate  func() *curriculum.Curriculum

	mu       sync.Mutex
	sessions map[uuid.UUID]*Controller
	cron     *cron.Cron
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithForgetter registers f to be told when a session ends.
func WithForgetter(f Forgetter) ManagerOption {
	return func(m *Manager) {
		m.forgetter = f
	}
}

// WithCurriculum replaces the curriculum source, which by default shuffles
// a fresh curriculum for every session.
func WithCurriculum(generate func() *curriculum.Curriculum) ManagerOption {
	return func(m *Manager) {
		m.generate = generate
	}
}

// NewManager creates a Manager. deps.Player is wrapped per session so the
// session's client is told which clip to fetch.
func NewManager(deps Dependencies, cfg config.SessionConfig, opts ...ManagerOption) (*Manager, error) {
	if deps.Verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("max sessions must be positive, got %d", cfg.MaxSessions)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	m := &Manager{
		deps:     deps,
		cfg:      cfg,
		logger:   deps.Logger.With("component", "session_manager"),
		generate: func() *curriculum.Curriculum { return curriculum.NewGenerator().Generate() },
		sessions: make(map[uuid.UUID]*Controller),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start creates, registers and starts a controller.
func (m *Manager) Start(ctx context.Context, req StartRequest) (*Controller, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if m.Len() >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	var profile *domain.Profile
	if req.ProfileID != nil {
		if m.deps.Profiles == nil {
			return nil, errors.New("profile sessions require a profile store")
		}
		p, err := m.deps.Profiles.Get(ctx, *req.ProfileID)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	width, height, ratio := req.Width, req.Height, req.PixelRatio
	if width <= 0 {
		width = m.cfg.CanvasWidth
	}
	if height <= 0 {
		height = m.cfg.CanvasHeight
	}
	if ratio <= 0 {
		ratio = m.cfg.PixelRatio
	}

	surface, err := capture.NewSurface(width, height, ratio, capture.DefaultOptions())
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	deps := m.deps
	deps.Player = NewAnnouncingPlayer(m.deps.Player, m.deps.Emitter, id, m.deps.Logger)

	ctrl, err := NewController(deps, Options{
		ID:         id,
		Profile:    profile,
		Curriculum: m.generate(),
		Surface:    surface,
		Timing:     TimingFromConfig(m.cfg),
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return nil, ErrTooManySessions
	}
	m.sessions[id] = ctrl
	m.mu.Unlock()

	if err := ctrl.Start(); err != nil {
		m.remove(id)
		return nil, err
	}

	log.Info("session started",
		"session_id", id,
		"guest", profile == nil,
		"syllables", ctrl.curriculum.Len())
	return ctrl, nil
}

// Get returns the live controller for id.
func (m *Manager) Get(id uuid.UUID) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ctrl, nil
}

// End closes and forgets the session.
func (m *Manager) End(ctx context.Context, id uuid.UUID) error {
	ctrl := m.remove(id)
	if ctrl == nil {
		return ErrNotFound
	}
	ctrl.Close()
	m.forget(id)

	logger.FromContextOrDefault(ctx, m.logger).Info("session ended",
		"session_id", id,
		"ledger", ctrl.State().Ledger)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweeper schedules Sweep on the configured cron spec.
func (m *Manager) StartSweeper() error {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(m.cfg.SweepSpec, func() { m.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep spec %q: %w", m.cfg.SweepSpec, err)
	}

	m.mu.Lock()
	if m.cron != nil {
		m.mu.Unlock()
		return errors.New("sweeper already started")
	}
	m.cron = c
	m.mu.Unlock()

	c.Start()
	m.logger.Info("idle session sweeper started",
		"spec", m.cfg.SweepSpec,
		"idle_timeout", m.cfg.IdleTimeout)
	return nil
}

// Sweep ends every session that has rested in IDLE for longer than the idle
// timeout and returns how many it ended.
func (m *Manager) Sweep() int {
	cutoff := m.deps.Clock().Add(-m.cfg.IdleTimeout)

	m.mu.Lock()
	var stale []*Controller
	for id, ctrl := range m.sessions {
		since, idle := ctrl.IdleSince()
		if idle && since.Before(cutoff) {
			stale = append(stale, ctrl)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, ctrl := range stale {
		ctrl.Close()
		m.forget(ctrl.ID())
		m.logger.Info("idle session ended", "session_id", ctrl.ID())
	}
	return len(stale)
}

// CloseAll stops the sweeper and closes every session. It returns early
// with ctx's error if ctx ends first.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Controller)
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for id, ctrl := range sessions {
			ctrl.Close()
			m.forget(id)
		}
	}()

	select {
	case <-done:
		m.logger.Info("all sessions closed", "count", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) remove(id uuid.UUID) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.sessions[id]
	if !ok {
		return nil
	}
	delete(m.sessions, id)
	return ctrl
}

func (m *Manager) forget(id uuid.UUID) {
	if m.forgetter != nil {
		m.forgetter.Forget(id)
	}
}
