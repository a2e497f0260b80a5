package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/capture"
	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/curriculum"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/events"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/phrazzld/hececiz/internal/verification"
)

// incrementTimeout bounds a single profile progress update.
const incrementTimeout = 5 * time.Second

// Timing holds the fixed delays of the turn cycle.
type Timing struct {
	// AudioDelay separates a new syllable entering IDLE from its pronunciation.
	AudioDelay time.Duration
	// CorrectDelay is how long CORRECT is shown before advancing.
	CorrectDelay time.Duration
	// WrongDelay is how long WRONG is shown before the learner may retry.
	WrongDelay time.Duration
}

// DefaultTiming returns the delays used when none are configured.
func DefaultTiming() Timing {
	return Timing{
		AudioDelay:   500 * time.Millisecond,
		CorrectDelay: 2500 * time.Millisecond,
		WrongDelay:   1500 * time.Millisecond,
	}
}

// TimingFromConfig reads the delays from the session configuration.
func TimingFromConfig(cfg config.SessionConfig) Timing {
	return Timing{
		AudioDelay:   cfg.AudioDelay,
		CorrectDelay: cfg.CorrectDelay,
		WrongDelay:   cfg.WrongDelay,
	}
}

// Dependencies are the collaborators a Controller talks to. Only Verifier is
// required; Profiles is required when a profile is active.
type Dependencies struct {
	Verifier  verification.Verifier
	Profiles  store.ProfileStore
	Player    audio.Player
	Emitter   events.EventEmitter
	Scheduler Scheduler
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Options describe one session.
type Options struct {
	ID         uuid.UUID
	Profile    *domain.Profile
	Curriculum *curriculum.Curriculum
	Surface    *capture.Surface
	Timing     Timing
}

// Stroke is one continuous pointer path replayed onto the surface.
type Stroke struct {
	// Tool selects the tool before the stroke starts. Empty keeps the
	// current tool.
	Tool   domain.Tool
	Bounds capture.Bounds
	Points []capture.Point
	// Leave ends the stroke as if the pointer left the surface.
	Leave bool
}

// effects are side effects collected under the state lock and run after it
// is released.
type effects []func()

func (fx *effects) do(f func()) {
	*fx = append(*fx, f)
}

// Controller runs the practice turn state machine for one learner.
//
// Every public method returns without waiting on the classifier, the audio
// player or the profile store. Event handlers run on the goroutine that made
// the transition and must not call back into the controller.
type Controller struct {
	id         uuid.UUID
	verifier   verification.Verifier
	profiles   store.ProfileStore
	player     audio.Player
	emitter    events.EventEmitter
	scheduler  Scheduler
	logger     *slog.Logger
	clock      func() time.Time
	timing     Timing
	curriculum *curriculum.Curriculum
	surface    *capture.Surface

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// emitMu keeps effects in transition order. It is taken before mu is
	// released.
	emitMu sync.Mutex

	mu          sync.Mutex
	state       domain.FeedbackState
	assisted    bool
	hintVisible bool
	ledger      Ledger
	profile     *domain.Profile
	lastResult  *domain.CheckResult
	generation  uint64
	attempt     uint64
	timers      map[uint64]Timer
	nextTimer   uint64
	started     bool
	closed      bool
	lastActive  time.Time
}

// NewController creates a controller in IDLE on the curriculum's current
// syllable. Call Start to present it.
func NewController(deps Dependencies, opts Options) (*Controller, error) {
	if deps.Verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if opts.Curriculum == nil || opts.Curriculum.Len() == 0 {
		return nil, errors.New("curriculum cannot be empty")
	}
	if opts.Surface == nil {
		return nil, errors.New("surface cannot be nil")
	}
	if opts.Profile != nil && deps.Profiles == nil {
		return nil, errors.New("profile store is required for a profile session")
	}

	if deps.Player == nil {
		deps.Player = audio.NopPlayer{}
	}
	if deps.Emitter == nil {
		deps.Emitter = events.NopEmitter{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = RealScheduler{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if opts.ID == uuid.Nil {
		opts.ID = uuid.New()
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}

	var profile *domain.Profile
	if opts.Profile != nil {
		p := *opts.Profile
		profile = &p
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		id:         opts.ID,
		verifier:   deps.Verifier,
		profiles:   deps.Profiles,
		player:     deps.Player,
		emitter:    deps.Emitter,
		scheduler:  deps.Scheduler,
		logger:     deps.Logger.With("component", "session", "session_id", opts.ID),
		clock:      deps.Clock,
		timing:     opts.Timing,
		curriculum: opts.Curriculum,
		surface:    opts.Surface,
		ctx:        ctx,
		cancel:     cancel,
		state:      domain.FeedbackIdle,
		profile:    profile,
		timers:     make(map[uint64]Timer),
		lastActive: deps.Clock(),
	}, nil
}

// ID returns the session ID.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Start presents the first syllable. Calling it again has no effect.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true

	var fx effects
	c.present(&fx)
	c.release(fx)
	return nil
}

// Submit sends the current drawing for verification. It returns
// ErrNothingDrawn for an empty surface and ErrBusy outside IDLE; in both
// cases nothing changes.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if err := c.checkIdle(); err != nil {
		c.mu.Unlock()
		return err
	}

	var fx effects
	if c.surface.IsEmpty() {
		c.queue(&fx, EventNotice, NoticePayload{Code: NoticeNothingDrawn, Message: NothingDrawnMessage})
		c.release(fx)
		return ErrNothingDrawn
	}

	target := c.curriculum.Current()
	snapshot, err := c.surface.ExportSnapshot()

	c.attempt++
	c.lastResult = nil
	c.surface.SetDisabled(true)
	c.setState(&fx, domain.FeedbackChecking)

	c.wg.Add(1)
	go c.verify(c.attempt, target, snapshot, err)

	c.release(fx)
	return nil
}

func (c *Controller) verify(attempt uint64, target domain.Syllable, snapshot *capture.Snapshot, exportErr error) {
	defer c.wg.Done()

	var result domain.CheckResult
	switch {
	case exportErr != nil:
		c.logger.Error("failed to export snapshot, treating attempt as wrong",
			"syllable", target.Text,
			"error", exportErr)
		result = verification.Failed()
	case snapshot == nil:
		result = verification.Failed()
	default:
		img := verification.Image{MIMEType: snapshot.MIMEType, Data: snapshot.Data}
		result = c.verifier.Verify(c.ctx, img, target.Text)
	}

	c.mu.Lock()
	if c.closed || c.attempt != attempt || c.state != domain.FeedbackChecking {
		c.mu.Unlock()
		c.logger.Debug("discarding stale verdict", "syllable", target.Text)
		return
	}

	c.lastResult = &result

	var fx effects
	if result.IsCorrect {
		c.onCorrect(&fx, attempt)
	} else {
		c.onWrong(&fx, attempt)
	}
	c.release(fx)
}

func (c *Controller) onCorrect(fx *effects, attempt uint64) {
	bucket := c.ledger.Record(c.assisted)
	if c.profile != nil {
		c.requestIncrement(c.profile.ID, bucket)
	}
	fx.do(func() { c.player.PlayCue(audio.CueCorrect) })

	c.setState(fx, domain.FeedbackCorrect)
	c.queue(fx, EventScoreUpdated, ScorePayload{Ledger: c.ledger, Bucket: bucket})

	c.after(c.timing.CorrectDelay, func(fx *effects) {
		if c.attempt != attempt || c.state != domain.FeedbackCorrect {
			return
		}
		c.advance(fx)
	})
}

func (c *Controller) onWrong(fx *effects, attempt uint64) {
	fx.do(func() { c.player.PlayCue(audio.CueWrong) })
	c.setState(fx, domain.FeedbackWrong)

	c.after(c.timing.WrongDelay, func(fx *effects) {
		if c.attempt != attempt || c.state != domain.FeedbackWrong {
			return
		}
		c.surface.SetDisabled(false)
		c.setState(fx, domain.FeedbackIdle)
	})
}

// requestIncrement credits the active profile in the background. Callers
// hold c.mu on an open controller.
func (c *Controller) requestIncrement(id uuid.UUID, bucket domain.ProgressBucket) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.ctx), incrementTimeout)
		defer cancel()

		updated, err := c.profiles.IncrementProgress(ctx, id, bucket)
		if err == nil && updated == nil {
			err = store.ErrProfileNotFound
		}
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.logger.Warn("profile not found, progress not saved",
					"profile_id", id,
					"bucket", bucket)
			} else {
				c.logger.Error("failed to save progress",
					"profile_id", id,
					"bucket", bucket,
					"error", err)
			}
			return
		}

		c.mu.Lock()
		if c.closed || c.profile == nil || c.profile.ID != updated.ID ||
			progressTotal(updated) < progressTotal(c.profile) {
			c.mu.Unlock()
			return
		}
		p := *updated
		c.profile = &p

		var fx effects
		c.queue(&fx, EventProfileUpdated, ProfilePayload{Profile: p})
		c.release(fx)
	}()
}

func progressTotal(p *domain.Profile) int {
	return p.TotalCorrectAudio + p.TotalCorrectHint
}

// Skip moves to the next syllable without scoring.
func (c *Controller) Skip() error {
	c.mu.Lock()
	if err := c.checkIdle(); err != nil {
		c.mu.Unlock()
		return err
	}

	var fx effects
	fx.do(func() { c.player.PlayCue(audio.CueSkip) })
	c.advance(&fx)
	c.release(fx)
	return nil
}

// ToggleHint flips hint visibility and returns the new value.
func (c *Controller) ToggleHint() (bool, error) {
	c.mu.Lock()
	if err := c.checkIdle(); err != nil {
		c.mu.Unlock()
		return false, err
	}

	visible := !c.hintVisible
	var fx effects
	c.setHint(&fx, visible)
	c.release(fx)
	return visible, nil
}

// SetHint shows or hides the hint. Showing it marks the turn as assisted.
func (c *Controller) SetHint(visible bool) error {
	c.mu.Lock()
	if err := c.checkIdle(); err != nil {
		c.mu.Unlock()
		return err
	}

	var fx effects
	c.setHint(&fx, visible)
	c.release(fx)
	return nil
}

func (c *Controller) setHint(fx *effects, visible bool) {
	if visible == c.hintVisible {
		return
	}
	c.hintVisible = visible
	if visible {
		c.assisted = true
	}
	c.queue(fx, EventHintChanged, HintPayload{Visible: c.hintVisible, Assisted: c.assisted})
}

// SetTool selects the tool for the next stroke.
func (c *Controller) SetTool(tool domain.Tool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIdle(); err != nil {
		return err
	}
	return c.surface.SetTool(tool)
}

// Clear wipes the surface and selects ink. The assist flag is kept.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIdle(); err != nil {
		return err
	}
	c.surface.Clear()
	return nil
}

// ReplayAudio pronounces the current syllable again.
func (c *Controller) ReplayAudio() error {
	c.mu.Lock()
	if err := c.checkIdle(); err != nil {
		c.mu.Unlock()
		return err
	}

	text := c.curriculum.Current().Text
	var fx effects
	fx.do(func() { c.player.Pronounce(text) })
	c.release(fx)
	return nil
}

// Stroke replays a pointer path onto the surface.
func (c *Controller) Stroke(s Stroke) error {
	if len(s.Points) == 0 {
		return ErrInvalidStroke
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIdle(); err != nil {
		return err
	}
	if s.Tool != "" {
		if err := c.surface.SetTool(s.Tool); err != nil {
			return err
		}
	}

	c.surface.PointerDown(s.Points[0], s.Bounds)
	for _, p := range s.Points[1:] {
		c.surface.PointerMove(p, s.Bounds)
	}
	if s.Leave {
		c.surface.PointerLeave()
	} else {
		c.surface.PointerUp()
	}
	return nil
}

// Resize changes the surface's logical size or pixel ratio. It reports
// whether the backing raster was re-provisioned, which clears it.
func (c *Controller) Resize(width, height, ratio float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrClosed
	}
	c.touch()
	return c.surface.Resize(width, height, ratio)
}

// Snapshot exports the current drawing. It returns nil when the surface is
// empty.
func (c *Controller) Snapshot() (*capture.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	return c.surface.ExportSnapshot()
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	width, height, ratio := c.surface.Size()
	st := State{
		SessionID:    c.id,
		Feedback:     c.state,
		Syllable:     c.curriculum.Current(),
		Index:        c.curriculum.Index(),
		Total:        c.curriculum.Len(),
		HintVisible:  c.hintVisible,
		Assisted:     c.assisted,
		Tool:         c.surface.Tool(),
		Ledger:       c.ledger,
		SurfaceEmpty: c.surface.IsEmpty(),
		Width:        width,
		Height:       height,
		PixelRatio:   ratio,
		Closed:       c.closed,
	}
	if c.profile != nil {
		p := *c.profile
		st.Profile = &p
	}
	if c.lastResult != nil {
		r := *c.lastResult
		st.LastResult = &r
	}
	return st
}

// IdleSince returns when the learner last acted and whether the controller
// is at rest in IDLE.
func (c *Controller) IdleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastActive, c.state == domain.FeedbackIdle && !c.closed
}

// Close stops every pending timer, abandons an in-flight verification and
// waits for background work to finish. Later calls return immediately.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.surface.SetDisabled(true)
	c.cancel()

	var fx effects
	c.queue(&fx, EventClosed, ClosedPayload{Ledger: c.ledger})
	c.release(fx)

	c.wg.Wait()
	c.logger.Debug("session closed", "ledger_total", c.ledger.Total())
}

// checkIdle reports whether a learner action may run. Callers hold c.mu.
func (c *Controller) checkIdle() error {
	if c.closed {
		return ErrClosed
	}
	if c.state != domain.FeedbackIdle {
		return ErrBusy
	}
	c.touch()
	return nil
}

func (c *Controller) touch() {
	c.lastActive = c.clock()
}

// advance moves to the next syllable and resets the turn.
func (c *Controller) advance(fx *effects) {
	c.curriculum.Advance()
	c.assisted = false
	c.hintVisible = false
	c.lastResult = nil
	c.surface.Clear()
	c.surface.SetDisabled(false)
	c.setState(fx, domain.FeedbackIdle)
	c.present(fx)
}

// present announces the current syllable and schedules its pronunciation.
func (c *Controller) present(fx *effects) {
	c.generation++
	generation := c.generation
	current := c.curriculum.Current()

	c.queue(fx, EventSyllablePresented, SyllablePayload{
		Syllable: current,
		Index:    c.curriculum.Index(),
		Total:    c.curriculum.Len(),
	})

	c.after(c.timing.AudioDelay, func(fx *effects) {
		if c.generation != generation || c.state != domain.FeedbackIdle {
			return
		}
		fx.do(func() { c.player.Pronounce(current.Text) })
	})
}

func (c *Controller) setState(fx *effects, state domain.FeedbackState) {
	c.state = state
	payload := FeedbackPayload{State: state, Syllable: c.curriculum.Current()}
	if c.lastResult != nil && (state == domain.FeedbackCorrect || state == domain.FeedbackWrong) {
		r := *c.lastResult
		payload.Result = &r
	}
	c.queue(fx, EventFeedbackChanged, payload)
}

// after schedules step to run under c.mu once d has passed. The timer is
// dropped on Close and step never runs on a closed controller.
func (c *Controller) after(d time.Duration, step func(fx *effects)) {
	c.nextTimer++
	id := c.nextTimer

	c.timers[id] = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if _, ok := c.timers[id]; !ok || c.closed {
			c.mu.Unlock()
			return
		}
		delete(c.timers, id)

		var fx effects
		step(&fx)
		c.release(fx)
	})
}

// queue builds an event from the current state and defers its emission.
func (c *Controller) queue(fx *effects, eventType string, payload interface{}) {
	event, err := events.NewEvent(eventType, c.id, payload)
	if err != nil {
		c.logger.Error("failed to build event", "type", eventType, "error", err)
		return
	}
	fx.do(func() {
		if err := c.emitter.EmitEvent(context.Background(), event); err != nil {
			c.logger.Warn("failed to emit event", "type", eventType, "error", err)
		}
	})
}

// release unlocks c.mu and runs fx in order.
func (c *Controller) release(fx effects) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	for _, f := range fx {
		f()
	}
}

// String implements fmt.Stringer for log output.
func (c *Controller) String() string {
	return fmt.Sprintf("session(%s)", c.id)
}
