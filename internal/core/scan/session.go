// Package scan runs a single QR scan attempt against an external capture device
//
// States move Idle -> Scanning -> Success|Failure -> Idle. The capture device is held only while
// Scanning and is released on every way out of it: a decoded frame, an explicit Stop, Close, or
// cancellation of the context passed to Start. Frames that arrive after the session has left
// Scanning are ignored.
package scan

import (
	"context"
	"sync"

	"paysplit/internal/core/descriptor"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/platform/logger"

	"github.com/google/uuid"
)

// State is the lifecycle state of a session
type State int

// Session states
const (
	StateIdle State = iota
	StateScanning
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Status tags a Result
type Status int

// Result statuses
const (
	StatusPending Status = iota
	StatusDecoded
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDecoded:
		return "decoded"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the outcome of a scan attempt; Descriptor is set when Decoded, Reason when Rejected
type Result struct {
	Status     Status
	Descriptor descriptor.Descriptor
	Reason     error
}

// Config is passed through to the capture device untouched
type Config struct {
	FPS         int     `json:"fps"`
	BoxWidth    int     `json:"qrboxWidth"`
	BoxHeight   int     `json:"qrboxHeight"`
	AspectRatio float64 `json:"aspectRatio"`
	FacingMode  string  `json:"facingMode"`
}

// DefaultConfig matches the browser scanner defaults
func DefaultConfig() Config {
	return Config{FPS: 10, BoxWidth: 250, BoxHeight: 250, AspectRatio: 1.0, FacingMode: "environment"}
}

// Handlers receive capture events; both may be called from any goroutine
type Handlers struct {
	OnText  func(text string)
	OnError func(err error)
}

// Capture is the camera side of a session
// Start acquires the device and begins delivering events; Stop releases it
type Capture interface {
	Start(ctx context.Context, cfg Config, h Handlers) error
	Stop() error
}

// Snapshot is a consistent view of a session
type Snapshot struct {
	ID        string
	State     State
	Result    Result
	LastError error
	Frames    int
}

// Observer hooks are invoked outside the session lock
type Observer struct {
	// OnChange fires after every state transition
	OnChange func(Snapshot)
	// OnFrame fires for each frame acted upon; err is nil for the decoded frame
	OnFrame func(err error)
}

// Option configures a Session
type Option func(*Session)

// WithConfig sets the capture configuration
func WithConfig(c Config) Option { return func(s *Session) { s.cfg = c } }

// WithDecoder replaces descriptor.Decode, mostly for tests
func WithDecoder(fn func(string) (descriptor.Descriptor, error)) Option {
	return func(s *Session) {
		if fn != nil {
			s.decode = fn
		}
	}
}

// WithObserver installs transition and frame hooks
func WithObserver(o Observer) Option { return func(s *Session) { s.obs = o } }

// WithID overrides the generated session id
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session is safe for concurrent use
type Session struct {
	id      string
	capture Capture
	cfg     Config
	decode  func(string) (descriptor.Descriptor, error)
	obs     Observer
	log     *logger.Logger

	mu       sync.Mutex
	state    State
	gen      uint64 // bumped on every Start and Stop; stale callbacks compare against it
	starting bool   // capture.Start in flight
	held     bool   // device acquired and not yet released
	unwatch  func() bool
	result   Result
	lastErr  error
	frames   int
}

// New returns an idle session over c
func New(c Capture, opts ...Option) *Session {
	if c == nil {
		panic("scan.Session requires a non nil Capture")
	}
	s := &Session{
		id:      uuid.NewString(),
		capture: c,
		cfg:     DefaultConfig(),
		decode:  descriptor.Decode,
	}
	for _, o := range opts {
		o(s)
	}
	l := logger.Named("scan").With().Str("session_id", s.id).Logger()
	s.log = &l
	return s
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Config returns the capture configuration
func (s *Session) Config() Config { return s.cfg }

// Start acquires the capture device and begins scanning
// it is a no-op while already Scanning; a device failure moves the session to Failure and
// returns a CaptureUnavailable error. Cancelling ctx tears the session down
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateScanning {
		s.mu.Unlock()
		s.log.Debug().Msg("scanner already running")
		return nil
	}
	if s.starting {
		s.mu.Unlock()
		return perr.Unavailablef("scanner is still releasing a previous attempt")
	}
	s.gen++
	gen := s.gen
	s.state = StateScanning
	s.starting = true
	s.result = Result{Status: StatusPending}
	s.lastErr = nil
	s.frames = 0
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)

	h := Handlers{
		OnText:  func(text string) { s.frame(gen, text) },
		OnError: func(err error) { s.captureError(gen, err) },
	}
	err := s.capture.Start(ctx, s.cfg, h)

	s.mu.Lock()
	s.starting = false
	current := s.gen == gen && s.state == StateScanning

	if err != nil {
		cerr := perr.Wrap(err, perr.ErrorCodeCaptureUnavailable,
			"failed to start camera/scanner, ensure camera permissions are granted")
		if !current {
			s.mu.Unlock()
			return cerr
		}
		s.state = StateFailure
		s.result = Result{Status: StatusRejected, Reason: cerr}
		s.lastErr = cerr
		snap = s.snapshotLocked()
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("unable to start QR scanner")
		s.changed(snap)
		return cerr
	}

	if !current {
		// stopped or decoded while the device was being acquired
		s.mu.Unlock()
		s.release()
		return nil
	}
	s.held = true
	s.unwatch = context.AfterFunc(ctx, func() { s.teardown(gen) })
	s.mu.Unlock()
	s.log.Info().Int("fps", s.cfg.FPS).Msg("scanner started")
	return nil
}

// Stop cancels an active scan and releases the device; it is a no-op unless Scanning
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state != StateScanning {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.state = StateIdle
	s.result = Result{}
	release := s.leaveLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info().Msg("scanner stopped")
	s.changed(snap)
	if release {
		s.release()
	}
}

// Reset returns a finished session (Success or Failure) to Idle
func (s *Session) Reset() {
	s.mu.Lock()
	if s.state != StateSuccess && s.state != StateFailure {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	s.result = Result{}
	s.lastErr = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)
}

// Close tears the session down from any state
func (s *Session) Close() {
	s.Stop()
	s.Reset()
}

// Snapshot returns the current state, result and diagnostics
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// frame decodes outside the lock and re-checks the generation before acting on the result
func (s *Session) frame(gen uint64, text string) {
	if !s.scanning(gen) {
		return
	}
	d, err := s.safeDecode(text)

	s.mu.Lock()
	if gen != s.gen || s.state != StateScanning {
		s.mu.Unlock()
		return
	}
	s.frames++
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.log.Debug().Err(err).Msg("frame rejected")
		s.frameSeen(err)
		return
	}
	s.state = StateSuccess
	s.result = Result{Status: StatusDecoded, Descriptor: d}
	s.lastErr = nil
	release := s.leaveLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info().Int("frames", snap.Frames).Msg("payload decoded")
	s.frameSeen(nil)
	s.changed(snap)
	if release {
		s.release()
	}
}

func (s *Session) scanning(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen && s.state == StateScanning
}

// safeDecode turns a decoder panic into a rejected frame
func (s *Session) safeDecode(text string) (d descriptor.Descriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("payload decoder panicked")
			d, err = descriptor.Descriptor{}, perr.MalformedPayloadf("payload could not be decoded")
		}
	}()
	return s.decode(text)
}

// captureError records low level misreads; they never end the session
func (s *Session) captureError(gen uint64, err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	if gen != s.gen || s.state != StateScanning {
		s.mu.Unlock()
		return
	}
	s.lastErr = err
	s.mu.Unlock()
	s.log.Debug().Err(err).Msg("scan error reported by capture")
}

// teardown runs when the Start context is cancelled
func (s *Session) teardown(gen uint64) {
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if !stale {
		s.Stop()
	}
}

// leaveLocked drops the device claim and reports whether the caller must release it
func (s *Session) leaveLocked() bool {
	if s.unwatch != nil {
		s.unwatch()
		s.unwatch = nil
	}
	held := s.held
	s.held = false
	return held
}

func (s *Session) release() {
	if err := s.capture.Stop(); err != nil {
		s.log.Error().Err(err).Msg("failed to stop QR scanner")
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{ID: s.id, State: s.state, Result: s.result, LastError: s.lastErr, Frames: s.frames}
}

func (s *Session) changed(snap Snapshot) {
	if s.obs.OnChange != nil {
		s.obs.OnChange(snap)
	}
}

func (s *Session) frameSeen(err error) {
	if s.obs.OnFrame != nil {
		s.obs.OnFrame(err)
	}
}
