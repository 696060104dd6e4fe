package sensorapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// State is the connection state of the alert stream
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosed
	StateGivenUp
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateGivenUp:
		return "given_up"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EventHandler processes one alert event from the stream
type EventHandler func(event models.AlertEvent)

// Conn is the subset of *websocket.Conn used by the stream
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens stream connections
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

type websocketDialer struct {
	dialer *websocket.Dialer
	header http.Header
}

// NewWebsocketDialer returns a Dialer backed by gorilla/websocket
func NewWebsocketDialer(handshakeTimeout time.Duration, apiToken string) Dialer {
	header := http.Header{}
	if apiToken != "" {
		header.Add("Authorization", "Bearer "+apiToken)
	}

	return &websocketDialer{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		header: header,
	}
}

// Dial connects to url
func (d *websocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, d.header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// StreamConfig holds the alert stream settings
type StreamConfig struct {
	URL            string
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// StreamOption customizes an AlertStream
type StreamOption func(*AlertStream)

// WithClock sets the clock used for reconnect timers
func WithClock(clock clockwork.Clock) StreamOption {
	return func(s *AlertStream) {
		s.clock = clock
	}
}

// WithDialer sets the connection dialer
func WithDialer(dialer Dialer) StreamOption {
	return func(s *AlertStream) {
		s.dialer = dialer
	}
}

// WithGiveUpHandler sets the callback run once the stream stops reconnecting
func WithGiveUpHandler(fn func(err error)) StreamOption {
	return func(s *AlertStream) {
		s.onGiveUp = fn
	}
}

// WithStateObserver sets a callback run after every state transition
func WithStateObserver(fn func(State)) StreamOption {
	return func(s *AlertStream) {
		s.onState = fn
	}
}

// AlertStream keeps one connection to the alert push endpoint open and
// reconnects with exponential backoff until MaxAttempts consecutive
// attempts have failed.
type AlertStream struct {
	cfg      StreamConfig
	logger   *utils.Logger
	dialer   Dialer
	clock    clockwork.Clock
	backoff  *backoff.ExponentialBackOff
	onGiveUp func(err error)
	onState  func(State)

	mu         sync.Mutex
	state      State
	handler    EventHandler
	attempts   int
	generation uint64
	conn       Conn
	timer      clockwork.Timer
	cancelDial context.CancelFunc
	lastErr    error

	// transitions and give-up signals are delivered in order after mu is
	// released; observers must not call back into the stream
	changes  []State
	gaveUp   error
	notifyMu sync.Mutex
}

// NewAlertStream creates a disconnected alert stream
func NewAlertStream(cfg StreamConfig, logger *utils.Logger, opts ...StreamOption) *AlertStream {
	if cfg.MaxAttempts < 0 {
		cfg.MaxAttempts = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}

	s := &AlertStream{
		cfg:    cfg,
		logger: logger.Named("alert_stream"),
		clock:  clockwork.NewRealClock(),
		state:  StateDisconnected,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dialer == nil {
		s.dialer = NewWebsocketDialer(10*time.Second, "")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialBackoff
	b.MaxInterval = cfg.MaxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Clock = s.clock
	b.Reset()
	s.backoff = b

	return s
}

// State returns the current connection state
func (s *AlertStream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns the number of reconnect attempts since the last open
func (s *AlertStream) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Connect registers handler as the only event handler and opens the
// connection. When a connection is already open or being dialed only the
// handler is replaced. Connecting after the stream gave up starts a fresh
// series of attempts.
func (s *AlertStream) Connect(handler EventHandler) {
	s.mu.Lock()
	defer s.unlock()

	s.handler = handler

	switch s.state {
	case StateOpen, StateConnecting:
		return
	case StateGivenUp:
		s.attempts = 0
		s.backoff.Reset()
	}

	s.stopTimerLocked()
	s.generation++
	s.dialLocked(s.generation)
}

// Disconnect tears the connection down without reconnecting and cancels
// any pending reconnect.
func (s *AlertStream) Disconnect() {
	s.mu.Lock()

	s.generation++
	s.stopTimerLocked()
	if s.cancelDial != nil {
		s.cancelDial()
		s.cancelDial = nil
	}
	conn := s.conn
	s.conn = nil
	s.handler = nil
	s.attempts = 0
	s.backoff.Reset()
	s.setStateLocked(StateDisconnected)

	s.unlock()

	if conn != nil {
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			s.logger.Debug("Error while sending close message", zap.Error(err))
		}
		if err := conn.Close(); err != nil {
			s.logger.Debug("Error while closing connection", zap.Error(err))
		}
	}
}

// dialLocked starts a connection attempt for generation gen
func (s *AlertStream) dialLocked(gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelDial = cancel
	s.setStateLocked(StateConnecting)

	s.logger.Info("Connecting to alert stream",
		zap.String("url", s.cfg.URL),
		zap.Int("attempt", s.attempts),
	)

	go s.run(ctx, gen)
}

// run dials and then reads until the connection fails
func (s *AlertStream) run(ctx context.Context, gen uint64) {
	conn, err := s.dialer.Dial(ctx, s.cfg.URL)

	s.mu.Lock()
	if gen != s.generation {
		s.unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if s.cancelDial != nil {
		s.cancelDial()
		s.cancelDial = nil
	}
	if err != nil {
		s.logger.Warn("Failed to connect to alert stream", zap.Error(err))
		s.handleCloseLocked(gen, fmt.Errorf("%w: %w", utils.ErrNetwork, err))
		s.unlock()
		return
	}

	s.conn = conn
	s.attempts = 0
	s.backoff.Reset()
	s.setStateLocked(StateOpen)
	s.unlock()

	s.logger.Info("Alert stream connected", zap.String("url", s.cfg.URL))
	s.readLoop(conn, gen)
}

// readLoop delivers messages until the connection fails
func (s *AlertStream) readLoop(conn Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			current := gen == s.generation && s.conn == conn
			if current {
				s.conn = nil
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Warn("Alert stream read error", zap.Error(err))
				} else {
					s.logger.Info("Alert stream closed", zap.Error(err))
				}
				s.handleCloseLocked(gen, fmt.Errorf("%w: %w", utils.ErrNetwork, err))
			}
			s.unlock()
			if current {
				conn.Close()
			}
			return
		}

		event, err := DecodeAlertEvent(data, s.clock.Now())
		if err != nil {
			s.logger.Debug("Wrapping undecodable alert message as raw text", zap.Error(err))
		}
		s.dispatch(gen, event)
	}
}

// dispatch runs the registered handler for a message of generation gen
func (s *AlertStream) dispatch(gen uint64, event models.AlertEvent) {
	s.mu.Lock()
	handler := s.handler
	stale := gen != s.generation
	s.mu.Unlock()

	if stale || handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic in alert stream handler", zap.Any("recover", r))
		}
	}()
	handler(event)
}

// handleCloseLocked schedules the next reconnect or gives up
func (s *AlertStream) handleCloseLocked(gen uint64, cause error) {
	s.lastErr = cause
	s.setStateLocked(StateClosed)

	if s.attempts >= s.cfg.MaxAttempts {
		err := fmt.Errorf("%w after %d attempts: %w", utils.ErrReconnectExhausted, s.attempts, cause)
		s.logger.Error("Max reconnect attempts reached", zap.Error(err))
		s.setStateLocked(StateGivenUp)
		s.gaveUp = err
		return
	}

	delay := s.backoff.NextBackOff()
	s.attempts++
	s.logger.Info("Scheduling alert stream reconnect",
		zap.Int("attempt", s.attempts),
		zap.Int("max_attempts", s.cfg.MaxAttempts),
		zap.Duration("backoff", delay),
	)

	s.timer = s.clock.AfterFunc(delay, func() {
		s.reconnect(gen)
	})
}

// reconnect fires when a backoff timer expires
func (s *AlertStream) reconnect(gen uint64) {
	s.mu.Lock()
	defer s.unlock()

	if gen != s.generation || s.state != StateClosed {
		return
	}
	s.timer = nil
	s.dialLocked(gen)
}

func (s *AlertStream) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *AlertStream) setStateLocked(state State) {
	if s.state == state {
		return
	}
	s.state = state
	s.changes = append(s.changes, state)
}

// unlock releases mu and then runs the observers for what happened under it
func (s *AlertStream) unlock() {
	changes := s.changes
	s.changes = nil
	gaveUp := s.gaveUp
	s.gaveUp = nil
	onState, onGiveUp := s.onState, s.onGiveUp

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Unlock()

	if onState != nil {
		for _, state := range changes {
			onState(state)
		}
	}
	if gaveUp != nil && onGiveUp != nil {
		onGiveUp(gaveUp)
	}
}

// Err returns the reason the stream gave up, or nil
func (s *AlertStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateGivenUp {
		return nil
	}
	if s.lastErr == nil {
		return utils.ErrReconnectExhausted
	}
	if errors.Is(s.lastErr, utils.ErrReconnectExhausted) {
		return s.lastErr
	}
	return fmt.Errorf("%w: %w", utils.ErrReconnectExhausted, s.lastErr)
}
