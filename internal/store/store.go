package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/persistence"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrAlreadyStarted is returned by Start on a running store
var ErrAlreadyStarted = errors.New("store already started")

const publishTimeout = 5 * time.Second

// Config holds the store tuning knobs
type Config struct {
	PollInterval     time.Duration
	FetchTimeout     time.Duration
	HistorySize      int
	ArchiveRetention time.Duration
	RefreshInterval  time.Duration
	RefreshBurst     int
}

// NewConfig converts the application store configuration
func NewConfig(cfg *config.StoreConfig) Config {
	return Config{
		PollInterval:     cfg.PollInterval,
		FetchTimeout:     cfg.FetchTimeout,
		HistorySize:      cfg.HistorySize,
		ArchiveRetention: cfg.ArchiveRetention,
		RefreshInterval:  cfg.RefreshInterval,
		RefreshBurst:     cfg.RefreshBurst,
	}
}

// Option customizes a Store
type Option func(*Store)

// WithClock sets the clock used for polling and alert timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithNotifier sets the sink of user-visible notifications
func WithNotifier(notifier Notifier) Option {
	return func(s *Store) {
		s.notifier = notifier
	}
}

// WithPublisher sets the audit feed for alert lifecycle events
func WithPublisher(publisher AlertPublisher) Option {
	return func(s *Store) {
		s.publisher = publisher
	}
}

// Store is the real-time state of the dashboard. It merges node polling,
// pushed alerts and the persisted cache into one consistent set of views.
// Every mutation runs under mu; notifications, publishing and subscriber
// fan-out happen after mu is released.
type Store struct {
	cfg       Config
	source    NodeSource
	stream    AlertStream
	cache     *persistence.Adapter
	logger    *utils.Logger
	clock     clockwork.Clock
	notifier  Notifier
	publisher AlertPublisher
	limiter   *rate.Limiter

	mu           sync.Mutex
	nodes        map[string]models.Node
	history      map[string]*sampleRing
	active       []models.Alert
	archived     []models.Alert
	version      uint64
	fetchFailing bool

	subsMu    sync.Mutex
	subs      map[int]*subscriber
	nextSub   int
	subsCount atomic.Int32

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a store. Nothing is loaded or fetched until Start.
func New(cfg Config, source NodeSource, stream AlertStream, cache *persistence.Adapter, logger *utils.Logger, opts ...Option) *Store {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 100
	}
	if cfg.ArchiveRetention <= 0 {
		cfg.ArchiveRetention = 24 * time.Hour
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Second
	}
	if cfg.RefreshBurst <= 0 {
		cfg.RefreshBurst = 1
	}

	s := &Store{
		cfg:      cfg,
		source:   source,
		stream:   stream,
		cache:    cache,
		logger:   logger.Named("store"),
		clock:    clockwork.NewRealClock(),
		nodes:    make(map[string]models.Node),
		history:  make(map[string]*sampleRing),
		active:   []models.Alert{},
		archived: []models.Alert{},
		subs:     make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(rate.Every(cfg.RefreshInterval), cfg.RefreshBurst)

	return s
}

// Start hydrates the views from the cache, then starts polling and
// connects the alert stream.
func (s *Store) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	s.hydrate()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	ticker := s.clock.NewTicker(s.cfg.PollInterval)
	go s.pollLoop(runCtx, ticker, s.done)

	s.stream.Connect(s.IngestAlert)

	s.logger.Info("Store started",
		zap.Duration("poll_interval", s.cfg.PollInterval),
		zap.Int("history_size", s.cfg.HistorySize),
	)
	return nil
}

// Stop cancels polling, waits for the poll loop to exit and disconnects
// the alert stream. Stop on a stopped store is a no-op.
func (s *Store) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.cancel == nil {
		return
	}

	s.stream.Disconnect()
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil

	s.logger.Info("Store stopped")
}

// hydrate loads the three caches into the views
func (s *Store) hydrate() {
	nodes := s.cache.LoadNodes()
	active := s.cache.LoadAlerts(persistence.KeyActiveAlerts)
	archived := s.cache.LoadAlerts(persistence.KeyArchivedAlerts)

	s.mu.Lock()

	s.archived = sanitizeAlerts(archived, true, nil)
	s.active = sanitizeAlerts(active, false, alertIDs(s.archived))
	s.nodes = nodes

	relinked := false
	for id := range s.nodes {
		if s.relinkNodeLocked(id) {
			relinked = true
		}
	}
	expired := s.expireLocked(s.clock.Now())

	dirty := relinked || expired > 0 ||
		len(s.active) != len(active) || len(s.archived) != len(archived)
	if dirty {
		s.saveAlertsLocked()
		s.saveNodesLocked()
	}

	s.version++
	nodeCount, activeCount, archivedCount := len(s.nodes), len(s.active), len(s.archived)
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.broadcast(snap)

	s.logger.Info("Hydrated state from cache",
		zap.Int("nodes", nodeCount),
		zap.Int("active_alerts", activeCount),
		zap.Int("archived_alerts", archivedCount),
	)
}

// pollLoop polls once immediately and then on every tick
func (s *Store) pollLoop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	_ = s.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			_ = s.poll(ctx)
		}
	}
}

// poll fetches every node and merges the readings. A failed fetch leaves
// the views and the cache untouched.
func (s *Store) poll(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	readings, err := s.source.FetchAllNodes(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn("Failed to fetch sensor nodes", zap.Error(err))

		s.mu.Lock()
		firstFailure := !s.fetchFailing
		s.fetchFailing = true
		s.mu.Unlock()

		if firstFailure {
			s.notify(models.NewNotification("Error", "Failed to fetch sensor nodes. Please try again.",
				models.VariantDestructive, false, s.clock.Now()))
		}
		return fmt.Errorf("poll nodes: %w", err)
	}

	s.applyReadings(readings)
	return nil
}

// applyReadings overwrites node telemetry while keeping alert linkage
func (s *Store) applyReadings(readings []models.NodeReading) {
	s.mu.Lock()

	s.fetchFailing = false
	appended := 0
	for _, reading := range readings {
		node := models.Node{NodeReading: reading}
		if existing, ok := s.nodes[reading.NodeID]; ok {
			node.HasAlert = existing.HasAlert
			node.AlertIDs = existing.AlertIDs
		} else {
			node.AlertIDs = s.activeIDsForLocked(reading.NodeID)
			node.HasAlert = len(node.AlertIDs) > 0
		}
		if node.AlertIDs == nil {
			node.AlertIDs = []string{}
		}
		s.nodes[reading.NodeID] = node

		if s.ringLocked(reading.NodeID).Append(reading.Sample()) {
			appended++
		}
	}
	s.saveNodesLocked()

	s.version++
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.logger.Debug("Applied node readings",
		zap.Int("nodes", len(readings)),
		zap.Int("samples_appended", appended),
	)
	s.broadcast(snap)
}

// Refresh polls immediately. Calls beyond the configured rate fail with
// utils.ErrRateLimited.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.limiter.AllowN(s.clock.Now(), 1) {
		return fmt.Errorf("refresh: %w", utils.ErrRateLimited)
	}
	return s.poll(ctx)
}

func (s *Store) ringLocked(nodeID string) *sampleRing {
	ring, ok := s.history[nodeID]
	if !ok {
		ring = newSampleRing(s.cfg.HistorySize)
		s.history[nodeID] = ring
	}
	return ring
}

func (s *Store) saveNodesLocked() {
	_ = s.cache.SaveNodes(s.nodes)
}

func (s *Store) saveAlertsLocked() {
	_ = s.cache.SaveAlerts(persistence.KeyActiveAlerts, s.active)
	_ = s.cache.SaveAlerts(persistence.KeyArchivedAlerts, s.archived)
}

func (s *Store) notify(notification models.Notification) {
	if s.notifier == nil {
		s.logger.Info("Notification",
			zap.String("title", notification.Title),
			zap.String("description", notification.Description),
		)
		return
	}
	s.notifier.Notify(notification)
}

func (s *Store) publish(event string, alert models.Alert) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishAlert(ctx, event, alert); err != nil {
		s.logger.Warn("Failed to publish alert event",
			zap.String("event", event),
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}
