package services

import (
	"context"
	"fmt"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/db"
	"github.com/NammaLakes/dashboard/internal/db/repository"
	"github.com/NammaLakes/dashboard/internal/kafka"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/persistence"
	"github.com/NammaLakes/dashboard/internal/sensorapi"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ProviderOption customizes a ServiceProvider
type ProviderOption func(*ServiceProvider)

// WithProviderClock sets the clock shared by the store, the alert stream
// and the audit publisher
func WithProviderClock(clock clockwork.Clock) ProviderOption {
	return func(sp *ServiceProvider) {
		sp.clock = clock
	}
}

// WithStreamOptions passes extra options to the alert stream
func WithStreamOptions(opts ...sensorapi.StreamOption) ProviderOption {
	return func(sp *ServiceProvider) {
		sp.streamOpts = append(sp.streamOpts, opts...)
	}
}

// ServiceProvider manages all services for the application
type ServiceProvider struct {
	logger     *utils.Logger
	config     *config.Config
	clock      clockwork.Clock
	streamOpts []sensorapi.StreamOption

	database            *db.Database
	sensorManager       *sensorapi.Manager
	store               *store.Store
	notificationService *NotificationService
	producer            *kafka.Producer
	expiryScheduler     *ExpiryScheduler
	cancel              context.CancelFunc
}

// NewServiceProvider creates a new service provider
func NewServiceProvider(logger *utils.Logger, config *config.Config, opts ...ProviderOption) *ServiceProvider {
	sp := &ServiceProvider{
		logger: logger.Named("services"),
		config: config,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Initialize opens the cache, wires the store to the sensor backend and
// starts every background service. On failure everything opened so far is
// released again.
func (sp *ServiceProvider) Initialize(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			sp.Shutdown()
		}
	}()

	blobs, err := sp.openCache()
	if err != nil {
		return err
	}

	sp.notificationService = NewNotificationService(sp.logger)
	sp.logger.Info("Notification service initialized")

	streamOpts := append([]sensorapi.StreamOption{
		sensorapi.WithClock(sp.clock),
		sensorapi.WithGiveUpHandler(sp.connectionLost),
	}, sp.streamOpts...)
	sp.sensorManager = sensorapi.NewManager(&sp.config.API, &sp.config.Store, sp.logger, streamOpts...)

	storeOpts := []store.Option{
		store.WithClock(sp.clock),
		store.WithNotifier(sp.notificationService),
	}

	if sp.config.Kafka.Enabled {
		sp.producer, err = kafka.NewProducer(&sp.config.Kafka, sp.logger)
		if err != nil {
			return fmt.Errorf("failed to create Kafka producer: %w", err)
		}
		publisher := NewKafkaAlertPublisher(sp.producer, sp.config.Kafka.Topic, sp.logger, sp.clock)
		storeOpts = append(storeOpts, store.WithPublisher(publisher))
		sp.logger.Info("Alert audit feed enabled", zap.String("topic", sp.config.Kafka.Topic))
	}

	sp.store = store.New(
		store.NewConfig(&sp.config.Store),
		sp.sensorManager,
		sp.sensorManager,
		persistence.NewAdapter(blobs, sp.logger),
		sp.logger,
		storeOpts...,
	)

	expiryScheduler, err := NewExpiryScheduler(sp.config.Store.ExpirySchedule, sp.store, sp.logger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	sp.cancel = cancel

	sp.notificationService.WatchStore(runCtx, sp.store)

	if err := sp.store.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start store: %w", err)
	}

	sp.expiryScheduler = expiryScheduler
	sp.expiryScheduler.Start()

	sp.logger.Info("All services initialized successfully")
	return nil
}

// openCache returns the blob store backing the persistence adapter
func (sp *ServiceProvider) openCache() (persistence.BlobStore, error) {
	if sp.config.Database.Driver == "memory" {
		sp.logger.Info("Using in-memory state cache")
		return persistence.NewMemoryStore(), nil
	}

	database, err := db.NewDatabase(&sp.config.Database, sp.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.AutoMigrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	sp.database = database

	return repository.NewRepositoryFactory(database.DB).Cache(), nil
}

// connectionLost tells every browser that the alert stream gave up
func (sp *ServiceProvider) connectionLost(err error) {
	sp.logger.Error("Alert stream gave up", zap.Error(err))
	sp.notificationService.Notify(models.NewNotification(
		"Connection Lost",
		"Failed to maintain connection to alert system. Please refresh the page.",
		models.VariantDestructive,
		true,
		sp.clock.Now(),
	))
}

// Shutdown performs a graceful shutdown of all services. It is safe to call
// more than once.
func (sp *ServiceProvider) Shutdown() error {
	sp.logger.Info("Shutting down services")

	if sp.expiryScheduler != nil {
		sp.expiryScheduler.Stop()
	}

	if sp.store != nil {
		sp.store.Stop()
	}

	if sp.cancel != nil {
		sp.cancel()
	}

	if sp.notificationService != nil {
		sp.notificationService.Close()
	}

	if sp.producer != nil {
		sp.producer.Close()
		sp.producer = nil
	}

	if sp.database != nil {
		if err := sp.database.Close(); err != nil {
			sp.logger.Error("Failed to close database", zap.Error(err))
		}
	}

	sp.logger.Info("Services shut down successfully")
	return nil
}

// GetStore returns the real-time state store
func (sp *ServiceProvider) GetStore() *store.Store {
	return sp.store
}

// GetSensorManager returns the sensor backend manager
func (sp *ServiceProvider) GetSensorManager() *sensorapi.Manager {
	return sp.sensorManager
}

// GetNotificationService returns the notification service
func (sp *ServiceProvider) GetNotificationService() *NotificationService {
	return sp.notificationService
}

// GetDatabase returns the cache database, nil with the memory driver
func (sp *ServiceProvider) GetDatabase() *db.Database {
	return sp.database
}
