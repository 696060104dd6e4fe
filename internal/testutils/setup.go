// Package testutils holds shared setup for package tests
package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/db"
	dbmodels "github.com/NammaLakes/dashboard/internal/db/models"
	"github.com/NammaLakes/dashboard/internal/db/repository"
	"github.com/NammaLakes/dashboard/internal/persistence"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestSetup contains utilities for testing
type TestSetup struct {
	Router   *gin.Engine
	DB       *db.Database
	Cache    *persistence.Adapter
	Logger   *utils.Logger
	Config   *config.Config
	Cleanup  func()
	Requires *require.Assertions
}

// NewTestSetup creates a test setup backed by an in-memory SQLite cache
func NewTestSetup(t *testing.T) *TestSetup {
	gin.SetMode(gin.TestMode)

	// Create a test logger directly using zap for tests
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	zapLogger, err := zapConfig.Build()
	require.NoError(t, err, "Failed to create zap logger")

	logger := &utils.Logger{Logger: zapLogger}

	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "development"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:"},
		Log:      config.LogConfig{Level: "debug", Format: "console"},
	}

	gormDB, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	require.NoError(t, err, "Failed to create in-memory database")

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&dbmodels.CacheEntry{}), "Failed to migrate database")

	database := &db.Database{DB: gormDB}

	router := gin.New()
	router.Use(gin.Recovery())

	cleanup := func() {
		sqlDB.Close()
		zapLogger.Sync()
	}

	return &TestSetup{
		Router:   router,
		DB:       database,
		Cache:    persistence.NewAdapter(repository.NewRepositoryFactory(gormDB).Cache(), logger),
		Logger:   logger,
		Config:   cfg,
		Cleanup:  cleanup,
		Requires: require.New(t),
	}
}

// NewStore creates a store over the test cache. It is not started.
func (ts *TestSetup) NewStore(cfg store.Config, source store.NodeSource, stream store.AlertStream, opts ...store.Option) *store.Store {
	return store.New(cfg, source, stream, ts.Cache, ts.Logger, opts...)
}

// ExecuteRequest executes a test request and returns the response
func (ts *TestSetup) ExecuteRequest(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		ts.Requires.NoError(err, "Failed to marshal request body")
	}

	req, err := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	ts.Requires.NoError(err, "Failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	ts.Router.ServeHTTP(resp, req)

	return resp
}

// ParseResponse parses the JSON response into the provided struct
func (ts *TestSetup) ParseResponse(response *httptest.ResponseRecorder, target interface{}) {
	err := json.Unmarshal(response.Body.Bytes(), target)
	ts.Requires.NoError(err, "Failed to parse response body: %s", response.Body.String())
}
