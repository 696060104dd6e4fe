package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/sensorapi"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSensorBackend serves one node over REST and pushes one alert to every
// stream connection
func newSensorBackend(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get_nodes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 1,
			"data": []map[string]interface{}{{
				"node_id":          "N1",
				"timestamp":        100,
				"latitude":         12.97,
				"longitude":        77.59,
				"temperature":      22.0,
				"ph":               7.1,
				"dissolved_oxygen": 8.2,
			}},
		})
	})
	mux.HandleFunc("/api/monitoring/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteJSON(map[string]interface{}{
			"message":   "Temperature threshold exceeded: 30",
			"timestamp": 1000,
			"node_id":   "N1",
		})
		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL, streamURL string) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "memory"},
		API: config.APIConfig{
			BaseURL:          baseURL,
			StreamURL:        streamURL,
			RequestTimeout:   2 * time.Second,
			HandshakeTimeout: 2 * time.Second,
		},
		Store: config.StoreConfig{
			PollInterval:         time.Minute,
			FetchTimeout:         2 * time.Second,
			HistorySize:          10,
			ArchiveRetention:     24 * time.Hour,
			RefreshInterval:      time.Second,
			RefreshBurst:         1,
			MaxReconnectAttempts: 0,
			InitialBackoff:       time.Second,
			MaxBackoff:           time.Second,
			ExpirySchedule:       "@every 1m",
		},
	}
}

func TestServiceProvider(t *testing.T) {
	t.Run("Should wire the store to the backend", func(t *testing.T) {
		backend := newSensorBackend(t)
		streamURL := "ws" + strings.TrimPrefix(backend.URL, "http") + "/api/monitoring/ws"

		sp := NewServiceProvider(utils.NewNopLogger(), testConfig(backend.URL, streamURL))
		require.NoError(t, sp.Initialize(context.Background()))
		defer sp.Shutdown()

		st := sp.GetStore()
		require.Eventually(t, func() bool {
			node, ok := st.Node("N1")
			return ok && node.HasAlert
		}, 3*time.Second, 20*time.Millisecond)

		active := st.ActiveAlerts()
		require.Len(t, active, 1)
		assert.Equal(t, models.SeverityWarning, active[0].Type)
		assert.Equal(t, sensorapi.StateOpen, sp.GetSensorManager().StreamState())
		assert.Nil(t, sp.GetDatabase())
	})

	t.Run("Should raise a persistent connection lost notice", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"down"}`, http.StatusServiceUnavailable)
		}))
		defer backend.Close()
		streamURL := "ws" + strings.TrimPrefix(backend.URL, "http") + "/api/monitoring/ws"

		sp := NewServiceProvider(utils.NewNopLogger(), testConfig(backend.URL, streamURL))
		require.NoError(t, sp.Initialize(context.Background()))
		defer sp.Shutdown()

		require.Eventually(t, func() bool {
			return sp.GetSensorManager().StreamState() == sensorapi.StateGivenUp
		}, 3*time.Second, 20*time.Millisecond)

		// a browser connecting after the give-up still sees the notice
		conn := newHubServer(t, sp.GetNotificationService()).dial(t)
		for {
			msg := readMessage(t, conn)
			if msg.Type != NotificationTypeToast {
				continue
			}
			var got models.Notification
			require.NoError(t, json.Unmarshal(msg.Payload, &got))
			if got.Title != "Connection Lost" {
				continue
			}
			assert.True(t, got.Persistent)
			assert.Equal(t, models.VariantDestructive, got.Variant)
			assert.Equal(t, "Failed to maintain connection to alert system. Please refresh the page.", got.Description)
			return
		}
	})
}

func TestServiceProvider_RejectsBadSchedule(t *testing.T) {
	t.Run("Should fail and release the notification service", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:1", "ws://127.0.0.1:1/ws")
		cfg.Store.ExpirySchedule = "whenever"

		sp := NewServiceProvider(utils.NewNopLogger(), cfg)
		require.Error(t, sp.Initialize(context.Background()))

		select {
		case <-sp.GetNotificationService().done:
		default:
			t.Fatal("notification service still running after failed initialization")
		}
		assert.NoError(t, sp.Shutdown())
	})

	t.Run("Should close the cache database", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:1", "ws://127.0.0.1:1/ws")
		cfg.Database = config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "cache.db")}
		cfg.Store.ExpirySchedule = "whenever"

		sp := NewServiceProvider(utils.NewNopLogger(), cfg)
		require.Error(t, sp.Initialize(context.Background()))

		database := sp.GetDatabase()
		require.NotNil(t, database)
		sqlDB, err := database.DB.DB()
		require.NoError(t, err)
		assert.Error(t, sqlDB.Ping())

		assert.NoError(t, sp.Shutdown())
	})
}
