package sensorapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.APIConfig{
		BaseURL:        server.URL + "/",
		APIToken:       "secret",
		RequestTimeout: 2 * time.Second,
	}, utils.NewNopLogger())
}

func TestClient_FetchAllNodes(t *testing.T) {
	t.Run("Should decode nodes and skip entries without id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/get_nodes", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":3,"data":[
				{"node_id":"N1","timestamp":100,"datetime":"1970-01-01T00:01:40Z","latitude":12.97,"longitude":77.59,"temperature":22.0,"ph":7.1,"dissolved_oxygen":8.2,"maintenance_required":0},
				{"node_id":"N2","timestamp":101,"temperature":24.5,"ph":6.8,"dissolved_oxygen":5.1,"maintenance_required":1},
				{"timestamp":102,"temperature":1}
			]}`))
		})

		nodes, err := client.FetchAllNodes(context.Background())
		require.NoError(t, err)
		require.Len(t, nodes, 2)

		assert.Equal(t, "N1", nodes[0].NodeID)
		assert.Equal(t, 100.0, nodes[0].Timestamp)
		assert.Equal(t, 12.97, nodes[0].Latitude)
		assert.Equal(t, 8.2, nodes[0].DissolvedOxygen)
		assert.False(t, nodes[0].NeedsMaintenance())
		assert.True(t, nodes[1].NeedsMaintenance())
	})
}

func TestClient_FetchNodeHistory(t *testing.T) {
	t.Run("Should escape the id and stamp samples", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/get_data/N%201", r.URL.EscapedPath())
			w.Write([]byte(`{"node_id":"N 1","count":2,"data":[
				{"timestamp":100,"temperature":22,"ph":7,"dissolved_oxygen":8},
				{"node_id":"N 1","timestamp":105,"temperature":23.5,"ph":7,"dissolved_oxygen":8}
			]}`))
		})

		samples, err := client.FetchNodeHistory(context.Background(), "N 1")
		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.Equal(t, "N 1", samples[0].NodeID)
		assert.Equal(t, 23.5, samples[1].Temperature)
	})
}

func TestClient_Errors(t *testing.T) {
	t.Run("Should surface the API error detail", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"database offline"}`))
		})

		_, err := client.FetchAllNodes(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrNetwork)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Equal(t, "database offline", apiErr.Details)
	})

	t.Run("Should handle a non JSON error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := client.FetchNodeHistory(context.Background(), "N1")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Internal Server Error", apiErr.Message)
	})

	t.Run("Should report a malformed body as a parse error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count":`))
		})

		_, err := client.FetchAllNodes(context.Background())
		assert.ErrorIs(t, err, utils.ErrNetwork)
	})

	t.Run("Should report a refused connection as a network error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := NewClient(&config.APIConfig{BaseURL: server.URL}, utils.NewNopLogger())
		_, err := client.FetchAllNodes(context.Background())
		assert.ErrorIs(t, err, utils.ErrNetwork)
	})

	t.Run("Should stop when the context is canceled", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.FetchAllNodes(ctx)
		assert.ErrorIs(t, err, utils.ErrNetwork)
	})
}
