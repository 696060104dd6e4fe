package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/NammaLakes/dashboard/internal/api/controllers"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNodeController(t *testing.T) {
	f := newAPIFixture(t)
	controllers.NewNodeController(f.store, f.Logger).RegisterRoutes(f.Router.Group("/api/nodes"))

	t.Run("Should return an empty list before the first poll", func(t *testing.T) {
		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	f.loadNodes(nodeReading("N2", 100, 25), nodeReading("N1", 100, 24))
	f.store.IngestAlert(models.AlertEvent{Message: "Critical sensor failure", Timestamp: 150, NodeID: "N1"})

	t.Run("Should list nodes ordered by id", func(t *testing.T) {
		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var nodes []models.Node
		f.ParseResponse(resp, &nodes)
		if assert.Len(t, nodes, 2) {
			assert.Equal(t, "N1", nodes[0].NodeID)
			assert.Equal(t, "N2", nodes[1].NodeID)
			assert.True(t, nodes[0].HasAlert)
			assert.Equal(t, []string{"150-Critical%20sensor%20"}, nodes[0].AlertIDs)
			assert.False(t, nodes[1].HasAlert)
			assert.Empty(t, nodes[1].AlertIDs)
		}
	})

	t.Run("Should get a node by id", func(t *testing.T) {
		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N2", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var node models.Node
		f.ParseResponse(resp, &node)
		assert.Equal(t, "N2", node.NodeID)
		assert.Equal(t, 25.0, node.Temperature)
	})

	t.Run("Should return 404 for an unknown node", func(t *testing.T) {
		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N9", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)

		var body utils.ErrorResponse
		f.ParseResponse(resp, &body)
		assert.Equal(t, "not_found", body.Error)
	})

	t.Run("Should return retained history without asking the backend", func(t *testing.T) {
		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N1/history", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var samples []models.HistoricalSample
		f.ParseResponse(resp, &samples)
		if assert.Len(t, samples, 1) {
			assert.Equal(t, 100.0, samples[0].Timestamp)
			assert.Equal(t, 24.0, samples[0].Temperature)
		}
	})

	t.Run("Should seed history of a node without samples", func(t *testing.T) {
		f.source.EXPECT().FetchNodeHistory(gomock.Any(), "N7").Return([]models.HistoricalSample{
			{Timestamp: 20, Temperature: 21},
			{Timestamp: 10, Temperature: 20},
		}, nil)

		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N7/history", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var samples []models.HistoricalSample
		f.ParseResponse(resp, &samples)
		if assert.Len(t, samples, 2) {
			assert.Equal(t, 10.0, samples[0].Timestamp)
			assert.Equal(t, 20.0, samples[1].Timestamp)
			assert.Equal(t, "N7", samples[0].NodeID)
		}
	})

	t.Run("Should map a backend failure to 502", func(t *testing.T) {
		f.source.EXPECT().FetchNodeHistory(gomock.Any(), "N8").
			Return(nil, fmt.Errorf("fetch history: %w", utils.ErrNetwork))

		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N8/history", nil, nil)
		assert.Equal(t, http.StatusBadGateway, resp.Code)

		var body utils.ErrorResponse
		f.ParseResponse(resp, &body)
		assert.Equal(t, "upstream_error", body.Error)
	})

	t.Run("Should hide unexpected errors", func(t *testing.T) {
		f.source.EXPECT().FetchNodeHistory(gomock.Any(), "N6").Return(nil, errors.New("boom"))

		resp := f.ExecuteRequest(http.MethodGet, "/api/nodes/N6/history", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.NotContains(t, resp.Body.String(), "boom")
	})
}
