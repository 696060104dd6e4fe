package sensorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"go.uber.org/zap"
)

// Client provides access to the sensor backend REST API
type Client struct {
	config     *config.APIConfig
	httpClient *http.Client
	logger     *utils.Logger
	baseURL    string
}

// NewClient creates a new sensor backend client
func NewClient(cfg *config.APIConfig, logger *utils.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger.Named("sensor_client"),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// APIError represents an error response from the sensor backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("sensor API error (%d): %s - %s", e.StatusCode, e.Message, e.Details)
}

// Unwrap classifies every API error as a network failure
func (e *APIError) Unwrap() error {
	return utils.ErrNetwork
}

// NodesResponse is the body of the node snapshot request
type NodesResponse struct {
	Count int                  `json:"count"`
	Data  []models.NodeReading `json:"data"`
}

// HistoryResponse is the body of the node history request
type HistoryResponse struct {
	NodeID string                    `json:"node_id"`
	Count  int                       `json:"count"`
	Data   []models.HistoricalSample `json:"data"`
}

// FetchAllNodes returns the latest reading of every node
func (c *Client) FetchAllNodes(ctx context.Context) ([]models.NodeReading, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/get_nodes")
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}

	var resp NodesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("fetch nodes: %w: %w", utils.ErrNetwork, err)
	}

	readings := make([]models.NodeReading, 0, len(resp.Data))
	for _, reading := range resp.Data {
		if reading.NodeID == "" {
			c.logger.Warn("Skipping node reading without node_id")
			continue
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// FetchNodeHistory returns the recorded readings of one node
func (c *Client) FetchNodeHistory(ctx context.Context, nodeID string) ([]models.HistoricalSample, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/get_data/"+url.PathEscape(nodeID))
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", nodeID, err)
	}

	var resp HistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w: %w", nodeID, utils.ErrNetwork, err)
	}

	samples := make([]models.HistoricalSample, 0, len(resp.Data))
	for _, sample := range resp.Data {
		if sample.NodeID == "" {
			sample.NodeID = nodeID
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// doRequest performs an HTTP request against the sensor backend
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	}

	c.logger.Debug("Sending request to sensor API",
		zap.String("method", method),
		zap.String("url", endpoint),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", utils.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", utils.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    http.StatusText(resp.StatusCode),
				Details:    string(respBody),
			}
		}

		message := errResp.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		details := errResp.Message
		if details == "" {
			details = errResp.Detail
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Details:    details,
		}
	}

	return respBody, nil
}
