package controllers

import (
	"net/http"

	"github.com/NammaLakes/dashboard/internal/sensorapi"
	"github.com/NammaLakes/dashboard/internal/services"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamStatus reports the alert stream connection
type StreamStatus interface {
	StreamState() sensorapi.State
	StreamErr() error
}

// HealthResponse defines the response of the health check
type HealthResponse struct {
	Status       string `json:"status"`
	Stream       string `json:"stream"`
	StreamError  string `json:"stream_error,omitempty"`
	StateVersion uint64 `json:"state_version"`
}

// SystemController handles health, refresh, summary and the browser websocket
type SystemController struct {
	store         *store.Store
	stream        StreamStatus
	notifications *services.NotificationService
	upgrader      websocket.Upgrader
	logger        *utils.Logger
}

// NewSystemController creates a new system controller
func NewSystemController(
	store *store.Store,
	stream StreamStatus,
	notifications *services.NotificationService,
	logger *utils.Logger,
) *SystemController {
	return &SystemController{
		store:         store,
		stream:        stream,
		notifications: notifications,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.Named("system_controller"),
	}
}

// RegisterRoutes registers the routes under /api
func (c *SystemController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/refresh", c.Refresh)
	router.GET("/summary", c.Summary)
}

// Health reports the alert stream state. The dashboard keeps serving cached
// and polled state after the stream gives up, so that is "degraded".
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse "Service health"
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	state := c.stream.StreamState()

	response := HealthResponse{
		Status:       "healthy",
		Stream:       state.String(),
		StateVersion: c.store.Version(),
	}
	if state == sensorapi.StateGivenUp {
		response.Status = "degraded"
		if err := c.stream.StreamErr(); err != nil {
			response.StreamError = err.Error()
		}
	}

	ctx.JSON(http.StatusOK, response)
}

// Refresh polls the sensor backend immediately
// @Summary Refresh node readings
// @Tags system
// @Success 204 "Refreshed"
// @Failure 429 {object} utils.ErrorResponse "Too many refreshes"
// @Failure 502 {object} utils.ErrorResponse "Sensor backend unavailable"
// @Router /api/refresh [post]
func (c *SystemController) Refresh(ctx *gin.Context) {
	if err := c.store.Refresh(ctx.Request.Context()); err != nil {
		utils.HandleError(ctx, err, c.logger)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary returns fleet averages and counts
// @Summary Fleet summary
// @Tags system
// @Produce json
// @Success 200 {object} store.Summary "Summary"
// @Router /api/summary [get]
func (c *SystemController) Summary(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.store.Summary())
}

// WebSocket upgrades the request and attaches the browser to the
// notification feed
// @Summary Notification feed
// @Description Pushes notifications and state_changed snapshots. Send {"action":"dismiss","id":...} to dismiss a persistent notification.
// @Tags system
// @Router /ws [get]
func (c *SystemController) WebSocket(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warn("Failed to upgrade websocket", zap.Error(err))
		return
	}

	c.notifications.RegisterClient(conn)
}
