package controllers

import (
	"fmt"
	"net/http"

	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// NodeController handles HTTP requests for sensor nodes
type NodeController struct {
	store  *store.Store
	logger *utils.Logger
}

// NewNodeController creates a new node controller
func NewNodeController(store *store.Store, logger *utils.Logger) *NodeController {
	return &NodeController{
		store:  store,
		logger: logger.Named("node_controller"),
	}
}

// RegisterRoutes registers the node routes
func (c *NodeController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", c.ListNodes)
	router.GET("/:id", c.GetNode)
	router.GET("/:id/history", c.GetNodeHistory)
}

// ListNodes returns the latest reading of every node
// @Summary List sensor nodes
// @Description Returns the latest reading of every node with its alert linkage, ordered by node id
// @Tags nodes
// @Produce json
// @Success 200 {array} models.Node "Sensor nodes"
// @Router /api/nodes [get]
func (c *NodeController) ListNodes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.store.Nodes())
}

// GetNode returns one node
// @Summary Get a sensor node
// @Tags nodes
// @Produce json
// @Param id path string true "Node ID"
// @Success 200 {object} models.Node "Sensor node"
// @Failure 404 {object} utils.ErrorResponse "Node not found"
// @Router /api/nodes/{id} [get]
func (c *NodeController) GetNode(ctx *gin.Context) {
	id := ctx.Param("id")

	node, ok := c.store.Node(id)
	if !ok {
		utils.HandleError(ctx, fmt.Errorf("node %s: %w", id, utils.ErrNotFound), c.logger)
		return
	}

	ctx.JSON(http.StatusOK, node)
}

// GetNodeHistory returns the retained samples of a node, oldest first.
// A node without retained samples is seeded from the sensor backend.
// @Summary Get node history
// @Tags nodes
// @Produce json
// @Param id path string true "Node ID"
// @Success 200 {array} models.HistoricalSample "Samples, oldest first"
// @Failure 502 {object} utils.ErrorResponse "Sensor backend unavailable"
// @Router /api/nodes/{id}/history [get]
func (c *NodeController) GetNodeHistory(ctx *gin.Context) {
	samples, err := c.store.NodeHistory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.HandleError(ctx, err, c.logger)
		return
	}

	ctx.JSON(http.StatusOK, samples)
}
