package controllers

import (
	"fmt"
	"net/http"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// AlertController handles HTTP requests for active and archived alerts
type AlertController struct {
	store  *store.Store
	logger *utils.Logger
}

// NewAlertController creates a new alert controller
func NewAlertController(store *store.Store, logger *utils.Logger) *AlertController {
	return &AlertController{
		store:  store,
		logger: logger.Named("alert_controller"),
	}
}

// RegisterRoutes registers the alert routes
func (c *AlertController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", c.ListAlerts)
	router.GET("/:id", c.GetAlert)
	router.POST("/:id/resolve", c.ResolveAlert)
	router.POST("/resolve-all", c.ResolveAll)
	router.DELETE("/archived", c.ClearArchived)
	router.DELETE("/archived/:id", c.DismissArchived)
}

// ListAlertsQuery defines the query parameters for listing alerts
type ListAlertsQuery struct {
	State string `form:"state" binding:"omitempty,oneof=active archived"`
	Type  string `form:"type" binding:"omitempty,oneof=error warning info"`
}

// ResolveAllQuery defines the query parameters for resolving alerts in bulk
type ResolveAllQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=error warning info"`
}

// ResolveAllResponse defines the response for resolving alerts in bulk
type ResolveAllResponse struct {
	Resolved int            `json:"resolved"`
	Alerts   []models.Alert `json:"alerts"`
}

// ClearArchivedResponse defines the response for clearing the archive
type ClearArchivedResponse struct {
	Removed int `json:"removed"`
}

// ListAlerts returns one page of active or archived alerts
// @Summary List alerts
// @Description Active alerts are ordered newest first, archived alerts most recently resolved first
// @Tags alerts
// @Produce json
// @Param state query string false "active (default) or archived"
// @Param type query string false "error, warning or info"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Alerts"
// @Failure 400 {object} utils.ValidationErrorResponse "Invalid query"
// @Router /api/alerts [get]
func (c *AlertController) ListAlerts(ctx *gin.Context) {
	var query ListAlertsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		utils.HandleValidationErrors(ctx, err)
		return
	}

	alerts, err := c.store.FilterAlerts(query.State, models.Severity(query.Type))
	if err != nil {
		utils.HandleError(ctx, err, c.logger)
		return
	}

	pagination := utils.GetPaginationFromContext(ctx)
	ctx.JSON(http.StatusOK, utils.NewPaginatedResponse(
		utils.Paginate(alerts, pagination),
		pagination,
		len(alerts),
	))
}

// GetAlert returns one alert from either list
// @Summary Get an alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} models.Alert "Alert"
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Router /api/alerts/{id} [get]
func (c *AlertController) GetAlert(ctx *gin.Context) {
	id := ctx.Param("id")

	alert, ok := c.store.FindAlert(id)
	if !ok {
		utils.HandleError(ctx, fmt.Errorf("alert %s: %w", id, utils.ErrNotFound), c.logger)
		return
	}

	ctx.JSON(http.StatusOK, alert)
}

// ResolveAlert moves an active alert to the archive
// @Summary Resolve an alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} models.Alert "Archived alert"
// @Failure 404 {object} utils.ErrorResponse "No active alert with that id"
// @Router /api/alerts/{id}/resolve [post]
func (c *AlertController) ResolveAlert(ctx *gin.Context) {
	id := ctx.Param("id")

	alert, ok := c.store.ResolveAlert(id)
	if !ok {
		utils.HandleError(ctx, fmt.Errorf("active alert %s: %w", id, utils.ErrNotFound), c.logger)
		return
	}

	ctx.JSON(http.StatusOK, alert)
}

// ResolveAll resolves every active alert, or every active alert of one type
// @Summary Resolve alerts in bulk
// @Tags alerts
// @Produce json
// @Param type query string false "error, warning or info"
// @Success 200 {object} ResolveAllResponse "Resolved alerts"
// @Failure 400 {object} utils.ValidationErrorResponse "Invalid query"
// @Router /api/alerts/resolve-all [post]
func (c *AlertController) ResolveAll(ctx *gin.Context) {
	var query ResolveAllQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		utils.HandleValidationErrors(ctx, err)
		return
	}

	resolved := c.store.ResolveAll(models.Severity(query.Type))
	ctx.JSON(http.StatusOK, ResolveAllResponse{
		Resolved: len(resolved),
		Alerts:   resolved,
	})
}

// DismissArchived deletes one archived alert
// @Summary Dismiss an archived alert
// @Tags alerts
// @Param id path string true "Alert ID"
// @Success 204 "Dismissed"
// @Failure 404 {object} utils.ErrorResponse "No archived alert with that id"
// @Router /api/alerts/archived/{id} [delete]
func (c *AlertController) DismissArchived(ctx *gin.Context) {
	id := ctx.Param("id")

	if !c.store.DismissArchived(id) {
		utils.HandleError(ctx, fmt.Errorf("archived alert %s: %w", id, utils.ErrNotFound), c.logger)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ClearArchived deletes every archived alert
// @Summary Clear the archive
// @Tags alerts
// @Produce json
// @Success 200 {object} ClearArchivedResponse "Number of alerts removed"
// @Router /api/alerts/archived [delete]
func (c *AlertController) ClearArchived(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ClearArchivedResponse{Removed: c.store.ClearArchived()})
}
