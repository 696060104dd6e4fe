package api

import (
	_ "github.com/NammaLakes/dashboard/docs" // swagger docs
	"github.com/NammaLakes/dashboard/internal/api/controllers"
	"github.com/NammaLakes/dashboard/internal/api/middleware"
	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/services"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router manages the API routes and controllers
type Router struct {
	engine           *gin.Engine
	logger           *utils.Logger
	config           *config.Config
	serviceProvider  *services.ServiceProvider
	api              *gin.RouterGroup
	nodeController   *controllers.NodeController
	alertController  *controllers.AlertController
	systemController *controllers.SystemController
}

// NewRouter creates a new Router instance
func NewRouter(
	config *config.Config,
	logger *utils.Logger,
	serviceProvider *services.ServiceProvider,
) *Router {
	// Set Gin mode based on environment
	if config.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.LoggingMiddleware(logger))

	// The browser dashboard is served from another origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Origin"}
	engine.Use(cors.New(corsConfig))

	return &Router{
		engine:          engine,
		logger:          logger.Named("router"),
		config:          config,
		serviceProvider: serviceProvider,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes() {
	st := r.serviceProvider.GetStore()

	r.nodeController = controllers.NewNodeController(st, r.logger)
	r.alertController = controllers.NewAlertController(st, r.logger)
	r.systemController = controllers.NewSystemController(
		st,
		r.serviceProvider.GetSensorManager(),
		r.serviceProvider.GetNotificationService(),
		r.logger,
	)

	r.engine.GET("/health", r.systemController.Health)
	r.engine.GET("/ws", r.systemController.WebSocket)

	r.api = r.engine.Group("/api")
	r.nodeController.RegisterRoutes(r.api.Group("/nodes"))
	r.alertController.RegisterRoutes(r.api.Group("/alerts"))
	r.systemController.RegisterRoutes(r.api)

	// Add Swagger documentation if not in production
	if !r.config.Server.IsProduction() {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.logger.Info("API routes setup completed")
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
