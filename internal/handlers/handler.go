package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ir_climate/internal/logger"
	"ir_climate/internal/service"
)

// Handler exposes the services over HTTP.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds the router. Device routes keep the paths and plain-text
// bodies existing remotes and automations already call.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerDeviceRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

// registerDeviceRoutes mounts the unauthenticated LAN surface.
func (h *Handler) registerDeviceRoutes(r *gin.Engine) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		r.Handle(method, "/send_ir", h.sendIR)
	}
	r.GET("/temp", h.temp)
	r.GET("/ws", h.wsConnect)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.POST("/sign-up", h.signUp)
	auth.POST("/sign-in", h.signIn)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	api.GET("/remote/state", h.getRemoteState)
	api.GET("/logs/", h.getLogs)
}
