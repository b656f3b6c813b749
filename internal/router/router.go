package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zen/internal/auth"
	"zen/internal/handler"
	"zen/internal/middleware"
)

func New(
	gateway *auth.Gateway,
	authHandler *handler.AuthHandler,
	configHandler *handler.ConfigHandler,
	sessionHandler *handler.SessionHandler,
	corsOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger), gin.Recovery(), middleware.CORS(corsOrigins))

	api := engine.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	configs := api.Group("/configs")
	configs.Use(middleware.Auth(gateway))
	configs.GET("", configHandler.List)
	configs.POST("", configHandler.Create)
	configs.PUT("/:id", configHandler.Update)
	configs.DELETE("/:id", configHandler.Delete)

	session := api.Group("/session")
	session.Use(middleware.Auth(gateway))
	session.POST("/start", sessionHandler.Start)
	session.POST("/:id/distraction", sessionHandler.AddDistraction)
	session.POST("/:id/input", sessionHandler.SaveInput)

	return engine
}
