package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/server/handlers"
	"github.com/alibiomar/ashe-admin-api/internal/service/auth"
)

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Sales         *handlers.SalesHandler
	Spendings     *handlers.SpendingHandler
	Stats         *handlers.StatsHandler
	Catalog       *handlers.CatalogHandler
	Orders        *handlers.OrderHandler
	Subscribers   *handlers.SubscriberHandler
	Notifications *handlers.NotificationHandler
}

// New wires the Gin engine with required routes and middlewares. Everything
// except login and the health probe sits behind the JWT guard.
func New(h Handlers, authSvc auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/auth/login", h.Auth.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(jwtMiddleware(authSvc, logger))

	api.POST("/offline-sales", h.Sales.Record)
	api.GET("/offline-sales", h.Sales.List)

	api.POST("/spendings", h.Spendings.Record)
	api.GET("/spendings", h.Spendings.List)
	api.DELETE("/spendings", h.Spendings.Delete)

	api.GET("/stats", h.Stats.Get)

	api.GET("/products", h.Catalog.List)
	api.POST("/products", h.Catalog.Create)
	api.GET("/products/:id", h.Catalog.Get)
	api.PUT("/products/:id", h.Catalog.Update)
	api.DELETE("/products/:id", h.Catalog.Delete)

	api.GET("/orders", h.Orders.List)
	api.PATCH("/orders/:id/status", h.Orders.UpdateStatus)

	api.GET("/subscribers", h.Subscribers.List)

	api.POST("/notifications/push", h.Notifications.SendPush)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func jwtMiddleware(authSvc auth.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		if err := authSvc.Verify(token); err != nil {
			logger.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
