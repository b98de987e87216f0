package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/server/handlers"
	"github.com/mamadbah2/foodtracker/internal/service/tracker"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.TrackerHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/", handler.Index)

	inventory := r.Group("/inventory")
	inventory.POST("", handler.AddItem)
	inventory.POST("/:id/adjust", handler.AdjustStock)
	inventory.POST("/:id/remove", handler.RowAction(tracker.ActionRemoveItem))

	orders := r.Group("/orders")
	orders.POST("", handler.AddOrder)
	orders.POST("/:id/cycle", handler.RowAction(tracker.ActionCycleStatus))
	orders.POST("/:id/remove", handler.RowAction(tracker.ActionRemoveOrder))

	suppliers := r.Group("/suppliers")
	suppliers.POST("", handler.AddSupplier)
	suppliers.POST("/:id/remove", handler.RowAction(tracker.ActionRemoveSupplier))

	api := r.Group("/api")
	api.GET("/state", handler.State)
	api.GET("/summary", handler.Summary)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
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
			zap.String("client_ip", c.ClientIP()))
	}
}
