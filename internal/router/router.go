package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carebook/booking-api/internal/config"
	"github.com/carebook/booking-api/internal/middleware"
	"github.com/carebook/booking-api/pkg/metrics"
)

// Handler is anything that mounts routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	metrics *metrics.HTTPMetrics
}

// New assembles the gin engine with the shared middleware chain. Domain
// handlers mount under /api, health checks at the root.
func New(cfg *config.Config, m *metrics.HTTPMetrics, healthH Handler, apiHandlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{engine: engine, metrics: m}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		r.metricsMiddleware(),
	)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		})
		engine.Use(limiter.RateLimit())
	}

	root := engine.Group("")
	healthH.RegisterRoutes(root)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := engine.Group("/api")
	for _, h := range apiHandlers {
		h.RegisterRoutes(api)
	}

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath keeps the label cardinality bounded; raw URLs with ids
		// or emails would blow up the metric set.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		r.metrics.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.RequestsTotal.WithLabelValues(method, path, status).Inc()
		if c.Writer.Status() >= 500 {
			r.metrics.ErrorsTotal.WithLabelValues(method, path).Inc()
		}
	}
}
