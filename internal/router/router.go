package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/medisync/claims-api/internal/handler"
	authHandler "github.com/medisync/claims-api/internal/handler/auth"
	hospitalHandler "github.com/medisync/claims-api/internal/handler/hospital"
	insurerHandler "github.com/medisync/claims-api/internal/handler/insurer"
	patientHandler "github.com/medisync/claims-api/internal/handler/patient"
	"github.com/medisync/claims-api/internal/middleware"
)

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine    *gin.Engine
	authH     *authHandler.Handler
	patientH  *patientHandler.Handler
	hospitalH *hospitalHandler.Handler
	insurerH  *insurerHandler.Handler
	h         *handler.Handler
	metrics   *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	authH *authHandler.Handler,
	patientH *patientHandler.Handler,
	hospitalH *hospitalHandler.Handler,
	insurerH *insurerHandler.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:    engine,
		authH:     authH,
		patientH:  patientH,
		hospitalH: hospitalH,
		insurerH:  insurerH,
		h:         h,
		metrics:   newRouterMetrics(),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.CORS),
		middleware.BodyLimit(middleware.DefaultMaxBodyBytes),
	)

	if config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api")
	{
		api.GET("/health", r.h.HealthCheck)
		api.GET("/test", r.h.Test)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		r.authH.RegisterRoutes(api)
	}

	root := r.engine.Group("")
	r.patientH.RegisterRoutes(root)
	r.hospitalH.RegisterRoutes(root)
	r.insurerH.RegisterRoutes(root)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics() *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "claims_api_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claims_api_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
