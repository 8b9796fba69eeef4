package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	"github.com/ymatsuda/clinic-survey-api/internal/middleware"
)

// Handler registers a set of routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// SplitHandler exposes routes on both the public and the admin surface.
type SplitHandler interface {
	RegisterPublicRoutes(*gin.RouterGroup)
	RegisterAdminRoutes(*gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	authH      Handler
	clinicH    SplitHandler
	doctorH    SplitHandler
	menuH      SplitHandler
	optionH    SplitHandler
	questionH  SplitHandler
	surveyH    Handler
	reviewH    Handler
	dashboardH Handler
	healthH    *handler.HealthHandler
	metrics    *routerMetrics
	config     RouterConfig
}

type RouterConfig struct {
	RateLimit       rate.Limit
	RateBurst       int
	ReviewRateLimit rate.Limit
	ReviewRateBurst int
	CORSConfig      middleware.CORSConfig
	MetricsPrefix   string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	clinicH SplitHandler,
	doctorH SplitHandler,
	menuH SplitHandler,
	optionH SplitHandler,
	questionH SplitHandler,
	surveyH Handler,
	reviewH Handler,
	dashboardH Handler,
	healthH *handler.HealthHandler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:     engine,
		auth:       auth,
		authH:      authH,
		clinicH:    clinicH,
		doctorH:    doctorH,
		menuH:      menuH,
		optionH:    optionH,
		questionH:  questionH,
		surveyH:    surveyH,
		reviewH:    reviewH,
		dashboardH: dashboardH,
		healthH:    healthH,
		metrics:    initRouterMetrics(config.MetricsPrefix),
		config:     config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.healthH.Health)
	r.engine.GET("/metrics", r.metrics.handler())

	api := r.engine.Group("/api/v1")

	r.setupPublicRoutes(api)

	protected := api.Group("/admin")
	protected.Use(r.auth.Authenticate())
	r.setupAdminRoutes(protected)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
	r.clinicH.RegisterPublicRoutes(rg)
	r.doctorH.RegisterPublicRoutes(rg)
	r.menuH.RegisterPublicRoutes(rg)
	r.optionH.RegisterPublicRoutes(rg)
	r.questionH.RegisterPublicRoutes(rg)
	r.surveyH.RegisterRoutes(rg)

	// Review generation calls out to a paid API, so it carries its own
	// tighter limiter on top of the global one.
	reviewLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  r.config.ReviewRateLimit,
		Burst: r.config.ReviewRateBurst,
	})
	reviews := rg.Group("")
	reviews.Use(reviewLimiter.RateLimit())
	r.reviewH.RegisterRoutes(reviews)
}

func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	r.clinicH.RegisterAdminRoutes(rg)
	r.doctorH.RegisterAdminRoutes(rg)
	r.menuH.RegisterAdminRoutes(rg)
	r.optionH.RegisterAdminRoutes(rg)
	r.questionH.RegisterAdminRoutes(rg)
	r.dashboardH.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

type routerMetrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	m.registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (m *routerMetrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
