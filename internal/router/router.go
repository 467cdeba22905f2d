package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/telesante/telesante-api/internal/handler"
	structureH "github.com/telesante/telesante-api/internal/handler/structure"
	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/pkg/validator"
)

// Handler registers a set of routes on a router group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine         *gin.Engine
	auth           *middleware.AuthMiddleware
	authH          Handler
	userH          Handler
	appointmentH   Handler
	availabilityH  Handler
	measurementH   Handler
	conseilH       Handler
	ordonnanceH    Handler
	notificationH  Handler
	messageH       Handler
	alertH         Handler
	ficheH         Handler
	structureH     *structureH.Handler
	h              *handler.Handler
	metrics        *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS  float64
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type Handlers struct {
	Auth         Handler
	User         Handler
	Appointment  Handler
	Availability Handler
	Measurement  Handler
	Conseil      Handler
	Ordonnance   Handler
	Notification Handler
	Message      Handler
	Alert        Handler
	Fiche        Handler
	Structure    *structureH.Handler
	Base         *handler.Handler
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	validator.RegisterCustomValidations()

	engine := gin.New()
	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         handlers.Auth,
		userH:         handlers.User,
		appointmentH:  handlers.Appointment,
		availabilityH: handlers.Availability,
		measurementH:  handlers.Measurement,
		conseilH:      handlers.Conseil,
		ordonnanceH:   handlers.Ordonnance,
		notificationH: handlers.Notification,
		messageH:      handlers.Message,
		alertH:        handlers.Alert,
		ficheH:        handlers.Fiche,
		structureH:    handlers.Structure,
		h:             handlers.Base,
		metrics:       metrics,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
	// Structure lookup and proximity search stay public.
	r.structureH.RegisterRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.userH.RegisterRoutes(rg)
	r.appointmentH.RegisterRoutes(rg)
	r.measurementH.RegisterRoutes(rg)
	r.notificationH.RegisterRoutes(rg)
	r.messageH.RegisterRoutes(rg)
	r.alertH.RegisterRoutes(rg)
	r.ficheH.RegisterRoutes(rg)
	r.conseilH.RegisterRoutes(rg)
	r.ordonnanceH.RegisterRoutes(rg)
	r.availabilityH.RegisterRoutes(rg)

	admin := rg.Group("")
	admin.Use(r.auth.RequireRoles(model.RoleAdmin))
	r.structureH.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
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
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
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
