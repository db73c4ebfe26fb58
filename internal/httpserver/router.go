package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	healthHandler *HealthHandler,
	ruleHandler *RuleHandler,
	userHandler *UserHandler,
	limiter *RateLimiter,
	jwtSecret string,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), TraceMiddleware(), MetricsMiddleware(), RequestLogger(logger))

	// Health endpoints first
	r.GET(constants.EndpointHealth, healthHandler.Health)
	r.GET("/healthz", healthHandler.Live)
	r.HEAD("/healthz", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(constants.APIPrefix)
	api.GET(constants.EndpointHealth, healthHandler.Health)

	// Protected
	auth := api.Group("/")
	auth.Use(AuthMiddleware(jwtSecret), RateLimitMiddleware(limiter))
	{
		rules := auth.Group(constants.EndpointRules)
		rules.GET("", ruleHandler.List)
		rules.POST("", ruleHandler.Create)
		rules.POST("/evaluate", ruleHandler.Evaluate)
		rules.GET("/:id", ruleHandler.Get)
		rules.PUT("/:id", ruleHandler.Update)
		rules.DELETE("/:id", ruleHandler.Delete)

		users := auth.Group(constants.EndpointUsers)
		users.GET("/me", userHandler.Me)
		users.POST("/me", userHandler.Register)
		users.PUT("/me", userHandler.UpdateMe)
	}

	return &Router{Engine: r}
}
