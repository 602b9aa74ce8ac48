package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/faq-translate/internal/infra/config"
	"github.com/yanqian/faq-translate/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// gatherer may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		metricsMiddleware(m),
		corsMiddleware(cfg.HTTP.CORS.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/health/", handler.Health)

	if cfg.Metrics.Enabled && gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	faqs := router.Group("/faqs", rateLimitMiddleware(cfg.HTTP.RateLimit, m, logger))
	{
		faqs.GET("/", handler.ListFAQs)
		faqs.POST("/", handler.CreateFAQ)
		faqs.GET("/:id/", handler.GetFAQ)
		faqs.PUT("/:id/", handler.UpdateFAQ)
		faqs.PATCH("/:id/", handler.UpdateFAQ)
		faqs.DELETE("/:id/", handler.DeleteFAQ)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
