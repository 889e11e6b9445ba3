package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskmate/web-services/handlers"
	"github.com/taskmate/web-services/internal/backend"
	"github.com/taskmate/web-services/internal/config"
	"github.com/taskmate/web-services/pkg/logger"
	"github.com/taskmate/web-services/pkg/metrics"
)

// Marketing site service. Stateless: public blog posts and form submissions
// go straight to the backend, everything else is rendered from embedded
// templates and translation catalogs.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	site := handlers.NewSite(api, cfg.Site.BaseURL, cfg.Site.DefaultLocale, cfg.IsProduction())
	site.Register(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("SITE_PORT")
	if port == "" {
		port = "5081"
	}
	addr := cfg.Server.Host + ":" + port
	logger.Infof("starting marketing site on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
