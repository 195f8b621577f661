package handlers

import (
	"net/http"

	"gamecatalog/config"
	"gamecatalog/middleware"
	"gamecatalog/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes for the catalog API.
func NewRouter(cfg *config.Config, svc *GameService) *gin.Engine {
	monitoring.InitMetrics()

	r := gin.New()
	r.Use(Recovery(cfg.IsDevelopment()))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())
	r.Use(cors.New(corsConfig(cfg.FrontendURL)))

	r.GET("/health", Health)
	r.GET("/list", ListGamesHandler(svc, cfg.IsDevelopment()))
	r.GET("/metrics", monitoring.PrometheusHandler())

	r.NoRoute(NotFound)

	return r
}

func corsConfig(origin string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if origin == "*" {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = []string{origin}
	c.AllowCredentials = true
	return c
}
