package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/amzprice/api/handler"
	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/pricer"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
func NewRouter(p *pricer.Pricer, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(cfg.Extract.Strategy, startTime))

	// Price lookup: query string, JSON body, or a raw invocation payload.
	v1.GET("/price", handler.PriceQuery(p))
	v1.POST("/price", handler.PriceBody(p))
	v1.POST("/invoke", handler.Invoke(p))

	return r
}
