// Package server exposes the engine operations as a JSON HTTP API: dataset
// upload and lifecycle plus the five query operations, with Prometheus
// metrics and structured request logging.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vegasq/datadeck/config"
	"github.com/vegasq/datadeck/dataset"
	"github.com/vegasq/datadeck/engine"
)

// Server wires the dataset store and engine behind a gin router.
type Server struct {
	cfg    config.Config
	store  *dataset.Store
	engine *engine.Engine
	router *gin.Engine
}

// New builds the server and its routes.
func New(cfg config.Config, store *dataset.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		store:  store,
		engine: engine.New(store),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), requestMetrics())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/dataset", s.handleUpload)
		v1.GET("/dataset", s.handleSample)
		v1.DELETE("/dataset", s.handleClear)
		v1.POST("/dataset/query", s.handleQuery)
		v1.POST("/dataset/stats", s.handleStats)
		v1.POST("/dataset/values", s.handleValues)
		v1.POST("/dataset/aggregate", s.handleAggregate)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datasetLoaded": s.store.Loaded()})
}
