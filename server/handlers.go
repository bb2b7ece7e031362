package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vegasq/datadeck/dataset"
	"github.com/vegasq/datadeck/engine"
	"github.com/vegasq/datadeck/loader"
	"github.com/vegasq/datadeck/metrics"
)

// uploadResponse describes the newly loaded dataset. Rows are not echoed
// back; callers fetch a sample separately.
type uploadResponse struct {
	ID          string                        `json:"id"`
	FileName    string                        `json:"fileName"`
	Headers     []string                      `json:"headers"`
	ColumnTypes map[string]dataset.ColumnType `json:"columnTypes"`
	TotalRows   int                           `json:"totalRows"`
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file: " + err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	tbl, err := loader.FromReader(file, header.Filename, loader.Options{MaxRows: s.cfg.MaxRows})
	if err != nil {
		metrics.EngineOps.WithLabelValues("load", "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A new upload fully supersedes the previous table and any state
	// derived from it.
	s.store.Load(tbl)
	metrics.EngineOps.WithLabelValues("load", "ok").Inc()
	metrics.DatasetRows.Set(float64(tbl.TotalRows))

	c.JSON(http.StatusOK, uploadResponse{
		ID:          tbl.ID,
		FileName:    tbl.FileName,
		Headers:     tbl.Headers,
		ColumnTypes: tbl.ColumnTypes,
		TotalRows:   tbl.TotalRows,
	})
}

func (s *Server) handleClear(c *gin.Context) {
	s.store.Clear()
	metrics.DatasetRows.Set(0)
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (s *Server) handleSample(c *gin.Context) {
	numRows := 0
	if raw := c.Query("numRows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "numRows must be an integer"})
			return
		}
		numRows = n
	}

	sample, err := s.engine.DataSample(numRows)
	if err != nil {
		s.respondError(c, "sample", err)
		return
	}
	metrics.EngineOps.WithLabelValues("sample", "ok").Inc()
	c.JSON(http.StatusOK, sample)
}

func (s *Server) handleQuery(c *gin.Context) {
	var req engine.QueryRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.engine.Query(req)
	if err != nil {
		s.respondError(c, "query", err)
		return
	}
	metrics.EngineOps.WithLabelValues("query", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleStats(c *gin.Context) {
	var req struct {
		Column string `json:"column"`
	}
	if !bindJSON(c, &req) {
		return
	}
	stats, err := s.engine.ColumnStats(req.Column)
	if err != nil {
		s.respondError(c, "stats", err)
		return
	}
	metrics.EngineOps.WithLabelValues("stats", "ok").Inc()
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleValues(c *gin.Context) {
	var req struct {
		Column string `json:"column"`
		Limit  int    `json:"limit,omitempty"`
	}
	if !bindJSON(c, &req) {
		return
	}
	dist, err := s.engine.ColumnValues(req.Column, req.Limit)
	if err != nil {
		s.respondError(c, "values", err)
		return
	}
	metrics.EngineOps.WithLabelValues("values", "ok").Inc()
	c.JSON(http.StatusOK, dist)
}

func (s *Server) handleAggregate(c *gin.Context) {
	var req engine.AggregateRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.engine.Aggregate(req)
	if err != nil {
		s.respondError(c, "aggregate", err)
		return
	}
	metrics.EngineOps.WithLabelValues("aggregate", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps engine errors onto HTTP statuses: an empty store is a
// conflict the caller resolves by uploading a file; everything else the
// engine rejects is a bad request (unknown column, bad operator/operation,
// bad sort literal) — the engine performs no I/O, so it has no
// internal-error class of its own.
func (s *Server) respondError(c *gin.Context, op string, err error) {
	metrics.EngineOps.WithLabelValues(op, "error").Inc()

	status := http.StatusBadRequest
	if errors.Is(err, dataset.ErrNoData) {
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
