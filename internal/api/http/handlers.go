package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/diagnostics"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "keys": s.reg.Len()})
}

func (s *Server) listPaths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paths": s.reg.All()})
}

func (s *Server) getPath(c *gin.Context) {
	key := c.Param("key")
	path, ok := s.reg.Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown key", "key": key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "path": path})
}

type registerRequest struct {
	Path string `json:"path" binding:"required"`
}

func (s *Server) registerPath(c *gin.Context) {
	key := c.Param("key")

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.reg.Register(key, req.Path)
	path, _ := s.reg.Get(key)
	c.JSON(http.StatusOK, gin.H{"key": key, "path": path})
}

func (s *Server) ensureDirectory(c *gin.Context) {
	key := c.Param("key")
	if !s.reg.EnsureDirectory(key) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not ensure directory", "key": key})
		return
	}
	path, _ := s.reg.Get(key)
	c.JSON(http.StatusOK, gin.H{"key": key, "path": path})
}

func (s *Server) diagnose(c *gin.Context) {
	report := s.checker.Run()
	if s.metrics != nil {
		s.metrics.RecordDiagnosis(report.Stats.High, report.Stats.Medium)
	}
	c.JSON(http.StatusOK, report)
}

type repairRequest struct {
	Issues []diagnostics.Issue `json:"issues"`
}

func (s *Server) repair(c *gin.Context) {
	var req repairRequest
	// An empty body means "diagnose and repair everything".
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.repairer.Repair(req.Issues)
	if s.metrics != nil {
		s.metrics.RecordRepair(len(result.Repaired), len(result.Failed))
	}
	s.log.Info("repair requested via panel",
		zap.Int("repaired", len(result.Repaired)),
		zap.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, result)
}

func (s *Server) report(c *gin.Context) {
	format := c.DefaultQuery("format", diagnostics.FormatText)
	rendered, err := s.reporter.Render(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch format {
	case diagnostics.FormatHTML:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered))
	case diagnostics.FormatJSON:
		c.Data(http.StatusOK, "application/json", []byte(rendered))
	default:
		c.String(http.StatusOK, rendered)
	}
}

type snapshotRequest struct {
	Path string `json:"path"`
}

func (s *Server) exportSnapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.Export(req.Path); err != nil {
		// Losing configuration must be visible to the operator.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": true})
}

func (s *Server) importSnapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.Import(req.Path); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": true, "keys": s.reg.Len()})
}
