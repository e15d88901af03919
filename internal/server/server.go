// Package server exposes the claim pipeline over HTTP. The API surface is
// thin I/O plumbing: all logic lives in the pipeline.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/claimwise/claimwise/internal/doctext"
	"github.com/claimwise/claimwise/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps claim document uploads
const maxUploadBytes = 10 << 20 // 10 MiB

// Server handles HTTP claim processing requests
type Server struct {
	pipeline *pipeline.Pipeline
}

// New creates a server over the given pipeline
func New(p *pipeline.Pipeline) *Server {
	return &Server{pipeline: p}
}

// Router builds the HTTP routes
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)
	router.POST("/process-claim", s.processClaim)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// processClaim accepts a claim document upload (PDF, HTML, or plain text)
// and returns the stable {claim, judge, report_markdown} triple. The only
// client-visible failure is an unreadable document; every other failure
// mode degrades inside the pipeline.
func (s *Server) processClaim(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file upload"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("could not open upload: %v", err)})
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("could not read upload: %v", err)})
		return
	}

	result, err := s.pipeline.ProcessDocument(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, doctext.ErrUnreadable) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Could not read file: %v", err)})
			return
		}
		log.WithError(err).Error("claim processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	log.WithFields(log.Fields{
		"claim_id": result.Claim.ClaimID,
		"decision": result.Judge.Decision,
		"degraded": result.AdjudicationDegraded,
	}).Info("claim processed")

	c.JSON(http.StatusOK, result)
}
