package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/analysis"
)

// handleV1Dataset returns the canonical records the twin was built on
// GET /api/v1/dataset?limit=&offset=
func (s *Server) handleV1Dataset(c *gin.Context) {
	limit, offset, ok := pageParams(c, 0)
	if !ok {
		return
	}

	records := s.twin.Dataset.Records()
	total := len(records)
	if offset > total {
		offset = total
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"meta": gin.H{
			"dataset_id":  s.twin.Dataset.ID(),
			"columns":     s.twin.Dataset.Columns(),
			"count":       len(records),
			"total_count": total,
			"offset":      offset,
		},
	})
}

// handleV1Correlations returns the Pearson matrix and the strongest pairs per column
// GET /api/v1/dataset/correlations?top=3
func (s *Server) handleV1Correlations(c *gin.Context) {
	top := 3
	if topStr := c.Query("top"); topStr != "" {
		parsed, err := strconv.Atoi(topStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top"})
			return
		}
		top = parsed
	}

	matrix := analysis.Correlations(s.twin.Dataset)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"matrix": matrix,
			"top":    matrix.Top(top),
		},
		"meta": gin.H{
			"dataset_id": s.twin.Dataset.ID(),
			"top":        top,
		},
	})
}

// handleV1ListDatasets lists persisted ingestion runs
// GET /api/v1/datasets?limit=&offset=
func (s *Server) handleV1ListDatasets(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset persistence is not configured"})
		return
	}

	limit, offset, ok := pageParams(c, 50)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	datasets, err := s.store.ListDatasets(ctx, limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": datasets,
		"meta": gin.H{
			"count":   len(datasets),
			"limit":   limit,
			"offset":  offset,
			"current": s.twin.Dataset.ID(),
		},
	})
}

// pageParams parses limit/offset; on failure the 400 response is already written.
func pageParams(c *gin.Context, defaultLimit int) (limit, offset int, ok bool) {
	limit = defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return 0, 0, false
		}
		limit = parsed
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return 0, 0, false
		}
		offset = parsed
	}
	return limit, offset, true
}
