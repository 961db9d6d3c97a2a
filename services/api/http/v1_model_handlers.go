package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleV1Models returns both fitted artifacts with their parameters and metrics
// GET /api/v1/models
func (s *Server) handleV1Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"efficiency":   s.twin.Efficiency,
			"exhaust_temp": s.twin.Exhaust,
		},
		"meta": gin.H{
			"dataset_id": s.twin.Dataset.ID(),
		},
	})
}

// handleV1EfficiencyReport compares the efficiency model with the closest measurement
// GET /api/v1/models/efficiency/report?power=10
func (s *Server) handleV1EfficiencyReport(c *gin.Context) {
	power, err := strconv.ParseFloat(c.Query("power"), 64)
	if err != nil || power <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "power must be a number > 0"})
		return
	}

	report, err := s.twin.Report(power)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
