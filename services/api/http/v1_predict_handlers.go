package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

type predictRequest struct {
	PowerOutputKW *float64 `json:"power_output_kw" binding:"required"`
	DESPercent    *float64 `json:"diesel_energy_share_percent" binding:"required"`
}

// handleV1Predict answers one operating-point query
// POST /api/v1/predict
func (s *Server) handleV1Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "power_output_kw and diesel_energy_share_percent are required"})
		return
	}
	q := predict.QueryFromPercent(*req.PowerOutputKW, *req.DESPercent)

	cached := false
	res, hit := s.lookup(c, q)
	if hit {
		cached = true
	} else {
		var err error
		res, err = s.twin.Predict(q)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if s.cache != nil {
			if err := s.cache.Set(c.Request.Context(), q, res); err != nil {
				s.log.Warn().Err(err).Stringer("query", q).Msg("cache prediction")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": res,
		"meta": gin.H{
			"dataset_id":   s.twin.Dataset.ID(),
			"cached":       cached,
			"rounded":      res.Flows.Rounded(),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) lookup(c *gin.Context, q predict.Query) (*predict.Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(c.Request.Context(), q)
}
