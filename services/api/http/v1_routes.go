package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/dataset, /api/v1/models, /api/v1/predict
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Dataset endpoints - the canonical measurement table and its statistics
	dataset := v1.Group("/dataset")
	{
		dataset.GET("", s.handleV1Dataset)
		dataset.GET("/correlations", s.handleV1Correlations)
	}
	v1.GET("/datasets", s.handleV1ListDatasets)

	// Model endpoints - fitted artifacts and their metrics
	models := v1.Group("/models")
	{
		models.GET("", s.handleV1Models)
		models.GET("/efficiency/report", s.handleV1EfficiencyReport)
	}

	v1.POST("/predict", s.handleV1Predict)
}
