package service

import (
	"context"
	"log"

	"innerparts/internal/cache"
	"innerparts/internal/model"
	"innerparts/internal/predictor"
)

// PredictionService fronts the prediction pipeline with a result cache.
// The pipeline is deterministic, so a cached result is byte-identical to
// a recomputed one.
type PredictionService struct {
	predictor *predictor.Predictor
	cache     cache.PredictionCache
}

// NewPredictionService creates a new prediction service
func NewPredictionService(p *predictor.Predictor, c cache.PredictionCache) *PredictionService {
	return &PredictionService{predictor: p, cache: c}
}

// Predict analyzes an answer set, serving from cache when possible.
// Cache failures are logged and bypassed; they never fail a request.
func (s *PredictionService) Predict(ctx context.Context, answers model.Answers) *model.PredictionResult {
	cached, err := s.cache.Get(ctx, answers)
	if err != nil {
		log.Printf("prediction cache read failed: %v", err)
	} else if cached != nil {
		return cached
	}

	result := s.predictor.Predict(answers)

	if result.Success {
		if err := s.cache.Set(ctx, answers, result); err != nil {
			log.Printf("prediction cache write failed: %v", err)
		}
	}

	return result
}
