package artifact

import (
	"fmt"
	"math"
)

// StandardScaler centers and scales each column: (x - mean) / scale.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Transform returns the scaled copy of features. Zero scale entries pass
// the centered value through unscaled, matching how the trainer exports
// constant columns.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: got %d features, want %d", len(features), len(s.Mean))
	}
	scaled := make([]float64, len(features))
	for i, v := range features {
		divisor := s.Scale[i]
		if divisor == 0 {
			divisor = 1
		}
		scaled[i] = (v - s.Mean[i]) / divisor
	}
	return scaled, nil
}

// SoftmaxClassifier is a multinomial logistic model: one weight row and
// intercept per label, probabilities via softmax over the logits.
type SoftmaxClassifier struct {
	Weights    [][]float64
	Intercepts []float64
}

func (c *SoftmaxClassifier) logits(scaled []float64) ([]float64, error) {
	if len(c.Weights) > 0 && len(scaled) != len(c.Weights[0]) {
		return nil, fmt.Errorf("classifier: got %d features, want %d", len(scaled), len(c.Weights[0]))
	}
	logits := make([]float64, len(c.Weights))
	for i, row := range c.Weights {
		sum := c.Intercepts[i]
		for j, w := range row {
			sum += w * scaled[j]
		}
		logits[i] = sum
	}
	return logits, nil
}

// Predict returns the label index with the highest logit.
func (c *SoftmaxClassifier) Predict(scaled []float64) (int, error) {
	logits, err := c.logits(scaled)
	if err != nil {
		return 0, err
	}
	return argmax(logits), nil
}

// PredictProba returns the softmax distribution over labels.
func (c *SoftmaxClassifier) PredictProba(scaled []float64) ([]float64, error) {
	logits, err := c.logits(scaled)
	if err != nil {
		return nil, err
	}
	// Subtract the max logit before exponentiating to stay finite.
	max := logits[argmax(logits)]
	var total float64
	probs := make([]float64, len(logits))
	for i, l := range logits {
		probs[i] = math.Exp(l - max)
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs, nil
}

// MarginClassifier is a linear model that only exposes a hard decision,
// no probability interface. Scoring spreads a fixed pseudo-distribution
// around its prediction.
type MarginClassifier struct {
	Weights    [][]float64
	Intercepts []float64
}

// Predict returns the label index with the highest decision score.
func (c *MarginClassifier) Predict(scaled []float64) (int, error) {
	if len(c.Weights) > 0 && len(scaled) != len(c.Weights[0]) {
		return 0, fmt.Errorf("classifier: got %d features, want %d", len(scaled), len(c.Weights[0]))
	}
	scores := make([]float64, len(c.Weights))
	for i, row := range c.Weights {
		sum := c.Intercepts[i]
		for j, w := range row {
			sum += w * scaled[j]
		}
		scores[i] = sum
	}
	return argmax(scores), nil
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
