package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceLabelThresholds(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "Very High Confidence"},
		{0.90, "Very High Confidence"}, // closed boundary
		{0.8999, "High Confidence"},
		{0.85, "High Confidence"},
		{0.80, "Moderate-High Confidence"},
		{0.75, "Moderate Confidence"},
		{0.70, "Moderate Confidence"},
		{0.60, "Low-Moderate Confidence"},
		{0.50, "Low Confidence"},
		{0.30, "Very Low Confidence"}, // closed boundary
		{0.2999, "Minimal Confidence"},
		{0.0, "Minimal Confidence"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLabel(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestFailedPrediction(t *testing.T) {
	result := FailedPrediction(errors.New("scaler exploded"))
	assert.False(t, result.Success)
	assert.Equal(t, "scaler exploded", result.Error)
	assert.NotNil(t, result.Predictions)
	assert.Empty(t, result.Predictions)
}

func TestAnswersMissing(t *testing.T) {
	complete := Answers{}
	for _, key := range RequiredQuestions() {
		complete[key] = "0"
	}
	assert.Empty(t, complete.Missing())

	delete(complete, "Q4")
	delete(complete, "Q13")
	assert.Equal(t, []string{"Q4", "Q13"}, complete.Missing())

	empty := Answers{}
	assert.Len(t, empty.Missing(), QuestionCount)
}
