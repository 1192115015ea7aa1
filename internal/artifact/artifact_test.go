package artifact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() map[string]interface{} {
	return map[string]interface{}{
		"modelVersion":   "production_v1",
		"featureColumns": []string{"a", "b"},
		"scaler": map[string]interface{}{
			"mean":  []float64{0, 0},
			"scale": []float64{1, 2},
		},
		"classifier": map[string]interface{}{
			"type":       "softmax",
			"weights":    [][]float64{{1, 0}, {0, 1}},
			"intercepts": []float64{0, 0},
		},
		"labels": map[string]string{"0": "Inner Critic", "1": "Lonely Part"},
	}
}

func parseSpec(t *testing.T, spec map[string]interface{}) (*Bundle, error) {
	t.Helper()
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	return Parse(data)
}

func TestParseValidBundle(t *testing.T) {
	bundle, err := parseSpec(t, validSpec())
	require.NoError(t, err)

	assert.Equal(t, "production_v1", bundle.ModelVersion)
	assert.Equal(t, 2, bundle.NumLabels())

	name, ok := bundle.CharacterAt(1)
	assert.True(t, ok)
	assert.Equal(t, "Lonely Part", name)

	idx, ok := bundle.IndexOf("Inner Critic")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestParseRejectsMissingComponents(t *testing.T) {
	for _, missing := range []string{"featureColumns", "scaler", "classifier", "labels"} {
		t.Run(missing, func(t *testing.T) {
			spec := validSpec()
			delete(spec, missing)
			_, err := parseSpec(t, spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestParseRejectsDimensionMismatches(t *testing.T) {
	spec := validSpec()
	spec["scaler"] = map[string]interface{}{"mean": []float64{0}, "scale": []float64{1}}
	_, err := parseSpec(t, spec)
	assert.ErrorIs(t, err, ErrInvalidArtifact)

	spec = validSpec()
	spec["classifier"] = map[string]interface{}{
		"type":       "softmax",
		"weights":    [][]float64{{1, 0}},
		"intercepts": []float64{0},
	}
	_, err = parseSpec(t, spec)
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestParseRejectsBadLabels(t *testing.T) {
	spec := validSpec()
	spec["labels"] = map[string]string{"0": "Inner Critic", "7": "Lonely Part"}
	_, err := parseSpec(t, spec)
	assert.ErrorIs(t, err, ErrInvalidArtifact)

	spec = validSpec()
	spec["labels"] = map[string]string{"zero": "Inner Critic"}
	_, err = parseSpec(t, spec)
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestParseRejectsUnknownClassifierType(t *testing.T) {
	spec := validSpec()
	spec["classifier"] = map[string]interface{}{
		"type":       "forest",
		"weights":    [][]float64{{1, 0}, {0, 1}},
		"intercepts": []float64{0, 0},
	}
	_, err := parseSpec(t, spec)
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestParsePatternModels(t *testing.T) {
	spec := validSpec()
	spec["patternModels"] = map[string]interface{}{
		"Perfectionist": map[string]interface{}{
			"type":       "margin",
			"weights":    [][]float64{{1, 1}},
			"intercepts": []float64{0},
		},
	}
	spec["patternScalers"] = map[string]interface{}{
		"Perfectionist": map[string]interface{}{
			"mean":  []float64{0, 0},
			"scale": []float64{1, 1},
		},
	}

	bundle, err := parseSpec(t, spec)
	require.NoError(t, err)
	assert.Len(t, bundle.PatternModels, 1)
	assert.Len(t, bundle.PatternScalers, 1)

	// Sub-models are hard-decision refiners without a probability surface.
	_, ok := bundle.PatternModels["Perfectionist"].(ProbabilityClassifier)
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.json")
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestStandardScalerTransform(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{1, 2, 0}, Scale: []float64{2, 0, 1}}

	scaled, err := scaler.Transform([]float64{3, 5, -1})
	require.NoError(t, err)
	// Zero scale passes the centered value through.
	assert.Equal(t, []float64{1, 3, -1}, scaled)

	_, err = scaler.Transform([]float64{1})
	assert.Error(t, err)
}

func TestSoftmaxClassifier(t *testing.T) {
	c := &SoftmaxClassifier{
		Weights:    [][]float64{{1, 0}, {0, 1}, {0, 0}},
		Intercepts: []float64{0, 0, 0.5},
	}

	idx, err := c.Predict([]float64{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	probs, err := c.PredictProba([]float64{2, 0})
	require.NoError(t, err)
	require.Len(t, probs, 3)

	var total float64
	for _, p := range probs {
		assert.Greater(t, p, 0.0)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.Greater(t, probs[0], probs[1])
	assert.Greater(t, probs[0], probs[2])
}

func TestMarginClassifierHasNoProbabilityInterface(t *testing.T) {
	var c Classifier = &MarginClassifier{
		Weights:    [][]float64{{1, 0}, {0, 1}},
		Intercepts: []float64{0, 1},
	}

	idx, err := c.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, ok := c.(ProbabilityClassifier)
	assert.False(t, ok)
}
