package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrInvalidArtifact marks a model bundle that cannot be served. Load
// failures are fatal at process start; the service must not come up
// with a partial bundle.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Scaler transforms a raw feature row into the model's input space.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Classifier predicts a label index for a scaled feature row.
type Classifier interface {
	Predict(scaled []float64) (int, error)
}

// ProbabilityClassifier additionally exposes the full distribution over
// labels. Scoring falls back to a fixed pseudo-distribution when the
// bundled classifier does not implement it.
type ProbabilityClassifier interface {
	Classifier
	PredictProba(scaled []float64) ([]float64, error)
}

// Bundle is the immutable trained-model artifact: primary classifier and
// scaler, per-pattern sub-models (loaded and validated, not yet consulted
// in scoring), the canonical feature column order and the label index.
type Bundle struct {
	ModelVersion        string
	FeatureColumns      []string
	Scaler              Scaler
	Classifier          Classifier
	PatternModels       map[string]Classifier
	PatternScalers      map[string]Scaler
	PatternDistribution map[string]float64

	idxToChar map[int]string
	charToIdx map[string]int
}

// NumLabels returns the size of the label space.
func (b *Bundle) NumLabels() int {
	return len(b.idxToChar)
}

// CharacterAt resolves a label index to its character name.
func (b *Bundle) CharacterAt(idx int) (string, bool) {
	name, ok := b.idxToChar[idx]
	return name, ok
}

// IndexOf resolves a character name to its label index.
func (b *Bundle) IndexOf(name string) (int, bool) {
	idx, ok := b.charToIdx[name]
	return idx, ok
}

type scalerSpec struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type classifierSpec struct {
	Type       string      `json:"type"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

type bundleSpec struct {
	ModelVersion        string                    `json:"modelVersion"`
	FeatureColumns      []string                  `json:"featureColumns"`
	Scaler              *scalerSpec               `json:"scaler"`
	Classifier          *classifierSpec           `json:"classifier"`
	PatternModels       map[string]classifierSpec `json:"patternModels"`
	PatternScalers      map[string]scalerSpec     `json:"patternScalers"`
	Labels              map[string]string         `json:"labels"`
	PatternDistribution map[string]float64        `json:"patternDistribution"`
}

// Load reads and validates a model bundle from a JSON file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidArtifact, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a model bundle from JSON bytes.
func Parse(data []byte) (*Bundle, error) {
	var spec bundleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidArtifact, err)
	}

	if len(spec.FeatureColumns) == 0 {
		return nil, fmt.Errorf("%w: missing featureColumns", ErrInvalidArtifact)
	}
	if spec.Scaler == nil {
		return nil, fmt.Errorf("%w: missing scaler", ErrInvalidArtifact)
	}
	if spec.Classifier == nil {
		return nil, fmt.Errorf("%w: missing classifier", ErrInvalidArtifact)
	}
	if len(spec.Labels) == 0 {
		return nil, fmt.Errorf("%w: missing labels", ErrInvalidArtifact)
	}

	idxToChar := make(map[int]string, len(spec.Labels))
	charToIdx := make(map[string]int, len(spec.Labels))
	for key, name := range spec.Labels {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: label index %q is not numeric", ErrInvalidArtifact, key)
		}
		idxToChar[idx] = name
		charToIdx[name] = idx
	}
	for i := 0; i < len(idxToChar); i++ {
		if _, ok := idxToChar[i]; !ok {
			return nil, fmt.Errorf("%w: label index %d missing from contiguous range", ErrInvalidArtifact, i)
		}
	}

	scaler, err := buildScaler(*spec.Scaler, len(spec.FeatureColumns))
	if err != nil {
		return nil, err
	}

	classifier, err := buildClassifier(*spec.Classifier, len(idxToChar), len(spec.FeatureColumns))
	if err != nil {
		return nil, err
	}

	patternModels := make(map[string]Classifier, len(spec.PatternModels))
	for name, cs := range spec.PatternModels {
		// Sub-models are binary refiners over the same feature space.
		pm, err := buildClassifier(cs, len(cs.Weights), len(spec.FeatureColumns))
		if err != nil {
			return nil, fmt.Errorf("pattern model %s: %w", name, err)
		}
		patternModels[name] = pm
	}

	patternScalers := make(map[string]Scaler, len(spec.PatternScalers))
	for name, ss := range spec.PatternScalers {
		ps, err := buildScaler(ss, len(spec.FeatureColumns))
		if err != nil {
			return nil, fmt.Errorf("pattern scaler %s: %w", name, err)
		}
		patternScalers[name] = ps
	}

	version := spec.ModelVersion
	if version == "" {
		version = "production_v1"
	}

	return &Bundle{
		ModelVersion:        version,
		FeatureColumns:      spec.FeatureColumns,
		Scaler:              scaler,
		Classifier:          classifier,
		PatternModels:       patternModels,
		PatternScalers:      patternScalers,
		PatternDistribution: spec.PatternDistribution,
		idxToChar:           idxToChar,
		charToIdx:           charToIdx,
	}, nil
}

func buildScaler(spec scalerSpec, numFeatures int) (Scaler, error) {
	if len(spec.Mean) != numFeatures || len(spec.Scale) != numFeatures {
		return nil, fmt.Errorf("%w: scaler dimensions %d/%d do not match %d feature columns",
			ErrInvalidArtifact, len(spec.Mean), len(spec.Scale), numFeatures)
	}
	return &StandardScaler{Mean: spec.Mean, Scale: spec.Scale}, nil
}

func buildClassifier(spec classifierSpec, numLabels, numFeatures int) (Classifier, error) {
	if len(spec.Weights) != numLabels {
		return nil, fmt.Errorf("%w: classifier has %d weight rows for %d labels",
			ErrInvalidArtifact, len(spec.Weights), numLabels)
	}
	for i, row := range spec.Weights {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("%w: classifier weight row %d has %d columns, want %d",
				ErrInvalidArtifact, i, len(row), numFeatures)
		}
	}
	if len(spec.Intercepts) != numLabels {
		return nil, fmt.Errorf("%w: classifier has %d intercepts for %d labels",
			ErrInvalidArtifact, len(spec.Intercepts), numLabels)
	}

	switch spec.Type {
	case "softmax", "":
		return &SoftmaxClassifier{Weights: spec.Weights, Intercepts: spec.Intercepts}, nil
	case "margin":
		return &MarginClassifier{Weights: spec.Weights, Intercepts: spec.Intercepts}, nil
	default:
		return nil, fmt.Errorf("%w: unknown classifier type %q", ErrInvalidArtifact, spec.Type)
	}
}
