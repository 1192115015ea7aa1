package predictor

import (
	"fmt"
	"sort"
	"strings"

	"innerparts/internal/artifact"
	"innerparts/internal/model"
	"innerparts/internal/registry"
)

const (
	topPredictions = 3

	// Pseudo-distribution used when the bundled classifier exposes no
	// probability interface: the predicted label takes fallbackTopMass
	// and the remainder is spread uniformly over the other labels.
	fallbackTopMass = 0.8

	resultMessage = "Successfully analyzed responses"
)

// Predictor runs the full pipeline: feature derivation, column
// alignment, scaling, inference and enrichment. It only reads the
// immutable bundle and registry, so it is safe for concurrent use.
type Predictor struct {
	bundle   *artifact.Bundle
	registry *registry.CharacterRegistry
}

// New creates a predictor over a loaded model bundle and character registry.
func New(bundle *artifact.Bundle, reg *registry.CharacterRegistry) *Predictor {
	return &Predictor{bundle: bundle, registry: reg}
}

// Predict analyzes a questionnaire response and returns the ranked top-3
// inner parts. It never returns an error: scoring failures come back as
// a result with Success=false so one bad request cannot take the
// process down.
func (p *Predictor) Predict(answers model.Answers) *model.PredictionResult {
	features := DeriveFeatures(answers)
	row := alignColumns(features, p.bundle.FeatureColumns)

	scaled, err := p.bundle.Scaler.Transform(row)
	if err != nil {
		return model.FailedPrediction(fmt.Errorf("scaling features: %w", err))
	}

	probs, err := p.probabilities(scaled)
	if err != nil {
		return model.FailedPrediction(fmt.Errorf("classifying features: %w", err))
	}

	items := make([]model.PredictionItem, 0, topPredictions)
	for rank, idx := range topIndices(probs, topPredictions) {
		name, ok := p.bundle.CharacterAt(idx)
		if !ok {
			return model.FailedPrediction(fmt.Errorf("label index %d not present in artifact label map", idx))
		}
		items = append(items, p.enrich(name, probs[idx], rank+1))
	}

	// Selection already yields descending confidence; keep the sort as a
	// guarantee for downstream consumers.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Confidence > items[j].Confidence
	})

	return &model.PredictionResult{
		Success:         true,
		Predictions:     items,
		Message:         resultMessage,
		TotalCharacters: p.bundle.NumLabels(),
		ModelVersion:    p.bundle.ModelVersion,
	}
}

// alignColumns reorders the derived vector into the artifact's column
// order. Columns the artifact wants but the vector lacks are filled with
// the neutral 0; extra derived columns are dropped.
func alignColumns(v *FeatureVector, columns []string) []float64 {
	row := make([]float64, len(columns))
	for i, name := range columns {
		row[i] = v.Get(name)
	}
	return row
}

func (p *Predictor) probabilities(scaled []float64) ([]float64, error) {
	if pc, ok := p.bundle.Classifier.(artifact.ProbabilityClassifier); ok {
		return pc.PredictProba(scaled)
	}

	predicted, err := p.bundle.Classifier.Predict(scaled)
	if err != nil {
		return nil, err
	}
	n := p.bundle.NumLabels()
	if predicted < 0 || predicted >= n {
		return nil, fmt.Errorf("predicted label %d outside label space of %d", predicted, n)
	}

	probs := make([]float64, n)
	if n == 1 {
		probs[0] = 1
		return probs, nil
	}
	rest := (1 - fallbackTopMass) / float64(n-1)
	for i := range probs {
		probs[i] = rest
	}
	probs[predicted] = fallbackTopMass
	return probs, nil
}

// topIndices returns the k label indices with the highest probability,
// best first. The sort is stable on descending probability, so ties
// resolve to the lower label index.
func topIndices(probs []float64, k int) []int {
	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return probs[indices[a]] > probs[indices[b]]
	})
	if k > len(indices) {
		k = len(indices)
	}
	return indices[:k]
}

func (p *Predictor) enrich(characterName string, confidence float64, rank int) model.PredictionItem {
	rec := p.registry.Lookup(characterName)
	return model.PredictionItem{
		CharacterName:       characterName,
		DisplayName:         rec.DisplayName,
		Archetype:           rec.Archetype,
		Confidence:          confidence,
		ConfidenceFormatted: fmt.Sprintf("%.1f%%", confidence*100),
		ConfidenceLabel:     model.ConfidenceLabel(confidence),
		Rank:                rank,
		GLBFileName:         rec.GLBFileName,
		Description:         rec.Description,
		UserModel:           insightFor(rec.Archetype, characterName),
		PatternType:         "mixed",
	}
}

// insightFor templates the personalized insight sentence by archetype.
func insightFor(archetype model.Archetype, characterName string) string {
	name := strings.ToLower(characterName)
	switch archetype {
	case model.ArchetypeManager:
		return fmt.Sprintf("Your %s works proactively to prevent difficult emotions through control and high standards.", name)
	case model.ArchetypeFirefighter:
		return fmt.Sprintf("Your %s reacts quickly to emotional distress through distraction or numbing behaviors.", name)
	case model.ArchetypeExile:
		return fmt.Sprintf("Your %s carries emotional burdens from past experiences and needs compassionate attention.", name)
	default:
		return fmt.Sprintf("Your responses suggest this %s is active in situations involving decision-making and self-evaluation.", name)
	}
}
