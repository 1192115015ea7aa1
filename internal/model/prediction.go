package model

// PredictionItem is one ranked inner-part match.
type PredictionItem struct {
	CharacterName       string    `json:"characterName"`
	DisplayName         string    `json:"displayName"`
	Archetype           Archetype `json:"archetype"`
	Confidence          float64   `json:"confidence"`
	ConfidenceFormatted string    `json:"confidenceFormatted"`
	ConfidenceLabel     string    `json:"confidenceLabel"`
	Rank                int       `json:"rank"`
	GLBFileName         string    `json:"glbFileName"`
	Description         string    `json:"description"`
	UserModel           string    `json:"userModel"` // personalized insight sentence
	PatternType         string    `json:"patternType"`
}

// PredictionResult is the full outcome of a questionnaire analysis.
// On failure Success is false, Error is set and Predictions is empty.
type PredictionResult struct {
	Success         bool             `json:"success"`
	Predictions     []PredictionItem `json:"predictions"`
	Message         string           `json:"message,omitempty"`
	TotalCharacters int              `json:"totalCharacters,omitempty"`
	ModelVersion    string           `json:"modelVersion,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// FailedPrediction builds the typed failure result the pipeline returns
// instead of propagating an error past its boundary.
func FailedPrediction(err error) *PredictionResult {
	return &PredictionResult{
		Success:     false,
		Error:       err.Error(),
		Predictions: []PredictionItem{},
	}
}

// Confidence label thresholds, evaluated high to low with closed boundaries.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "Very High Confidence"
	case confidence >= 0.85:
		return "High Confidence"
	case confidence >= 0.8:
		return "Moderate-High Confidence"
	case confidence >= 0.7:
		return "Moderate Confidence"
	case confidence >= 0.6:
		return "Low-Moderate Confidence"
	case confidence >= 0.5:
		return "Low Confidence"
	case confidence >= 0.3:
		return "Very Low Confidence"
	default:
		return "Minimal Confidence"
	}
}
