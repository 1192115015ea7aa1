package model

import "fmt"

// QuestionCount is the fixed size of the questionnaire.
const QuestionCount = 13

// Answers maps a question key ("Q1".."Q13") to its raw answer string.
// Slider questions (Q2, Q4, Q8) hold a bucket label like "81-100%";
// multi-select questions hold comma-joined option codes like "0,3,5".
type Answers map[string]string

// SliderQuestions are the percentage-bucket questions.
var SliderQuestions = []string{"Q2", "Q4", "Q8"}

// MultiSelectQuestions are the option-code questions.
var MultiSelectQuestions = []string{"Q1", "Q3", "Q5", "Q6", "Q7", "Q9", "Q10", "Q11", "Q12", "Q13"}

// RequiredQuestions returns the full ordered question key list Q1..Q13.
func RequiredQuestions() []string {
	keys := make([]string, 0, QuestionCount)
	for i := 1; i <= QuestionCount; i++ {
		keys = append(keys, fmt.Sprintf("Q%d", i))
	}
	return keys
}

// Missing returns the question keys absent from the answer set, in Q1..Q13 order.
func (a Answers) Missing() []string {
	var missing []string
	for _, key := range RequiredQuestions() {
		if _, ok := a[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// PredictRequest is the request body for POST /v1/predict.
type PredictRequest struct {
	Answers Answers `json:"answers"`
}
