package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"innerparts/internal/model"
	"innerparts/internal/service"
)

// PredictHandler handles the questionnaire analysis endpoint
type PredictHandler struct {
	predictionSvc *service.PredictionService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictionSvc *service.PredictionService) *PredictHandler {
	return &PredictHandler{predictionSvc: predictionSvc}
}

// Predict handles POST /v1/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePredictionFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Answers) == 0 {
		writePredictionFailure(w, http.StatusBadRequest, "No answers provided")
		return
	}

	// The boundary rejects incomplete submissions; the pipeline itself
	// tolerates missing keys by defaulting.
	if missing := req.Answers.Missing(); len(missing) > 0 {
		writePredictionFailure(w, http.StatusBadRequest, "Missing answers for: "+strings.Join(missing, ", "))
		return
	}

	result := h.predictionSvc.Predict(r.Context(), req.Answers)
	writeJSON(w, http.StatusOK, result)
}

// writePredictionFailure reports boundary errors in the same shape as a
// failed pipeline result.
func writePredictionFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &model.PredictionResult{
		Success:     false,
		Error:       message,
		Predictions: []model.PredictionItem{},
	})
}
