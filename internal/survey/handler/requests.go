package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"energyadvice/internal/survey/models"
	dErrors "energyadvice/pkg/domain-errors"
)

// AnswerRequest is the HTTP request body for PUT /surveys/{reference}/questions/{question}.
// The answer stays raw; its shape depends on the question and is checked by
// the survey model.
type AnswerRequest struct {
	Answer json.RawMessage `json:"answer"`
}

// Validate implements httputil.Validatable.
func (r *AnswerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	trimmed := bytes.TrimSpace(r.Answer)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return dErrors.New(dErrors.CodeValidation, "answer is required")
	}
	r.Answer = trimmed
	return nil
}

// DecisionRequest is the HTTP request body for PUT /surveys/{reference}/recommendations/{key}.
type DecisionRequest struct {
	Decision string `json:"decision"`

	parsedDecision models.Decision
}

// Validate implements httputil.Validatable.
func (r *DecisionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Decision = strings.TrimSpace(r.Decision)
	if r.Decision == "" {
		return dErrors.New(dErrors.CodeValidation, "decision is required")
	}
	d := models.Decision(r.Decision)
	if !d.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "decision must be one of undecided, save_to_action_plan, decide_later, reject")
	}
	r.parsedDecision = d
	return nil
}

// ParsedDecision returns the validated decision.
func (r *DecisionRequest) ParsedDecision() models.Decision {
	return r.parsedDecision
}
