package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyadvice/internal/survey/models"
	dErrors "energyadvice/pkg/domain-errors"
)

func TestAnswerRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"string answer", `"england"`, false},
		{"numeric answer", `1965`, false},
		{"null answer", `null`, true},
		{"absent answer", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AnswerRequest{Answer: json.RawMessage(tt.raw)}
			err := req.Validate()
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDecisionRequestValidate(t *testing.T) {
	req := &DecisionRequest{Decision: "  decide_later "}
	require.NoError(t, req.Validate())
	assert.Equal(t, models.DecisionDecideLater, req.ParsedDecision())

	req = &DecisionRequest{}
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))

	req = &DecisionRequest{Decision: "maybe"}
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))

	var nilReq *DecisionRequest
	assert.True(t, dErrors.HasCode(nilReq.Validate(), dErrors.CodeBadRequest))
}
