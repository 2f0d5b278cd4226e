package creditbureau

import (
	"testing"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	integration := NewIntegration(map[string]any{})

	payload, err := integration.BuildPayload(map[string]any{
		"applicantId":   "app-1",
		"pan":           "ABCDE1234F",
		"applicantName": "R. Sharma",
		"unrelated":     "dropped",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "cibil", payload["bureau"])
	assert.Equal(t, "app-1", payload["applicantId"])
	assert.Equal(t, "ABCDE1234F", payload["pan"])
	assert.NotContains(t, payload, "unrelated")
}

func TestBuildPayload_MissingApplicant(t *testing.T) {
	integration := NewIntegration(nil)

	_, err := integration.BuildPayload(map[string]any{"pan": "ABCDE1234F"}, nil)
	assert.Error(t, err)
}

func TestBuildPayload_ConfiguredBureau(t *testing.T) {
	integration := NewIntegration(map[string]any{"bureau": "experian"})

	payload, err := integration.BuildPayload(map[string]any{"applicantId": "app-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "experian", payload["bureau"])
}

func TestInterpret(t *testing.T) {
	integration := NewIntegration(nil)

	tests := []struct {
		name string
		raw  string
		want models.OutcomeKind
	}{
		{"success substring", "Verification triggered: Success", models.OutcomeSuccess},
		{"bare success", "Success", models.OutcomeSuccess},
		{"already in progress", "Already in progress", models.OutcomeAlreadyInProgress},
		{"already in progress case-insensitive", "ALREADY IN PROGRESS", models.OutcomeAlreadyInProgress},
		{"already completed", "Already completed", models.OutcomeAlreadyCompleted},
		{"empty body", "", models.OutcomeRemoteFailure},
		{"arbitrary failure", "bureau timeout", models.OutcomeRemoteFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := integration.Interpret([]byte(tt.raw))
			assert.Equal(t, tt.want, outcome.Kind)
		})
	}
}

func TestInterpret_FailureCarriesVerbatimText(t *testing.T) {
	integration := NewIntegration(nil)

	outcome := integration.Interpret([]byte("CIBIL gateway unreachable"))
	assert.Equal(t, models.OutcomeRemoteFailure, outcome.Kind)
	assert.Equal(t, "CIBIL gateway unreachable", outcome.Message)

	// Empty bodies get the fixed message instead.
	outcome = integration.Interpret([]byte("   "))
	assert.Equal(t, "Invalid response from server", outcome.Message)
}

func TestInterpret_Idempotent(t *testing.T) {
	integration := NewIntegration(nil)

	first := integration.Interpret([]byte("Already completed"))
	second := integration.Interpret([]byte("Already completed"))
	assert.Equal(t, first, second)
}

func TestStatusIntegration_Interpret(t *testing.T) {
	status := &StatusIntegration{}

	assert.Equal(t, models.OutcomeSuccess, status.Interpret([]byte("Report ready: Success")).Kind)
	assert.Equal(t, models.OutcomeAlreadyInProgress, status.Interpret([]byte("Already in progress")).Kind)
	assert.Equal(t, models.OutcomeRemoteFailure, status.Interpret([]byte("report generation failed")).Kind)
}

func TestFactories(t *testing.T) {
	assert.Equal(t, "credit-bureau", NewFactory().ID())
	assert.Equal(t, "credit-bureau-status", NewStatusFactory().ID())

	integration, err := NewFactory().Create(nil)
	require.NoError(t, err)
	assert.NotNil(t, integration)
}
