package kyc

import (
	"testing"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload_WithOTP(t *testing.T) {
	integration := NewIntegration(map[string]any{"require_otp": true})

	session := models.NewSession()
	session.Set(SessionKeyOTP, "482913")

	payload, err := integration.BuildPayload(map[string]any{
		"applicantId": "app-1",
		"pan":         "ABCDE1234F",
	}, session)

	require.NoError(t, err)
	assert.Equal(t, "482913", payload["otp"])
	assert.Equal(t, "app-1", payload["applicantId"])
}

func TestBuildPayload_MissingOTP(t *testing.T) {
	integration := NewIntegration(map[string]any{"require_otp": true})

	_, err := integration.BuildPayload(map[string]any{"applicantId": "app-1"}, models.NewSession())
	assert.Error(t, err)
}

func TestBuildPayload_OTPNotRequired(t *testing.T) {
	integration := NewIntegration(nil)

	payload, err := integration.BuildPayload(map[string]any{"applicantId": "app-1"}, models.NewSession())
	require.NoError(t, err)
	assert.NotContains(t, payload, "otp")
}

func TestInterpret_StatusDiscriminator(t *testing.T) {
	integration := NewIntegration(nil)

	tests := []struct {
		name string
		raw  string
		want models.OutcomeKind
	}{
		{"error", `{"status":"error","missingFields":["pan","dateOfBirth"]}`, models.OutcomeValidationError},
		{"hold", `{"status":"hold","applicantId":"app-7"}`, models.OutcomeHold},
		{"input required", `{"status":"kotakInputRequired","applicantId":"app-7"}`, models.OutcomeSecondaryInputRequired},
		{"success", `{"status":"success"}`, models.OutcomeSuccess},
		{"unknown status", `{"status":"perhaps"}`, models.OutcomeRemoteFailure},
		{"not json", `Success`, models.OutcomeRemoteFailure},
		{"empty", ``, models.OutcomeRemoteFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := integration.Interpret([]byte(tt.raw))
			assert.Equal(t, tt.want, outcome.Kind)
		})
	}
}

func TestInterpret_ValidationErrorCarriesMissingFields(t *testing.T) {
	integration := NewIntegration(nil)

	outcome := integration.Interpret([]byte(`{"status":"error","missingFields":["pan","aadhaarRef"]}`))
	assert.Equal(t, []string{"pan", "aadhaarRef"}, outcome.MissingFields)
}

func TestInterpret_HoldCarriesApplicant(t *testing.T) {
	integration := NewIntegration(nil)

	outcome := integration.Interpret([]byte(`{"status":"hold","applicantId":"app-7"}`))
	assert.Equal(t, "app-7", outcome.ApplicantID)
	assert.False(t, outcome.Terminal())
}

func TestInterpret_UnparsableUsesFixedMessage(t *testing.T) {
	integration := NewIntegration(nil)

	outcome := integration.Interpret([]byte(`<html>proxy error</html>`))
	assert.Equal(t, "Invalid response from server", outcome.Message)
}
