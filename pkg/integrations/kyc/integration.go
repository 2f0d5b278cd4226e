// Package kyc provides the KYC verification integration. Unlike the textual
// integrations it returns a structured JSON body with a status discriminator
// and, on validation errors, the list of missing applicant fields.
package kyc

import (
	"encoding/json"
	"fmt"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

// SessionKeyOTP is the dispatch-session key the client-generated OTP is
// captured under.
const SessionKeyOTP = "kyc_otp"

const (
	statusError         = "error"
	statusHold          = "hold"
	statusInputRequired = "kotakInputRequired"
	statusSuccess       = "success"
)

type response struct {
	Status        string   `json:"status"`
	MissingFields []string `json:"missingFields"`
	ApplicantID   string   `json:"applicantId"`
	Message       string   `json:"message"`
}

type Integration struct {
	requireOTP bool
}

func NewIntegration(config map[string]any) *Integration {
	requireOTP, _ := config["require_otp"].(bool)

	return &Integration{requireOTP: requireOTP}
}

// BuildPayload sends the applicant identity documents plus the OTP captured
// into the dispatch session by the preceding consent step.
func (i *Integration) BuildPayload(record map[string]any, session *models.Session) (map[string]any, error) {
	applicantID, _ := record["applicantId"].(string)
	if applicantID == "" {
		return nil, fmt.Errorf("missing 'applicantId' in record fields")
	}

	payload := map[string]any{"applicantId": applicantID}

	for _, field := range []string{"pan", "aadhaarRef", "applicantName", "dateOfBirth"} {
		if v, ok := record[field]; ok {
			payload[field] = v
		}
	}

	if i.requireOTP {
		otp := session.StringValue(SessionKeyOTP)
		if otp == "" {
			return nil, fmt.Errorf("missing OTP in dispatch session")
		}

		payload["otp"] = otp
	}

	return payload, nil
}

// Interpret maps the structured status discriminator onto the outcome set.
// Anything unparsable or with an unknown status is a remote failure with a
// fixed message, never a panic.
func (i *Integration) Interpret(raw []byte) models.Outcome {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.RemoteFailure("Invalid response from server")
	}

	switch resp.Status {
	case statusError:
		return models.ValidationError(resp.MissingFields)
	case statusHold:
		return models.Hold(resp.ApplicantID)
	case statusInputRequired:
		return models.SecondaryInputRequired(resp.ApplicantID)
	case statusSuccess:
		return models.Success()
	default:
		return models.RemoteFailure("Invalid response from server")
	}
}

// Factory creates KYC integrations.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "kyc-verification"
}

func (f *Factory) Create(config map[string]any) (protocol.Integration, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewIntegration(config), nil
}
