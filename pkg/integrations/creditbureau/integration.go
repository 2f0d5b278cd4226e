// Package creditbureau provides the credit bureau verification integration.
// The bureau acknowledges the pull synchronously but produces the report
// asynchronously, so the integration is registered as delayed-result with a
// follow-up against the report-status integration.
package creditbureau

import (
	"fmt"
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// Integration triggers a bureau pull for an applicant.
type Integration struct {
	bureau string
}

func NewIntegration(config map[string]any) *Integration {
	bureau, _ := config["bureau"].(string)
	if bureau == "" {
		bureau = "cibil"
	}

	return &Integration{bureau: bureau}
}

// BuildPayload extracts the identity fields the bureau keys on.
func (i *Integration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	applicantID, _ := record["applicantId"].(string)
	if applicantID == "" {
		return nil, fmt.Errorf("missing 'applicantId' in record fields")
	}

	payload := map[string]any{
		"bureau":      i.bureau,
		"applicantId": applicantID,
	}

	for _, field := range []string{"pan", "dateOfBirth", "loanAmount", "applicantName"} {
		if v, ok := record[field]; ok {
			payload[field] = v
		}
	}

	return payload, nil
}

// Interpret classifies the bureau's plain-string protocol. An empty body is
// a transient fault on the bureau side and surfaces as a generic failure.
func (i *Integration) Interpret(raw []byte) models.Outcome {
	text := strings.TrimSpace(string(raw))

	switch {
	case text == "":
		return models.RemoteFailure("Invalid response from server")
	case strings.Contains(text, "Success"):
		return models.Success()
	case strings.EqualFold(text, "Already in progress"):
		return models.AlreadyInProgress()
	case strings.EqualFold(text, "Already completed"):
		return models.AlreadyCompleted()
	default:
		return models.RemoteFailure(text)
	}
}
