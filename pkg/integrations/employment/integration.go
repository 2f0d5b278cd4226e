// Package employment provides the employment verification integration.
package employment

import (
	"fmt"
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

type Integration struct{}

func NewIntegration(_ map[string]any) *Integration {
	return &Integration{}
}

func (i *Integration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	employer, _ := record["employerName"].(string)
	if employer == "" {
		return nil, fmt.Errorf("missing 'employerName' in record fields")
	}

	payload := map[string]any{"employerName": employer}

	for _, field := range []string{"applicantId", "applicantName", "epfNumber", "designation"} {
		if v, ok := record[field]; ok {
			payload[field] = v
		}
	}

	return payload, nil
}

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

// Factory creates employment verification integrations.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "employment-verification"
}

func (f *Factory) Create(config map[string]any) (protocol.Integration, error) {
	return NewIntegration(config), nil
}
