// Package insurance provides the insurance policy verification integration.
package insurance

import (
	"fmt"
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

type Integration struct {
	provider string
}

func NewIntegration(config map[string]any) *Integration {
	provider, _ := config["provider"].(string)

	return &Integration{provider: provider}
}

func (i *Integration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	policyNumber, _ := record["policyNumber"].(string)
	if policyNumber == "" {
		return nil, fmt.Errorf("missing 'policyNumber' in record fields")
	}

	payload := map[string]any{"policyNumber": policyNumber}
	if i.provider != "" {
		payload["provider"] = i.provider
	}

	for _, field := range []string{"applicantId", "sumAssured", "nominee"} {
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

// Factory creates insurance verification integrations.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "insurance-verification"
}

func (f *Factory) Create(config map[string]any) (protocol.Integration, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewIntegration(config), nil
}
