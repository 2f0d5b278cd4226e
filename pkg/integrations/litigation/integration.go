// Package litigation provides the litigation / criminal-record check
// integration. The check is synchronous and speaks the shared plain-string
// protocol.
package litigation

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

// BuildPayload sends the identity triple the litigation database matches on.
func (i *Integration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	name, _ := record["applicantName"].(string)
	if name == "" {
		return nil, fmt.Errorf("missing 'applicantName' in record fields")
	}

	payload := map[string]any{"applicantName": name}

	for _, field := range []string{"fatherName", "address", "dateOfBirth"} {
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

// Factory creates litigation check integrations.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "litigation-check"
}

func (f *Factory) Create(config map[string]any) (protocol.Integration, error) {
	return NewIntegration(config), nil
}
