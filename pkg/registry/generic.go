package registry

import (
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// GenericIntegration serves every integration without a dedicated registry
// entry. The shared textual protocol is undifferentiated: any response
// containing "Success" is terminal success, anything else is a remote
// failure carrying the raw response text.
type GenericIntegration struct{}

// BuildPayload passes the row fields through unchanged.
func (g *GenericIntegration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	payload := make(map[string]any, len(record))
	for k, v := range record {
		payload[k] = v
	}

	return payload, nil
}

func (g *GenericIntegration) Interpret(raw []byte) models.Outcome {
	text := strings.TrimSpace(string(raw))

	if strings.Contains(text, "Success") {
		return models.Success()
	}

	return models.RemoteFailure(text)
}
