package creditbureau

import (
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

// StatusIntegration is the delayed follow-up check that asks the bureau
// whether the report requested earlier is ready. It shares the triggering
// call's payload and speaks the same plain-string protocol.
type StatusIntegration struct{}

func (s *StatusIntegration) BuildPayload(record map[string]any, _ *models.Session) (map[string]any, error) {
	payload := make(map[string]any, len(record))
	for k, v := range record {
		payload[k] = v
	}

	return payload, nil
}

func (s *StatusIntegration) Interpret(raw []byte) models.Outcome {
	text := strings.TrimSpace(string(raw))

	switch {
	case text == "":
		return models.RemoteFailure("Invalid response from server")
	case strings.Contains(text, "Success"):
		return models.Success()
	case strings.EqualFold(text, "Already in progress"):
		return models.AlreadyInProgress()
	default:
		return models.RemoteFailure(text)
	}
}

// StatusFactory creates the follow-up status integration.
type StatusFactory struct{}

func NewStatusFactory() *StatusFactory {
	return &StatusFactory{}
}

func (*StatusFactory) ID() string {
	return "credit-bureau-status"
}

func (f *StatusFactory) Create(_ map[string]any) (protocol.Integration, error) {
	return &StatusIntegration{}, nil
}
