// Package protocol defines the contracts between the dispatch core, its
// integrations, and the external collaborators it drives.
package protocol

import (
	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// Integration is one named external verification service: it builds the
// request payload from the row fields plus dispatch session state, and
// classifies the raw remote response into a closed outcome set.
type Integration interface {
	// BuildPayload assembles the remote request body. record holds the row
	// fields supplied by the list UI; session carries per-dispatch state.
	BuildPayload(record map[string]any, session *models.Session) (map[string]any, error)

	// Interpret classifies a raw remote response. It must not panic on
	// malformed input; unparsable payloads map to a remote failure.
	Interpret(raw []byte) models.Outcome
}

// IntegrationFactory creates a configured Integration and names the
// registry key it is registered under.
type IntegrationFactory interface {
	Create(config map[string]any) (Integration, error)
	ID() string
}
