// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/anunay-mishra-24/loanverify/pkg/integrations/creditbureau"
	"github.com/anunay-mishra-24/loanverify/pkg/integrations/employment"
	"github.com/anunay-mishra-24/loanverify/pkg/integrations/insurance"
	"github.com/anunay-mishra-24/loanverify/pkg/integrations/kyc"
	"github.com/anunay-mishra-24/loanverify/pkg/integrations/litigation"
	"github.com/anunay-mishra-24/loanverify/pkg/registry"
)

func payloadSchema(required ...string) map[string]any {
	properties := map[string]any{}
	for _, field := range required {
		properties[field] = map[string]any{"type": "string", "minLength": 1}
	}

	return map[string]any{
		"type":       "object",
		"required":   required,
		"properties": properties,
	}
}

// NewRegistry assembles the static integration table. Names absent from the
// table still dispatch through the generic textual handler.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	registrations := []registry.Registration{
		{
			Factory:             creditbureau.NewFactory(),
			DelayedResult:       true,
			FollowUpIntegration: "credit-bureau-status",
			PayloadSchema:       payloadSchema("bureau", "applicantId"),
		},
		{
			Factory: creditbureau.NewStatusFactory(),
		},
		{
			Factory:       litigation.NewFactory(),
			PayloadSchema: payloadSchema("applicantName"),
		},
		{
			Factory:       insurance.NewFactory(),
			PayloadSchema: payloadSchema("policyNumber"),
		},
		{
			Factory:       employment.NewFactory(),
			PayloadSchema: payloadSchema("employerName"),
		},
		{
			Factory: kyc.NewFactory(),
			Config:  map[string]any{"require_otp": true},
		},
	}

	for _, registration := range registrations {
		if err := reg.Register(registration); err != nil {
			panic(fmt.Errorf("failed to register integration: %w", err))
		}
	}

	return reg
}
