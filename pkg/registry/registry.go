// Package registry maps integration names to their handler strategy and
// response grammar. Registration is static at process start; lookups after
// that are read-only and safe for concurrent use.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// Registration describes one integration: its factory, whether its result
// arrives on a delayed follow-up check, which integration serves that
// follow-up, and an optional JSON schema for the built payload.
type Registration struct {
	Factory             protocol.IntegrationFactory
	Config              map[string]any
	DelayedResult       bool
	FollowUpIntegration string
	PayloadSchema       map[string]any
}

// Handler is a resolved, ready-to-invoke integration entry.
type Handler struct {
	Name                string
	Integration         protocol.Integration
	DelayedResult       bool
	FollowUpIntegration string

	schema *gojsonschema.Schema
}

// ValidatePayload checks a built payload against the registered schema.
// Handlers without a schema accept any payload.
func (h *Handler) ValidatePayload(payload map[string]any) error {
	if h.schema == nil {
		return nil
	}

	result, err := h.schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("payload validation failed: %w", err)
	}

	if !result.Valid() {
		return fmt.Errorf("payload does not match schema for integration '%s': %v", h.Name, result.Errors())
	}

	return nil
}

type Registry struct {
	logger   *slog.Logger
	handlers map[string]*Handler
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger.With("module", "integration_registry"),
		handlers: make(map[string]*Handler),
	}
}

// Register creates the integration from its factory and stores the handler
// under the factory ID. Registering the same name twice is an error: the
// table is meant to be assembled once during wiring.
func (r *Registry) Register(reg Registration) error {
	name := reg.Factory.ID()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("integration '%s' already registered", name)
	}

	integration, err := reg.Factory.Create(reg.Config)
	if err != nil {
		return fmt.Errorf("failed to create integration '%s': %w", name, err)
	}

	handler := &Handler{
		Name:                name,
		Integration:         integration,
		DelayedResult:       reg.DelayedResult,
		FollowUpIntegration: reg.FollowUpIntegration,
	}

	if reg.PayloadSchema != nil {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(reg.PayloadSchema))
		if err != nil {
			return fmt.Errorf("invalid payload schema for integration '%s': %w", name, err)
		}

		handler.schema = schema
	}

	r.handlers[name] = handler
	r.logger.Info("Registered integration",
		"integration", name,
		"delayed_result", reg.DelayedResult,
		"follow_up", reg.FollowUpIntegration,
	)

	return nil
}

// Resolve returns the handler for an integration name. Unregistered names
// fall through to the generic textual handler: many integrations share one
// undifferentiated string protocol and need no dedicated entry.
func (r *Registry) Resolve(name string) *Handler {
	if handler, ok := r.handlers[name]; ok {
		return handler
	}

	return &Handler{
		Name:        name,
		Integration: &GenericIntegration{},
	}
}

// Registered reports whether a dedicated handler exists for the name.
func (r *Registry) Registered(name string) bool {
	_, ok := r.handlers[name]

	return ok
}
