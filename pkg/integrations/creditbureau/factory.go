package creditbureau

import (
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

// Factory creates credit bureau integrations.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "credit-bureau"
}

func (f *Factory) Create(config map[string]any) (protocol.Integration, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewIntegration(config), nil
}
