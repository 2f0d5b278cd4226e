package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortCircuitRoute(t *testing.T) {
	tests := []struct {
		action string
		want   Route
	}{
		{"View Detail", RouteDetail},
		{"View Details", RouteDetail},
		{"view details", RouteDetail},
		{"Edit", RouteEdit},
		{"Open in External Tool", RouteExternalTool},
		{"Delete Record", RouteDelete},
		{"delete", RouteDelete},
		{"Litigation Check", RouteNone},
		{"", RouteNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shortCircuitRoute(tt.action), "action %q", tt.action)
	}
}

func TestOwnershipExempt(t *testing.T) {
	assert.True(t, ownershipExempt("View Detail"))
	assert.True(t, ownershipExempt("edit"))

	// Mutating routes still require ownership.
	assert.False(t, ownershipExempt("Delete Record"))
	assert.False(t, ownershipExempt("Litigation Check"))
}
