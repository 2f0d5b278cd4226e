package dispatch

import "strings"

// Route names a dedicated flow that bypasses the integration registry.
type Route string

const (
	RouteNone         Route = ""
	RouteDetail       Route = "detail"
	RouteEdit         Route = "edit"
	RouteExternalTool Route = "external_tool"
	RouteDelete       Route = "delete"
)

// shortCircuitRoute recognizes action names that never reach an
// integration. Detail and edit match exactly; the external-tool and delete
// flows match on a case-insensitive substring because the list UI renders
// them with record-specific prefixes.
func shortCircuitRoute(action string) Route {
	switch {
	case strings.EqualFold(action, "View Detail"), strings.EqualFold(action, "View Details"):
		return RouteDetail
	case strings.EqualFold(action, "Edit"):
		return RouteEdit
	case containsFold(action, "external tool"):
		return RouteExternalTool
	case containsFold(action, "delete"):
		return RouteDelete
	default:
		return RouteNone
	}
}

// ownershipExempt lists the actions that skip the access gate.
func ownershipExempt(action string) bool {
	return strings.EqualFold(action, "View Detail") ||
		strings.EqualFold(action, "View Details") ||
		strings.EqualFold(action, "Edit")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
