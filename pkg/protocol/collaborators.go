package protocol

import (
	"context"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// Severity classifies user-facing notifications.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Invoker performs the opaque remote verification call for a named
// integration. The response body is returned verbatim for interpretation.
type Invoker interface {
	Invoke(ctx context.Context, integration string, payload map[string]any) ([]byte, error)
}

// Notifier is the toast/notification sink. Every terminal outcome produces
// exactly one notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string, severity Severity)
}

// ListReloader asks the list UI to fully reload the row for a record.
type ListReloader interface {
	Reload(ctx context.Context, recordID string) error
}

// MissingFieldsDialog opens the structured dialog enumerating fields the
// remote side reported as missing.
type MissingFieldsDialog interface {
	OpenMissingFields(ctx context.Context, recordID string, fields []string) error
}

// SecondaryInput opens the dependent data-entry modal for hold and
// secondary-input outcomes. The modal's own save issues a new ActionRequest
// and triggers the deferred list reload.
type SecondaryInput interface {
	OpenSecondaryInput(ctx context.Context, applicantID string, applicant map[string]any) error
}

// ApplicantSource fetches the dependent applicant data shown in the
// secondary-input modal.
type ApplicantSource interface {
	DependentApplicant(ctx context.Context, applicantID string) (map[string]any, error)
}

// ManagerChainResolver is the organizational-role lookup used to confirm
// effective record ownership once per bulk action.
type ManagerChainResolver interface {
	ResolveManagerChain(ctx context.Context, userID string) ([]string, error)
}

// DecisionSubmitter submits the full eligible id set as one atomic remote
// call. The remote side is the final authority over approval state.
type DecisionSubmitter interface {
	SubmitDecision(ctx context.Context, ids []string, meta models.DecisionMeta) error
}

// RecordNavigator covers the short-circuit routes that bypass the
// integration registry: detail view, edit sub-form and the external tool.
type RecordNavigator interface {
	OpenDetail(ctx context.Context, recordID string) error
	OpenEdit(ctx context.Context, recordID string) error
	OpenExternalTool(ctx context.Context, recordID string, payload map[string]any) error
}
