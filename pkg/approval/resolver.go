package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

// ActionKind distinguishes the bulk decision flavors. The mitigant
// prerequisite applies to decision submission only.
type ActionKind string

const (
	ActionSubmitDecision ActionKind = "submit_decision"
	ActionRecommend      ActionKind = "recommend"
)

// State names the phases of one bulk action. Any failure returns fully to
// Idle with a surfaced reason; there are no partial transitions.
type State string

const (
	StateIdle              State = "idle"
	StateValidating        State = "validating"
	StateCheckingOwnership State = "checking_ownership"
	StateAuthorized        State = "authorized"
	StateSubmitting        State = "submitting"
	StateDone              State = "done"
	StateRejected          State = "rejected"
)

// Rejection reasons surfaced to the caller.
const (
	ReasonNotAllAuthorized  = "not all selected items are within your authorization"
	ReasonAlreadyDecided    = "already decided"
	ReasonMitigantsRequired = "mitigants required before approval"
	ReasonNotOwner          = "you are not the effective owner of this record"
)

// BulkRequest is one bulk decision attempt over the current selection.
type BulkRequest struct {
	Selection     []models.ApprovalCandidate
	Role          Role
	Action        ActionKind
	Decision      models.Decision
	UserID        string
	RecordOwnerID string
	Meta          models.DecisionMeta
}

// Resolver gates the UI path for bulk decisions. It never mutates approval
// state itself; the remote submission is the final authority.
type Resolver struct {
	chain     protocol.ManagerChainResolver
	submitter protocol.DecisionSubmitter
	logger    *slog.Logger
}

func NewResolver(chain protocol.ManagerChainResolver, submitter protocol.DecisionSubmitter, logger *slog.Logger) *Resolver {
	return &Resolver{
		chain:     chain,
		submitter: submitter,
		logger:    logger.With("module", "approval_resolver"),
	}
}

// Authorize runs the local checks, confirms ownership remotely once, and on
// success submits the full eligible set as one atomic call. The result is
// computed fresh on every invocation; role and ownership data can change
// between calls, so nothing is cached.
func (r *Resolver) Authorize(ctx context.Context, req BulkRequest) (models.AuthorizationResult, error) {
	logger := r.logger.With(
		"user_id", req.UserID,
		"role", req.Role.String(),
		"action", string(req.Action),
		"selection_size", len(req.Selection),
	)

	state := StateValidating
	logger.InfoContext(ctx, "Validating bulk selection", "state", state)

	result := r.validate(req)
	if result.Rejected() {
		logger.InfoContext(ctx, "Bulk selection rejected", "state", StateRejected, "reason", result.RejectedReason)

		return result, nil
	}

	eligible := result.EligibleIDs

	state = StateCheckingOwnership
	logger.InfoContext(ctx, "Checking record ownership", "state", state)

	owner, err := r.isEffectiveOwner(ctx, req.UserID, req.RecordOwnerID)
	if err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("authorize: ownership lookup failed: %w", err)
	}

	if !owner {
		logger.InfoContext(ctx, "Bulk selection rejected", "state", StateRejected, "reason", ReasonNotOwner)

		return models.AuthorizationResult{RejectedReason: ReasonNotOwner}, nil
	}

	state = StateSubmitting
	logger.InfoContext(ctx, "Submitting bulk decision", "state", state, "eligible", len(eligible))

	if err := r.submitter.SubmitDecision(ctx, eligible, req.Meta); err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("authorize: decision submission failed: %w", err)
	}

	logger.InfoContext(ctx, "Bulk decision submitted", "state", StateDone)

	return models.AuthorizationResult{EligibleIDs: eligible}, nil
}

// validate runs the local rules in spec order: eligibility with the
// all-or-nothing gate, the pre-existing-decision gate, then the mitigant
// prerequisite for decision submission.
func (r *Resolver) validate(req BulkRequest) models.AuthorizationResult {
	eligible := r.eligibleIDs(req)

	if len(eligible) != len(req.Selection) {
		return models.AuthorizationResult{RejectedReason: ReasonNotAllAuthorized}
	}

	for _, candidate := range req.Selection {
		if candidate.Decision != models.DecisionPending {
			return models.AuthorizationResult{RejectedReason: ReasonAlreadyDecided}
		}
	}

	if req.Action == ActionSubmitDecision {
		for _, candidate := range req.Selection {
			if !candidate.HasMitigant {
				return models.AuthorizationResult{RejectedReason: ReasonMitigantsRequired}
			}
		}
	}

	return models.AuthorizationResult{EligibleIDs: eligible}
}

func (r *Resolver) eligibleIDs(req BulkRequest) []string {
	eligible := make([]string, 0, len(req.Selection))

	for _, candidate := range req.Selection {
		if req.Role.AuthorizesAny(candidate.ApprovingAuthorities) {
			eligible = append(eligible, candidate.ID)
		}
	}

	return eligible
}

// isEffectiveOwner confirms the caller sits on the record owner's manager
// chain (or is the owner). Checked once per bulk action, not per candidate.
func (r *Resolver) isEffectiveOwner(ctx context.Context, userID, recordOwnerID string) (bool, error) {
	if userID == recordOwnerID {
		return true, nil
	}

	chain, err := r.chain.ResolveManagerChain(ctx, recordOwnerID)
	if err != nil {
		return false, err
	}

	for _, managerID := range chain {
		if managerID == userID {
			return true, nil
		}
	}

	return false, nil
}
