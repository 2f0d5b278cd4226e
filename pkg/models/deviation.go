package models

import "time"

// Decision is the lifecycle state of a deviation record.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ApprovalCandidate is the read-only view of a deviation the authorization
// resolver evaluates. Candidates come from the current bulk selection and
// are never mutated by the resolver.
type ApprovalCandidate struct {
	ID                   string   `json:"id"`
	ApprovingAuthorities []string `json:"approving_authorities"`
	Decision             Decision `json:"decision"`
	HasMitigant          bool     `json:"has_mitigant"`
}

// DecisionMeta is recorded alongside each decided deviation and forwarded
// with the remote submission.
type DecisionMeta struct {
	ActorID   string    `json:"actor_id"`
	Remark    string    `json:"remark,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// DeviationRecord is the persisted risk-exception entity.
type DeviationRecord struct {
	ID                   string        `json:"id"`
	RecordID             string        `json:"record_id"`
	Description          string        `json:"description"`
	ApprovingAuthorities []string      `json:"approving_authorities"`
	Decision             Decision      `json:"decision"`
	DecisionMeta         *DecisionMeta `json:"decision_meta,omitempty"`
	MitigantRef          string        `json:"mitigant_ref,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// Candidate projects the persisted record into the resolver's input shape.
func (d *DeviationRecord) Candidate() ApprovalCandidate {
	return ApprovalCandidate{
		ID:                   d.ID,
		ApprovingAuthorities: d.ApprovingAuthorities,
		Decision:             d.Decision,
		HasMitigant:          d.MitigantRef != "",
	}
}

// AuthorizationResult is computed fresh on every bulk-action invocation.
// An empty RejectedReason means the full selection is authorized.
type AuthorizationResult struct {
	EligibleIDs    []string `json:"eligible_ids"`
	RejectedReason string   `json:"rejected_reason,omitempty"`
}

// Rejected reports whether the bulk action was refused locally.
func (r AuthorizationResult) Rejected() bool {
	return r.RejectedReason != ""
}
