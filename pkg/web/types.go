// Package web provides HTTP request and response types for the
// verification API.
package web

import (
	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// DispatchRequest represents the request body for dispatching a row action.
type DispatchRequest struct {
	RecordID    string         `json:"record_id"             validate:"required"`
	Integration string         `json:"integration"`
	Action      string         `json:"action"                validate:"required"`
	Payload     map[string]any `json:"payload,omitempty"`
	Session     map[string]any `json:"session,omitempty"`

	UserID              string `json:"user_id"               validate:"required"`
	IsRecordOwner       bool   `json:"is_record_owner"`
	IsVerificationOwner bool   `json:"is_verification_owner"`
}

// ActionRequest extracts the dispatcher triple from the request body.
func (r DispatchRequest) ActionRequest() models.ActionRequest {
	return models.ActionRequest{
		RecordID:    r.RecordID,
		Integration: r.Integration,
		Action:      r.Action,
		Payload:     r.Payload,
	}
}

// UserContext extracts the caller identity from the request body.
func (r DispatchRequest) UserContext() models.UserContext {
	return models.UserContext{
		UserID:              r.UserID,
		IsRecordOwner:       r.IsRecordOwner,
		IsVerificationOwner: r.IsVerificationOwner,
	}
}

// CreateDeviationBody represents the request body for registering a
// deviation against a record.
type CreateDeviationBody struct {
	RecordID             string   `json:"record_id"             validate:"required"`
	Description          string   `json:"description"           validate:"required"`
	ApprovingAuthorities []string `json:"approving_authorities" validate:"required,min=1,dive,required"`
	MitigantRef          string   `json:"mitigant_ref"`
}

// Record projects the body into the persisted entity.
func (b CreateDeviationBody) Record() *models.DeviationRecord {
	return &models.DeviationRecord{
		RecordID:             b.RecordID,
		Description:          b.Description,
		ApprovingAuthorities: b.ApprovingAuthorities,
		MitigantRef:          b.MitigantRef,
	}
}

// BulkDecisionBody represents the request body for deciding a selection of
// deviations in one batch.
type BulkDecisionBody struct {
	DeviationIDs  []string `json:"deviation_ids"   validate:"required,min=1,dive,required"`
	Decision      string   `json:"decision"        validate:"required,oneof=approved rejected"`
	Action        string   `json:"action"          validate:"required,oneof=submit_decision recommend"`
	Role          string   `json:"role"            validate:"required"`
	UserID        string   `json:"user_id"         validate:"required"`
	RecordOwnerID string   `json:"record_owner_id" validate:"required"`
	Remark        string   `json:"remark"`
}

// BulkDecisionResponse reports the accepted batch.
type BulkDecisionResponse struct {
	EligibleIDs []string `json:"eligible_ids"`
	Decision    string   `json:"decision"`
}
