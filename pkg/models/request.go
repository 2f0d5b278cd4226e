// Package models defines the core domain types for verification dispatch
// and deviation approval.
package models

// ActionRequest is a single row-action triple received from the list UI.
// It is built once and consumed exactly once by the dispatcher.
type ActionRequest struct {
	RecordID    string         `json:"record_id"`
	Integration string         `json:"integration"`
	Action      string         `json:"action"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// UserContext carries the caller identity and ownership flags evaluated by
// the dispatcher's access gate.
type UserContext struct {
	UserID              string `json:"user_id"`
	IsRecordOwner       bool   `json:"is_record_owner"`
	IsVerificationOwner bool   `json:"is_verification_owner"`
}
