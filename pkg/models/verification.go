package models

import "time"

// PollingTask describes the single follow-up check for a delayed-result
// integration. It is created only when the triggering call succeeded and is
// destroyed after one follow-up, never retried.
type PollingTask struct {
	Request             ActionRequest
	Wait                time.Duration
	FollowUpIntegration string
}

// VerificationResult is the persisted trace of one terminal verification
// outcome for a record/integration pair.
type VerificationResult struct {
	ID          string      `json:"id"`
	RecordID    string      `json:"record_id"`
	Integration string      `json:"integration"`
	Action      string      `json:"action"`
	Kind        OutcomeKind `json:"kind"`
	Message     string      `json:"message,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
