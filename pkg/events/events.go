// Package events defines event types and structures for verification
// lifecycle notifications.
package events

import (
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

type EventType string

// Topic carries all verification lifecycle events.
const Topic = "loanverify.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	VerificationDispatchedEvent EventType = "verification.dispatched"
	VerificationCompletedEvent  EventType = "verification.completed"
	RecheckScheduledEvent       EventType = "verification.recheck.scheduled"
	DecisionSubmittedEvent      EventType = "deviation.decision.submitted"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	RecordID  string         `json:"record_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// VerificationDispatched is published when a dispatch passes its local
// gates and the remote call is about to be issued.
type VerificationDispatched struct {
	BaseEvent

	Integration string `json:"integration"`
	Action      string `json:"action"`
}

func (v VerificationDispatched) GetType() EventType {
	return VerificationDispatchedEvent
}

// VerificationCompleted is published for every terminal outcome.
type VerificationCompleted struct {
	BaseEvent

	Integration string             `json:"integration"`
	Action      string             `json:"action"`
	Outcome     models.OutcomeKind `json:"outcome"`
	Message     string             `json:"message,omitempty"`
}

func (v VerificationCompleted) GetType() EventType {
	return VerificationCompletedEvent
}

// RecheckScheduled is published when a delayed-result integration succeeds
// and the single follow-up check is queued. The wait is carried in whole
// seconds so consumers are not tied to Go's duration encoding.
type RecheckScheduled struct {
	BaseEvent

	Integration         string `json:"integration"`
	FollowUpIntegration string `json:"follow_up_integration"`
	WaitSeconds         int64  `json:"wait_seconds"`
}

func (r RecheckScheduled) GetType() EventType {
	return RecheckScheduledEvent
}

// DecisionSubmitted is published after a bulk decision batch is accepted
// remotely.
type DecisionSubmitted struct {
	BaseEvent

	DeviationIDs []string        `json:"deviation_ids"`
	Decision     models.Decision `json:"decision"`
	ActorID      string          `json:"actor_id"`
}

func (d DecisionSubmitted) GetType() EventType {
	return DecisionSubmittedEvent
}
