// Package uibridge publishes UI directives as events so any connected
// front end can render notifications, dialogs and navigation without the
// dispatch path knowing about the transport.
package uibridge

import (
	"context"
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/eventbus"
	"github.com/anunay-mishra-24/loanverify/pkg/events"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
)

const (
	NavigationTargetDetail       = "detail"
	NavigationTargetEdit         = "edit"
	NavigationTargetExternalTool = "external_tool"
)

// Bridge implements the UI-facing collaborators on top of the event bus.
type Bridge struct {
	bus    eventbus.EventBus
	logger *slog.Logger
}

func NewBridge(bus eventbus.EventBus, logger *slog.Logger) *Bridge {
	return &Bridge{
		bus:    bus,
		logger: logger.With("module", "uibridge"),
	}
}

func (b *Bridge) base(eventType events.EventType, recordID string) events.BaseEvent {
	return events.BaseEvent{
		ID:        b.bus.GenerateID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RecordID:  recordID,
	}
}

func (b *Bridge) Notify(ctx context.Context, title, message string, severity protocol.Severity) {
	event := events.Notification{
		BaseEvent: b.base(events.NotificationEvent, ""),
		Title:     title,
		Message:   message,
		Severity:  string(severity),
	}

	if err := b.bus.Publish(ctx, event.ID, event); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish notification", "error", err, "title", title)
	}
}

func (b *Bridge) Reload(ctx context.Context, recordID string) error {
	event := events.ListReload{BaseEvent: b.base(events.ListReloadEvent, recordID)}

	return b.bus.Publish(ctx, recordID, event)
}

func (b *Bridge) OpenMissingFields(ctx context.Context, recordID string, fields []string) error {
	event := events.MissingFields{
		BaseEvent: b.base(events.MissingFieldsEvent, recordID),
		Fields:    fields,
	}

	return b.bus.Publish(ctx, recordID, event)
}

func (b *Bridge) OpenSecondaryInput(ctx context.Context, applicantID string, applicant map[string]any) error {
	event := events.SecondaryInput{
		BaseEvent:   b.base(events.SecondaryInputEvent, ""),
		ApplicantID: applicantID,
		Applicant:   applicant,
	}

	return b.bus.Publish(ctx, applicantID, event)
}

func (b *Bridge) OpenDetail(ctx context.Context, recordID string) error {
	return b.navigate(ctx, recordID, NavigationTargetDetail, nil)
}

func (b *Bridge) OpenEdit(ctx context.Context, recordID string) error {
	return b.navigate(ctx, recordID, NavigationTargetEdit, nil)
}

func (b *Bridge) OpenExternalTool(ctx context.Context, recordID string, payload map[string]any) error {
	return b.navigate(ctx, recordID, NavigationTargetExternalTool, payload)
}

func (b *Bridge) navigate(ctx context.Context, recordID, target string, payload map[string]any) error {
	event := events.Navigation{
		BaseEvent: b.base(events.NavigationEvent, recordID),
		Target:    target,
		Payload:   payload,
	}

	return b.bus.Publish(ctx, recordID, event)
}
