// Package dispatch drives a row action from the list UI to a terminal
// verification outcome: access gate, short-circuit routes, handler
// resolution, remote invocation, outcome reaction, and the single delayed
// follow-up check for delayed-result integrations.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/eventbus"
	"github.com/anunay-mishra-24/loanverify/pkg/events"
	"github.com/anunay-mishra-24/loanverify/pkg/inflight"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/otelhelper"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
	"github.com/anunay-mishra-24/loanverify/pkg/registry"
	"github.com/anunay-mishra-24/loanverify/pkg/services"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result reports how a dispatch concluded. RecheckScheduled means the first
// call succeeded on a delayed-result integration and the terminal outcome
// will arrive through the follow-up check.
type Result struct {
	Outcome          models.Outcome `json:"outcome"`
	Route            Route          `json:"route,omitempty"`
	RecheckScheduled bool           `json:"recheck_scheduled,omitempty"`
}

// Dependencies are the collaborators one dispatcher drives.
type Dependencies struct {
	Registry       *registry.Registry
	Invoker        protocol.Invoker
	Notifier       protocol.Notifier
	Reloader       protocol.ListReloader
	MissingFields  protocol.MissingFieldsDialog
	SecondaryInput protocol.SecondaryInput
	Applicants     protocol.ApplicantSource
	Navigator      protocol.RecordNavigator
	Records        persistence.RecordRepository
	Verifications  persistence.VerificationRepository
	Tracker        inflight.Tracker
	EventBus       eventbus.EventPublisher
	Tracer         trace.Tracer
}

type Dispatcher struct {
	deps   Dependencies
	poller *PollingCoordinator
	wait   time.Duration
	tracer trace.Tracer
	logger *slog.Logger
}

// NewDispatcher wires a dispatcher. recheckWait is the externally supplied
// delayed-result wait duration.
func NewDispatcher(deps Dependencies, recheckWait time.Duration, logger *slog.Logger) *Dispatcher {
	tracer := deps.Tracer
	if tracer == nil {
		tracer = otel.Tracer("action_dispatcher")
	}

	d := &Dispatcher{
		deps:   deps,
		wait:   recheckWait,
		tracer: tracer,
		logger: logger.With("module", "action_dispatcher"),
	}

	d.poller = newPollingCoordinator(deps.Registry, deps.Invoker, d.react, logger)

	return d
}

// Dispatch consumes one ActionRequest. Local gate failures return an error
// and never reach the remote; remote outcomes are reacted to here and
// reported in the Result, not as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.ActionRequest, user models.UserContext, session *models.Session) (*Result, error) {
	if req.RecordID == "" {
		return nil, fmt.Errorf("dispatch: %w", services.ErrMissingRecordID)
	}

	if req.Action == "" {
		return nil, fmt.Errorf("dispatch: %w", services.ErrMissingAction)
	}

	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "dispatcher.dispatch",
		attribute.String(otelhelper.RecordIDKey, req.RecordID),
		attribute.String(otelhelper.IntegrationKey, req.Integration),
		attribute.String(otelhelper.ActionKey, req.Action),
	)
	defer span.End()

	logger := d.logger.With(
		"record_id", req.RecordID,
		"integration", req.Integration,
		"action", req.Action,
	)

	if !ownershipExempt(req.Action) && !user.IsRecordOwner && !user.IsVerificationOwner {
		logger.WarnContext(ctx, "Dispatch blocked by access gate", "user_id", user.UserID)

		err := fmt.Errorf("dispatch: %w", services.ErrAccessDenied)
		otelhelper.SetError(span, err, attribute.String(otelhelper.ActorIDKey, user.UserID))

		return nil, err
	}

	if route := shortCircuitRoute(req.Action); route != RouteNone {
		return d.runShortCircuit(ctx, route, req, logger)
	}

	if session == nil {
		session = models.NewSession()
	}

	key := inflight.Key{RecordID: req.RecordID, Integration: req.Integration}

	if err := d.deps.Tracker.Begin(ctx, key); err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			return nil, fmt.Errorf("dispatch: %w", services.ErrDispatchInFlight)
		}

		return nil, fmt.Errorf("dispatch: failed to claim in-flight key: %w", err)
	}

	release := func() {
		if err := d.deps.Tracker.End(context.WithoutCancel(ctx), key); err != nil {
			logger.Error("Failed to release in-flight key", "error", err)
		}
	}

	result, err := d.runIntegration(ctx, req, session, release, logger)
	if err != nil {
		release()
		otelhelper.SetError(span, err)

		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.OutcomeKey, string(result.Outcome.Kind)))

	return result, nil
}

func (d *Dispatcher) runIntegration(ctx context.Context, req models.ActionRequest, session *models.Session, release func(), logger *slog.Logger) (*Result, error) {
	handler := d.deps.Registry.Resolve(req.Integration)

	payload, err := handler.Integration.BuildPayload(req.Payload, session)
	if err != nil {
		return nil, fmt.Errorf("dispatch: %w: %s", services.ErrInvalidRequest, err)
	}

	if err := handler.ValidatePayload(payload); err != nil {
		return nil, fmt.Errorf("dispatch: %w: %s", services.ErrInvalidPayload, err)
	}

	dispatchID := uuid.New().String()
	logger = logger.With("dispatch_id", dispatchID)
	logger.InfoContext(ctx, "Invoking verification integration")

	d.publish(ctx, req, events.VerificationDispatched{
		BaseEvent:   d.baseEvent(events.VerificationDispatchedEvent, req.RecordID),
		Integration: req.Integration,
		Action:      req.Action,
	})

	var outcome models.Outcome

	raw, err := d.deps.Invoker.Invoke(ctx, req.Integration, payload)
	if err != nil {
		logger.ErrorContext(ctx, "Remote verification call failed", "error", err)

		outcome = models.RemoteFailure(err.Error())
	} else {
		outcome = handler.Integration.Interpret(raw)
	}

	if handler.DelayedResult && outcome.Kind == models.OutcomeSuccess {
		task := models.PollingTask{
			Request: models.ActionRequest{
				RecordID:    req.RecordID,
				Integration: req.Integration,
				Action:      req.Action,
				Payload:     payload,
			},
			Wait:                d.wait,
			FollowUpIntegration: handler.FollowUpIntegration,
		}

		d.publish(ctx, req, events.RecheckScheduled{
			BaseEvent:           d.baseEvent(events.RecheckScheduledEvent, req.RecordID),
			Integration:         req.Integration,
			FollowUpIntegration: handler.FollowUpIntegration,
			WaitSeconds:         int64(d.wait / time.Second),
		})

		d.poller.Schedule(ctx, task, release)

		return &Result{Outcome: outcome, RecheckScheduled: true}, nil
	}

	d.react(ctx, req, outcome)
	release()

	return &Result{Outcome: outcome}, nil
}

// react applies the outcome rules: one notification per terminal outcome,
// list reload after every outcome except validation errors and secondary
// modal handoffs, and the verification trace write.
func (d *Dispatcher) react(ctx context.Context, req models.ActionRequest, outcome models.Outcome) {
	logger := d.logger.With(
		"record_id", req.RecordID,
		"integration", req.Integration,
		"outcome", outcome.Kind,
	)
	logger.InfoContext(ctx, "Reacting to verification outcome")

	switch outcome.Kind {
	case models.OutcomeSuccess:
		d.deps.Notifier.Notify(ctx, "Verification", "Verification completed successfully", protocol.SeveritySuccess)
		d.reload(ctx, req.RecordID, logger)

	case models.OutcomeValidationError:
		d.deps.Notifier.Notify(ctx, "Verification", "Mandatory fields are missing", protocol.SeverityWarn)

		if err := d.deps.MissingFields.OpenMissingFields(ctx, req.RecordID, outcome.MissingFields); err != nil {
			logger.ErrorContext(ctx, "Failed to open missing-fields dialog", "error", err)
		}

	case models.OutcomeHold, models.OutcomeSecondaryInputRequired:
		d.openSecondaryInput(ctx, outcome, logger)

		// Reload is deferred to the secondary modal's own save.
		return

	case models.OutcomeAlreadyInProgress:
		d.deps.Notifier.Notify(ctx, "Verification", "Verification is already in progress", protocol.SeverityWarn)
		d.reload(ctx, req.RecordID, logger)

	case models.OutcomeAlreadyCompleted:
		d.deps.Notifier.Notify(ctx, "Verification", "Verification is already completed", protocol.SeverityInfo)
		d.reload(ctx, req.RecordID, logger)

	case models.OutcomeRemoteFailure:
		message := outcome.Message
		if message == "" {
			message = "Verification failed"
		}

		d.deps.Notifier.Notify(ctx, "Verification failed", message, protocol.SeverityError)

		// The remote side may have partially mutated data even on a reported
		// failure, so the list is still resynchronized.
		d.reload(ctx, req.RecordID, logger)
	}

	if outcome.Terminal() {
		d.saveTrace(ctx, req, outcome, logger)
		d.publish(ctx, req, events.VerificationCompleted{
			BaseEvent:   d.baseEvent(events.VerificationCompletedEvent, req.RecordID),
			Integration: req.Integration,
			Action:      req.Action,
			Outcome:     outcome.Kind,
			Message:     outcome.Message,
		})
	}
}

func (d *Dispatcher) runShortCircuit(ctx context.Context, route Route, req models.ActionRequest, logger *slog.Logger) (*Result, error) {
	logger.InfoContext(ctx, "Taking short-circuit route", "route", route)

	var err error

	switch route {
	case RouteDetail:
		err = d.deps.Navigator.OpenDetail(ctx, req.RecordID)
	case RouteEdit:
		err = d.deps.Navigator.OpenEdit(ctx, req.RecordID)
	case RouteExternalTool:
		err = d.deps.Navigator.OpenExternalTool(ctx, req.RecordID, req.Payload)
	case RouteDelete:
		err = d.deps.Records.SoftDelete(ctx, req.RecordID)
		if err == nil {
			d.deps.Notifier.Notify(ctx, "Record", "Record deleted", protocol.SeveritySuccess)
			d.reload(ctx, req.RecordID, logger)
		}
	case RouteNone:
	}

	if err != nil {
		return nil, fmt.Errorf("dispatch: short-circuit route %s failed: %w", route, err)
	}

	return &Result{Route: route}, nil
}

func (d *Dispatcher) openSecondaryInput(ctx context.Context, outcome models.Outcome, logger *slog.Logger) {
	applicant, err := d.deps.Applicants.DependentApplicant(ctx, outcome.ApplicantID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch dependent applicant", "applicant_id", outcome.ApplicantID, "error", err)
		d.deps.Notifier.Notify(ctx, "Verification", "Failed to load dependent applicant", protocol.SeverityError)

		return
	}

	if err := d.deps.SecondaryInput.OpenSecondaryInput(ctx, outcome.ApplicantID, applicant); err != nil {
		logger.ErrorContext(ctx, "Failed to open secondary input modal", "applicant_id", outcome.ApplicantID, "error", err)
	}
}

func (d *Dispatcher) reload(ctx context.Context, recordID string, logger *slog.Logger) {
	if err := d.deps.Reloader.Reload(ctx, recordID); err != nil {
		logger.ErrorContext(ctx, "Failed to reload record list", "error", err)
	}
}

func (d *Dispatcher) saveTrace(ctx context.Context, req models.ActionRequest, outcome models.Outcome, logger *slog.Logger) {
	if d.deps.Verifications == nil {
		return
	}

	result := &models.VerificationResult{
		ID:          uuid.New().String(),
		RecordID:    req.RecordID,
		Integration: req.Integration,
		Action:      req.Action,
		Kind:        outcome.Kind,
		Message:     outcome.Message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.deps.Verifications.Save(ctx, result); err != nil {
		logger.ErrorContext(ctx, "Failed to save verification trace", "error", err)
	}
}

func (d *Dispatcher) publish(ctx context.Context, req models.ActionRequest, event eventbus.Event) {
	if d.deps.EventBus == nil {
		return
	}

	if err := d.deps.EventBus.Publish(ctx, req.RecordID, event); err != nil {
		d.logger.ErrorContext(ctx, "Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

func (d *Dispatcher) baseEvent(eventType events.EventType, recordID string) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RecordID:  recordID,
	}
}
