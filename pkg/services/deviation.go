package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/approval"
	"github.com/anunay-mishra-24/loanverify/pkg/eventbus"
	"github.com/anunay-mishra-24/loanverify/pkg/events"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/otelhelper"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// BulkDecisionRequest is the header-action input for deciding a selection
// of deviations in one batch.
type BulkDecisionRequest struct {
	DeviationIDs  []string
	Decision      models.Decision
	Action        approval.ActionKind
	Role          approval.Role
	UserID        string
	RecordOwnerID string
	Remark        string
}

// Deviation provides deviation listing and the bulk decision operation.
type Deviation struct {
	persistence persistence.Persistence
	resolver    *approval.Resolver
	eventBus    eventbus.EventPublisher
	logger      *slog.Logger
}

func NewDeviation(p persistence.Persistence, resolver *approval.Resolver, eventBus eventbus.EventPublisher, logger *slog.Logger) *Deviation {
	return &Deviation{
		persistence: p,
		resolver:    resolver,
		eventBus:    eventBus,
		logger:      logger.With("module", "deviation_service"),
	}
}

// List returns deviations, optionally narrowed by decision state.
func (s *Deviation) List(ctx context.Context, filter persistence.DeviationFilter) ([]*models.DeviationRecord, error) {
	return s.persistence.DeviationRepository().List(ctx, filter)
}

// Get returns one deviation by id.
func (s *Deviation) Get(ctx context.Context, id string) (*models.DeviationRecord, error) {
	return s.persistence.DeviationRepository().GetByID(ctx, id)
}

// Create registers a deviation raised against a record. New deviations
// always start pending; a decision arrives only through Decide.
func (s *Deviation) Create(ctx context.Context, record *models.DeviationRecord) (*models.DeviationRecord, error) {
	op := "Deviation.Create"

	if record.RecordID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingRecordID)
	}

	if len(record.ApprovingAuthorities) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingAuthorities)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	record.Decision = models.DecisionPending
	record.DecisionMeta = nil
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.persistence.DeviationRepository().Save(ctx, record); err != nil {
		return nil, fmt.Errorf("%s: failed to save deviation: %w", op, err)
	}

	s.logger.InfoContext(ctx, "Deviation registered", "deviation_id", record.ID, "record_id", record.RecordID)

	return record, nil
}

// Decide authorizes and submits one bulk decision. The resolver's rejection
// is returned as ErrAuthorizationRejected with the surfaced reason; only an
// authorized batch reaches the remote submitter, and only a submitted batch
// is recorded locally.
func (s *Deviation) Decide(ctx context.Context, req BulkDecisionRequest) (models.AuthorizationResult, error) {
	op := "Deviation.Decide"

	if len(req.DeviationIDs) == 0 {
		return models.AuthorizationResult{}, fmt.Errorf("%s: %w", op, ErrEmptySelection)
	}

	if req.UserID == "" {
		return models.AuthorizationResult{}, fmt.Errorf("%s: %w", op, ErrMissingActorID)
	}

	if req.Decision != models.DecisionApproved && req.Decision != models.DecisionRejected {
		return models.AuthorizationResult{}, fmt.Errorf("%s: %w", op, ErrInvalidDecision)
	}

	ctx, span := otelhelper.StartSpan(ctx, otel.Tracer("deviation_service"), "deviation.decide",
		attribute.String(otelhelper.ActorIDKey, req.UserID),
		attribute.String(otelhelper.DecisionKey, string(req.Decision)),
		attribute.Int("loanverify.selection.size", len(req.DeviationIDs)),
	)
	defer span.End()

	records, err := s.persistence.DeviationRepository().GetByIDs(ctx, req.DeviationIDs)
	if err != nil {
		err = fmt.Errorf("%s: failed to load selection: %w", op, err)
		otelhelper.SetError(span, err)

		return models.AuthorizationResult{}, err
	}

	selection := make([]models.ApprovalCandidate, 0, len(records))
	for _, record := range records {
		selection = append(selection, record.Candidate())
	}

	meta := models.DecisionMeta{
		ActorID:   req.UserID,
		Remark:    req.Remark,
		DecidedAt: time.Now().UTC(),
	}

	result, err := s.resolver.Authorize(ctx, approval.BulkRequest{
		Selection:     selection,
		Role:          req.Role,
		Action:        req.Action,
		Decision:      req.Decision,
		UserID:        req.UserID,
		RecordOwnerID: req.RecordOwnerID,
		Meta:          meta,
	})
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		otelhelper.SetError(span, err)

		return models.AuthorizationResult{}, err
	}

	if result.Rejected() {
		err := fmt.Errorf("%s: %w: %s", op, ErrAuthorizationRejected, result.RejectedReason)
		otelhelper.SetError(span, err)

		return result, err
	}

	if err := s.persistence.DeviationRepository().ApplyDecision(ctx, result.EligibleIDs, req.Decision, meta); err != nil {
		// The remote submission already succeeded; the local trace is
		// reconciled on the next list reload.
		s.logger.ErrorContext(ctx, "Failed to record decision locally", "error", err)
	}

	s.publishDecision(ctx, req, result)

	return result, nil
}

func (s *Deviation) publishDecision(ctx context.Context, req BulkDecisionRequest, result models.AuthorizationResult) {
	if s.eventBus == nil {
		return
	}

	event := events.DecisionSubmitted{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.DecisionSubmittedEvent,
			Timestamp: time.Now().UTC(),
			RecordID:  req.RecordOwnerID,
		},
		DeviationIDs: result.EligibleIDs,
		Decision:     req.Decision,
		ActorID:      req.UserID,
	}

	if err := s.eventBus.Publish(ctx, req.UserID, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish decision event", "error", err)
	}
}
