// Package persistence defines the storage contracts for deviation records,
// verification results and applicant records.
package persistence

import (
	"context"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

// DeviationFilter narrows deviation listings.
type DeviationFilter struct {
	RecordID string
	Decision *models.Decision
}

// DeviationRepository stores risk-exception records and their decisions.
type DeviationRepository interface {
	Save(ctx context.Context, deviation *models.DeviationRecord) error
	GetByID(ctx context.Context, id string) (*models.DeviationRecord, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.DeviationRecord, error)
	List(ctx context.Context, filter DeviationFilter) ([]*models.DeviationRecord, error)

	// ApplyDecision marks every listed deviation with the decision and its
	// metadata in one call, mirroring the atomic remote submission.
	ApplyDecision(ctx context.Context, ids []string, decision models.Decision, meta models.DecisionMeta) error
}

// VerificationRepository stores the terminal outcome trace per record and
// integration.
type VerificationRepository interface {
	Save(ctx context.Context, result *models.VerificationResult) error
	ByRecord(ctx context.Context, recordID string) ([]*models.VerificationResult, error)
}

// RecordRepository covers the direct record mutations the dispatcher's
// short-circuit routes need.
type RecordRepository interface {
	SoftDelete(ctx context.Context, recordID string) error
}

// Persistence aggregates the repositories behind one switchable backend.
type Persistence interface {
	DeviationRepository() DeviationRepository
	VerificationRepository() VerificationRepository
	RecordRepository() RecordRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
