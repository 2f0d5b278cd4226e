package services

import (
	"context"
	"fmt"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// Verification exposes the persisted verification outcome history.
type Verification struct {
	persistence persistence.Persistence
}

func NewVerification(p persistence.Persistence) *Verification {
	return &Verification{persistence: p}
}

// History returns the terminal outcomes recorded for a record, most recent
// first.
func (s *Verification) History(ctx context.Context, recordID string) ([]*models.VerificationResult, error) {
	if recordID == "" {
		return nil, fmt.Errorf("Verification.History: %w", ErrMissingRecordID)
	}

	return s.persistence.VerificationRepository().ByRecord(ctx, recordID)
}
