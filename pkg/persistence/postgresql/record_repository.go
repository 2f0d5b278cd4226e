package postgresql

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// RecordRepository stores soft-deletion markers for applicant records.
type RecordRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRecordRepository(db *sql.DB, logger *slog.Logger) *RecordRepository {
	return &RecordRepository{db: db, logger: logger}
}

func (r *RecordRepository) SoftDelete(ctx context.Context, recordID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO record_deletions (record_id, deleted_at)
		VALUES ($1, NOW())
		ON CONFLICT (record_id) DO UPDATE SET deleted_at = NOW()`,
		recordID,
	)
	if err != nil {
		return persistence.NewStoreError("SoftDelete", recordID, err)
	}

	return nil
}
