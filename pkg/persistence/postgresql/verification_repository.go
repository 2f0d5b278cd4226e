package postgresql

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// VerificationRepository stores terminal outcome traces.
type VerificationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewVerificationRepository(db *sql.DB, logger *slog.Logger) *VerificationRepository {
	return &VerificationRepository{db: db, logger: logger}
}

func (r *VerificationRepository) Save(ctx context.Context, result *models.VerificationResult) error {
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_results (id, record_id, integration, action, kind, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.ID,
		result.RecordID,
		result.Integration,
		result.Action,
		string(result.Kind),
		result.Message,
		result.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", result.ID, err)
	}

	return nil
}

func (r *VerificationRepository) ByRecord(ctx context.Context, recordID string) ([]*models.VerificationResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record_id, integration, action, kind, message, created_at
		FROM verification_results
		WHERE record_id = $1
		ORDER BY created_at DESC`,
		recordID,
	)
	if err != nil {
		return nil, persistence.NewStoreError("ByRecord", recordID, err)
	}
	defer rows.Close()

	results := make([]*models.VerificationResult, 0)

	for rows.Next() {
		var (
			result models.VerificationResult
			kind   string
		)

		err := rows.Scan(
			&result.ID,
			&result.RecordID,
			&result.Integration,
			&result.Action,
			&kind,
			&result.Message,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, persistence.NewStoreError("ByRecord", recordID, err)
		}

		result.Kind = models.OutcomeKind(kind)
		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("ByRecord", recordID, err)
	}

	return results, nil
}
