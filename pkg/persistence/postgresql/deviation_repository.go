package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// DeviationRepository stores deviation records in the deviations table.
type DeviationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDeviationRepository(db *sql.DB, logger *slog.Logger) *DeviationRepository {
	return &DeviationRepository{db: db, logger: logger}
}

const deviationColumns = `id, record_id, description, approving_authorities, decision,
	decision_actor_id, decision_remark, decided_at, mitigant_ref, created_at, updated_at`

func (r *DeviationRepository) Save(ctx context.Context, deviation *models.DeviationRecord) error {
	now := time.Now().UTC()
	if deviation.CreatedAt.IsZero() {
		deviation.CreatedAt = now
	}

	deviation.UpdatedAt = now

	var actorID, remark sql.NullString

	var decidedAt sql.NullTime

	if deviation.DecisionMeta != nil {
		actorID = sql.NullString{String: deviation.DecisionMeta.ActorID, Valid: true}
		remark = sql.NullString{String: deviation.DecisionMeta.Remark, Valid: true}
		decidedAt = sql.NullTime{Time: deviation.DecisionMeta.DecidedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deviations (`+deviationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			record_id = EXCLUDED.record_id,
			description = EXCLUDED.description,
			approving_authorities = EXCLUDED.approving_authorities,
			decision = EXCLUDED.decision,
			decision_actor_id = EXCLUDED.decision_actor_id,
			decision_remark = EXCLUDED.decision_remark,
			decided_at = EXCLUDED.decided_at,
			mitigant_ref = EXCLUDED.mitigant_ref,
			updated_at = EXCLUDED.updated_at`,
		deviation.ID,
		deviation.RecordID,
		deviation.Description,
		pq.Array(deviation.ApprovingAuthorities),
		string(deviation.Decision),
		actorID,
		remark,
		decidedAt,
		deviation.MitigantRef,
		deviation.CreatedAt,
		deviation.UpdatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", deviation.ID, err)
	}

	return nil
}

func (r *DeviationRepository) GetByID(ctx context.Context, id string) (*models.DeviationRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+deviationColumns+` FROM deviations WHERE id = $1`, id)

	record, err := scanDeviation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("GetByID", id, persistence.ErrDeviationNotFound)
		}

		return nil, persistence.NewStoreError("GetByID", id, err)
	}

	return record, nil
}

func (r *DeviationRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.DeviationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+deviationColumns+` FROM deviations WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, persistence.NewStoreError("GetByIDs", "", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.DeviationRecord, len(ids))

	for rows.Next() {
		record, err := scanDeviation(rows)
		if err != nil {
			return nil, persistence.NewStoreError("GetByIDs", "", err)
		}

		byID[record.ID] = record
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("GetByIDs", "", err)
	}

	// Preserve selection order and surface any missing ID.
	records := make([]*models.DeviationRecord, 0, len(ids))

	for _, id := range ids {
		record, ok := byID[id]
		if !ok {
			return nil, persistence.NewStoreError("GetByIDs", id, persistence.ErrDeviationNotFound)
		}

		records = append(records, record)
	}

	return records, nil
}

func (r *DeviationRepository) List(ctx context.Context, filter persistence.DeviationFilter) ([]*models.DeviationRecord, error) {
	query := `SELECT ` + deviationColumns + ` FROM deviations WHERE 1=1`
	args := []any{}

	if filter.RecordID != "" {
		args = append(args, filter.RecordID)
		query += fmt.Sprintf(" AND record_id = $%d", len(args))
	}

	if filter.Decision != nil {
		args = append(args, string(*filter.Decision))
		query += fmt.Sprintf(" AND decision = $%d", len(args))
	}

	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistence.NewStoreError("List", "", err)
	}
	defer rows.Close()

	records := make([]*models.DeviationRecord, 0)

	for rows.Next() {
		record, err := scanDeviation(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "", err)
	}

	return records, nil
}

func (r *DeviationRepository) ApplyDecision(ctx context.Context, ids []string, decision models.Decision, meta models.DecisionMeta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence.NewStoreError("ApplyDecision", "", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE deviations SET
			decision = $1,
			decision_actor_id = $2,
			decision_remark = $3,
			decided_at = $4,
			updated_at = NOW()
		WHERE id = ANY($5)`,
		string(decision),
		meta.ActorID,
		meta.Remark,
		meta.DecidedAt,
		pq.Array(ids),
	)
	if err != nil {
		_ = tx.Rollback()

		return persistence.NewStoreError("ApplyDecision", "", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected != int64(len(ids)) {
		_ = tx.Rollback()

		return persistence.NewStoreError("ApplyDecision", "", persistence.ErrDeviationNotFound)
	}

	if err := tx.Commit(); err != nil {
		return persistence.NewStoreError("ApplyDecision", "", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeviation(row rowScanner) (*models.DeviationRecord, error) {
	var (
		record     models.DeviationRecord
		decision   string
		authList   pq.StringArray
		actorID    sql.NullString
		remark     sql.NullString
		decidedAt  sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.RecordID,
		&record.Description,
		&authList,
		&decision,
		&actorID,
		&remark,
		&decidedAt,
		&record.MitigantRef,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ApprovingAuthorities = []string(authList)
	record.Decision = models.Decision(decision)

	if actorID.Valid {
		record.DecisionMeta = &models.DecisionMeta{
			ActorID:   actorID.String,
			Remark:    remark.String,
			DecidedAt: decidedAt.Time,
		}
	}

	return &record, nil
}
