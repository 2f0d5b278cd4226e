package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// DeviationRepository stores one JSON document per deviation under
// <root>/deviations.
type DeviationRepository struct {
	dir string
	mu  sync.RWMutex
}

func NewDeviationRepository(root string) *DeviationRepository {
	return &DeviationRepository{dir: filepath.Join(root, "deviations")}
}

func (r *DeviationRepository) Save(_ context.Context, deviation *models.DeviationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if deviation.ID == "" {
		return persistence.NewStoreError("Save", "", fmt.Errorf("deviation ID is required"))
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return persistence.NewStoreError("Save", deviation.ID, err)
	}

	now := time.Now().UTC()
	if deviation.CreatedAt.IsZero() {
		deviation.CreatedAt = now
	}

	deviation.UpdatedAt = now

	data, err := json.MarshalIndent(deviation, "", "  ")
	if err != nil {
		return persistence.NewStoreError("Save", deviation.ID, err)
	}

	if err := os.WriteFile(r.path(deviation.ID), data, 0o644); err != nil {
		return persistence.NewStoreError("Save", deviation.ID, err)
	}

	return nil
}

func (r *DeviationRepository) GetByID(_ context.Context, id string) (*models.DeviationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.read(id)
}

func (r *DeviationRepository) GetByIDs(_ context.Context, ids []string) ([]*models.DeviationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*models.DeviationRecord, 0, len(ids))

	for _, id := range ids {
		record, err := r.read(id)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

func (r *DeviationRepository) List(_ context.Context, filter persistence.DeviationFilter) ([]*models.DeviationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.DeviationRecord{}, nil
		}

		return nil, persistence.NewStoreError("List", "", err)
	}

	records := make([]*models.DeviationRecord, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		record, err := r.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}

		if filter.RecordID != "" && record.RecordID != filter.RecordID {
			continue
		}

		if filter.Decision != nil && record.Decision != *filter.Decision {
			continue
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

func (r *DeviationRepository) ApplyDecision(ctx context.Context, ids []string, decision models.Decision, meta models.DecisionMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Load everything first so a missing ID fails the batch before any write.
	records := make([]*models.DeviationRecord, 0, len(ids))

	for _, id := range ids {
		record, err := r.read(id)
		if err != nil {
			return err
		}

		records = append(records, record)
	}

	for _, record := range records {
		record.Decision = decision
		metaCopy := meta
		record.DecisionMeta = &metaCopy
		record.UpdatedAt = time.Now().UTC()

		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return persistence.NewStoreError("ApplyDecision", record.ID, err)
		}

		if err := os.WriteFile(r.path(record.ID), data, 0o644); err != nil {
			return persistence.NewStoreError("ApplyDecision", record.ID, err)
		}
	}

	return nil
}

func (r *DeviationRepository) read(id string) (*models.DeviationRecord, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStoreError("Get", id, persistence.ErrDeviationNotFound)
		}

		return nil, persistence.NewStoreError("Get", id, err)
	}

	var record models.DeviationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, persistence.NewStoreError("Get", id, err)
	}

	return &record, nil
}

func (r *DeviationRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}
