package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// VerificationRepository stores one JSON array of outcomes per record under
// <root>/verifications.
type VerificationRepository struct {
	dir string
	mu  sync.Mutex
}

func NewVerificationRepository(root string) *VerificationRepository {
	return &VerificationRepository{dir: filepath.Join(root, "verifications")}
}

func (r *VerificationRepository) Save(_ context.Context, result *models.VerificationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return persistence.NewStoreError("Save", result.RecordID, err)
	}

	results, err := r.read(result.RecordID)
	if err != nil {
		return err
	}

	results = append(results, result)

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return persistence.NewStoreError("Save", result.RecordID, err)
	}

	if err := os.WriteFile(r.path(result.RecordID), data, 0o644); err != nil {
		return persistence.NewStoreError("Save", result.RecordID, err)
	}

	return nil
}

func (r *VerificationRepository) ByRecord(_ context.Context, recordID string) ([]*models.VerificationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results, err := r.read(recordID)
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	return results, nil
}

func (r *VerificationRepository) read(recordID string) ([]*models.VerificationResult, error) {
	data, err := os.ReadFile(r.path(recordID))
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.VerificationResult{}, nil
		}

		return nil, persistence.NewStoreError("Get", recordID, err)
	}

	var results []*models.VerificationResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, persistence.NewStoreError("Get", recordID, err)
	}

	return results, nil
}

func (r *VerificationRepository) path(recordID string) string {
	return filepath.Join(r.dir, recordID+".json")
}
