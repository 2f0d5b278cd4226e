package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

type deletionMarker struct {
	RecordID  string    `json:"record_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// RecordRepository keeps soft-deletion markers under <root>/records. The
// applicant records themselves live in the external list data source; only
// the deletion state is owned here.
type RecordRepository struct {
	dir string
	mu  sync.Mutex
}

func NewRecordRepository(root string) *RecordRepository {
	return &RecordRepository{dir: filepath.Join(root, "records")}
}

func (r *RecordRepository) SoftDelete(_ context.Context, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return persistence.NewStoreError("SoftDelete", recordID, err)
	}

	marker := deletionMarker{RecordID: recordID, DeletedAt: time.Now().UTC()}

	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return persistence.NewStoreError("SoftDelete", recordID, err)
	}

	if err := os.WriteFile(filepath.Join(r.dir, recordID+".deleted.json"), data, 0o644); err != nil {
		return persistence.NewStoreError("SoftDelete", recordID, err)
	}

	return nil
}
