// Package file provides file-based persistence for development and tests.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
)

// Persistence implements persistence.Persistence on the local file system.
type Persistence struct {
	root             string
	deviationRepo    *DeviationRepository
	verificationRepo *VerificationRepository
	recordRepo       *RecordRepository
}

// NewPersistence creates a file persistence layer rooted at the given
// directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:             cleanRoot,
		deviationRepo:    NewDeviationRepository(cleanRoot),
		verificationRepo: NewVerificationRepository(cleanRoot),
		recordRepo:       NewRecordRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) DeviationRepository() persistence.DeviationRepository {
	return fp.deviationRepo
}

func (fp *Persistence) VerificationRepository() persistence.VerificationRepository {
	return fp.verificationRepo
}

func (fp *Persistence) RecordRepository() persistence.RecordRepository {
	return fp.recordRepo
}
