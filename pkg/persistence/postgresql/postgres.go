// Package postgresql provides PostgreSQL persistence for deviations,
// verification results and record deletion state.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db               *sql.DB
	logger           *slog.Logger
	deviationRepo    *DeviationRepository
	verificationRepo *VerificationRepository
	recordRepo       *RecordRepository
}

// NewPersistence connects, runs migrations, and returns the store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:               database,
		logger:           logger,
		deviationRepo:    NewDeviationRepository(database, logger),
		verificationRepo: NewVerificationRepository(database, logger),
		recordRepo:       NewRecordRepository(database, logger),
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) DeviationRepository() persistence.DeviationRepository {
	return p.deviationRepo
}

func (p *Persistence) VerificationRepository() persistence.VerificationRepository {
	return p.verificationRepo
}

func (p *Persistence) RecordRepository() persistence.RecordRepository {
	return p.recordRepo
}
