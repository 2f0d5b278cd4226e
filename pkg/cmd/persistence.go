package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence/file"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence/postgresql"
)

// NewPersistence selects the backend from the database URL scheme:
// postgres URLs get the SQL backend, anything else is treated as a file
// root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	switch parsePersistenceProvider(databaseURL) {
	case "postgresql":
		return postgresql.NewPersistence(ctx, logger, databaseURL)
	default:
		return file.NewPersistence(strings.TrimPrefix(databaseURL, "file://")), nil
	}
}

func parsePersistenceProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	switch scheme {
	case "postgres", "postgresql":
		return "postgresql"
	default:
		return "file"
	}
}
