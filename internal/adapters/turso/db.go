package turso

import (
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/config"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/database"
)

// NewDB opens the catalog database described by cfg.
func NewDB(cfg config.Database) (*sql.DB, error) {
	client, err := database.New(cfg.URL, cfg.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.URL, err)
	}
	return client.DB, nil
}

// mapError turns unique violations into domain.ErrConstraintConflict.
func mapError(err error) error {
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrConstraintConflict, err)
	}
	return err
}

// streamRetries bounds retries of reads that hit a stale Turso stream.
const streamRetries = 3

type scanner interface {
	Scan(dest ...any) error
}
