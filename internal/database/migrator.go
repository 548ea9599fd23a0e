package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/orderhub/internal/model"
	"github.com/rs/zerolog"
)

// Models lists the tables in dependency order: orders reference users,
// offers reference orders and users.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Order{},
		&model.Offer{},
	}
}

// Migrate creates every table that does not exist yet. Running it twice is
// a no-op.
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	migrator := db.DB.WithContext(ctx).Migrator()

	var created []string
	for _, m := range Models() {
		if migrator.HasTable(m) {
			continue
		}
		if err := migrator.AutoMigrate(m); err != nil {
			return fmt.Errorf("creating table for %T: %w", m, err)
		}
		created = append(created, fmt.Sprintf("%T", m))
	}

	if len(created) == 0 {
		logger.Info().Msg("store schema up to date")
	} else {
		logger.Info().Strs("models", created).Msg("created store schema")
	}
	return nil
}
