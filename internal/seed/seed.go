// Package seed loads the startup fixtures into the store.
//
// Each fixture is a JSON array of flat records whose keys cover the
// entity's full field set, id included. Users, orders and offers are
// inserted in that order inside one transaction: either every record is
// stored or none is.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deppfellow/orderhub/internal/config"
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const batchSize = 100

// Stats reports how many rows were inserted per table.
type Stats struct {
	Users  int
	Orders int
	Offers int
}

type record interface {
	Missing() []string
}

// Load reads the fixture files named by cfg and inserts their records.
func Load(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, logger *zerolog.Logger) (Stats, error) {
	userRecords, err := readFixture[model.UserPayload](cfg.UsersFile)
	if err != nil {
		return Stats{}, err
	}
	orderRecords, err := readFixture[model.OrderPayload](cfg.OrdersFile)
	if err != nil {
		return Stats{}, err
	}
	offerRecords, err := readFixture[model.OfferPayload](cfg.OffersFile)
	if err != nil {
		return Stats{}, err
	}

	users, err := toRows[model.UserPayload, model.User](cfg.UsersFile, userRecords, (*model.UserPayload).ToModel)
	if err != nil {
		return Stats{}, err
	}
	orders, err := toRows[model.OrderPayload, model.Order](cfg.OrdersFile, orderRecords, (*model.OrderPayload).ToModel)
	if err != nil {
		return Stats{}, err
	}
	offers, err := toRows[model.OfferPayload, model.Offer](cfg.OffersFile, offerRecords, (*model.OfferPayload).ToModel)
	if err != nil {
		return Stats{}, err
	}

	// Cancelling mid-transaction would drop the store's only connection.
	err = db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := insert(tx, "users", users); err != nil {
			return err
		}
		if err := insert(tx, "orders", orders); err != nil {
			return err
		}
		return insert(tx, "offers", offers)
	})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Users: len(users), Orders: len(orders), Offers: len(offers)}

	logger.Info().
		Int("users", stats.Users).
		Int("orders", stats.Orders).
		Int("offers", stats.Offers).
		Msg("seeded store from fixtures")

	return stats, nil
}

// readFixture decodes a fixture file and checks that every record
// carries every key. Null values are allowed.
func readFixture[P any, R interface {
	*P
	record
}](path string) ([]P, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var records []P
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}

	for i := range records {
		if missing := R(&records[i]).Missing(); len(missing) > 0 {
			return nil, fmt.Errorf("fixture %s: record %d is missing %s", path, i, strings.Join(missing, ", "))
		}
	}

	return records, nil
}

// toRows converts records into rows. Fixture ids are explicit, so a null
// or non-positive id is rejected.
func toRows[P any, E any, R interface {
	*E
	GetID() int
}](path string, records []P, convert func(*P) R) ([]R, error) {
	rows := make([]R, 0, len(records))
	for i := range records {
		row := convert(&records[i])
		if row.GetID() <= 0 {
			return nil, fmt.Errorf("fixture %s: record %d has no positive id", path, i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func insert[R any](tx *gorm.DB, table string, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
