package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/orderhub/internal/config"
	"github.com/deppfellow/orderhub/internal/database"
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	usersFixture = `[
		{"id": 1, "first_name": "Ann", "last_name": "Lee", "age": 30, "email": "ann@example.com", "role": "customer", "phone": "+100000"},
		{"id": 2, "first_name": "Bob", "last_name": "Ray", "age": null, "email": "bob@example.com", "role": "executor", "phone": null}
	]`
	ordersFixture = `[
		{"id": 1, "name": "Fix sink", "description": "Kitchen sink leaks", "start_date": "02/08/2013", "end_date": "03/08/2013", "address": "4 Elm St", "price": 100, "customer_id": 1, "executor_id": 2}
	]`
	offersFixture = `[
		{"id": 1, "order_id": 1, "executor_id": 2},
		{"id": 2, "order_id": 1, "executor_id": 99}
	]`
)

func writeFixtures(t *testing.T, users, orders, offers string) config.SeedConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.SeedConfig{
		UsersFile:  filepath.Join(dir, "users.json"),
		OrdersFile: filepath.Join(dir, "orders.json"),
		OffersFile: filepath.Join(dir, "offers.json"),
	}
	require.NoError(t, os.WriteFile(cfg.UsersFile, []byte(users), 0o600))
	require.NoError(t, os.WriteFile(cfg.OrdersFile, []byte(orders), 0o600))
	require.NoError(t, os.WriteFile(cfg.OffersFile, []byte(offers), 0o600))
	return cfg
}

func newStore(t *testing.T) *gorm.DB {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.New(config.Default(), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), &logger, db))
	return db.DB
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestLoadInsertsEveryFixture(t *testing.T) {
	db := newStore(t)
	logger := zerolog.Nop()

	stats, err := Load(context.Background(), db, writeFixtures(t, usersFixture, ordersFixture, offersFixture), &logger)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 2, Orders: 1, Offers: 2}, stats)

	assert.Equal(t, int64(2), count(t, db, &model.User{}))
	assert.Equal(t, int64(1), count(t, db, &model.Order{}))
	assert.Equal(t, int64(2), count(t, db, &model.Offer{}))

	var bob model.User
	require.NoError(t, db.First(&bob, 2).Error)
	assert.Equal(t, "Bob", *bob.FirstName)
	assert.Nil(t, bob.Age)
	assert.Nil(t, bob.Phone)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		users   string
		orders  string
		offers  string
		wantErr string
	}{
		{
			name:    "malformed json",
			users:   `[{"id": 1,`,
			orders:  ordersFixture,
			offers:  offersFixture,
			wantErr: "decode fixture",
		},
		{
			name:    "missing key",
			users:   usersFixture,
			orders:  `[{"id": 1, "name": "Fix sink"}]`,
			offers:  offersFixture,
			wantErr: "record 0 is missing description",
		},
		{
			name:    "null id",
			users:   usersFixture,
			orders:  ordersFixture,
			offers:  `[{"id": null, "order_id": 1, "executor_id": 2}]`,
			wantErr: "has no positive id",
		},
		{
			name:    "duplicate id rolls back earlier tables",
			users:   usersFixture,
			orders:  ordersFixture,
			offers:  `[{"id": 1, "order_id": 1, "executor_id": 2}, {"id": 1, "order_id": 1, "executor_id": 2}]`,
			wantErr: "seed offers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newStore(t)
			logger := zerolog.Nop()

			_, err := Load(context.Background(), db, writeFixtures(t, tt.users, tt.orders, tt.offers), &logger)
			assert.ErrorContains(t, err, tt.wantErr)

			assert.Zero(t, count(t, db, &model.User{}))
			assert.Zero(t, count(t, db, &model.Order{}))
			assert.Zero(t, count(t, db, &model.Offer{}))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	db := newStore(t)
	logger := zerolog.Nop()

	cfg := writeFixtures(t, usersFixture, ordersFixture, offersFixture)
	cfg.OrdersFile = filepath.Join(t.TempDir(), "absent.json")

	_, err := Load(context.Background(), db, cfg, &logger)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRepositoryFixtures(t *testing.T) {
	db := newStore(t)
	logger := zerolog.Nop()

	root := filepath.Join("..", "..", "data")
	stats, err := Load(context.Background(), db, config.SeedConfig{
		UsersFile:  filepath.Join(root, "users.json"),
		OrdersFile: filepath.Join(root, "orders.json"),
		OffersFile: filepath.Join(root, "offers.json"),
	}, &logger)
	require.NoError(t, err)
	assert.Positive(t, stats.Users)
	assert.Positive(t, stats.Orders)
	assert.Positive(t, stats.Offers)
}

func TestLoadIgnoresCancellation(t *testing.T) {
	db := newStore(t)
	logger := zerolog.Nop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := Load(ctx, db, writeFixtures(t, usersFixture, ordersFixture, offersFixture), &logger)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 2, Orders: 1, Offers: 2}, stats)
	assert.Equal(t, int64(2), count(t, db, &model.User{}))
}
