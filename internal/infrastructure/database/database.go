package database

import (
	"energy-trading-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens the GORM store. A Postgres DSN uses the postgres driver with
// PreferSimpleProtocol (avoids 42P05 under connection poolers such as
// PgBouncer/Supabase). An empty DSN opens an in-process sqlite ":memory:"
// database: all state is volatile and discarded at shutdown, which is the
// intended lifetime of the marketplace ledger. The in-memory pool is capped
// at one connection so every connection sees the same database and
// check-then-mutate transactions serialize.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the marketplace models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Seller{},
		&domain.Listing{},
		&domain.Purchase{},
		&domain.ListingEvent{},
	)
}
