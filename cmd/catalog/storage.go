package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"

	"github.com/veo1/inventory-catalog/config"
	"github.com/veo1/inventory-catalog/models"
	"github.com/veo1/inventory-catalog/storage/sqlite"
)

// stores is the opened persistence layer and how to release it.
type stores struct {
	categories models.Store[models.Category]
	items      models.Store[models.Item]
	close      func() error
}

// openStores connects to the configured backend and makes sure its tables exist.
func openStores(cfg config.Config) (*stores, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite storage at %s", cfg.SQLitePath)
		return &stores{
			categories: store.Categories(),
			items:      store.Items(),
			close:      store.Close,
		}, nil

	case config.StoragePostgres:
		sqlDB, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db, err := models.Open(postgres.New(postgres.Config{Conn: sqlDB}))
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Printf("Using PostgreSQL storage at %s:%s/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		return &stores{
			categories: models.NewGormStore[models.Category](db),
			items:      models.NewGormStore[models.Item](db),
			close:      sqlDB.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
