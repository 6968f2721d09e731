// Package sqlite provides a SQLite-backed catalog storage implementation.
package sqlite

import (
	"fmt"
	"path/filepath"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/veo1/inventory-catalog/models"
)

// Store persists categories and items in a SQLite file through gorm.
type Store struct {
	db         *gorm.DB
	categories *models.GormStore[models.Category, *models.Category]
	items      *models.GormStore[models.Item, *models.Item]
}

// Open opens a SQLite catalog store and creates the tables if needed.
// Foreign keys are not enforced.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := models.Open(gormsqlite.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	return &Store{
		db:         db,
		categories: models.NewGormStore[models.Category](db),
		items:      models.NewGormStore[models.Item](db),
	}, nil
}

// Categories returns the categories table.
func (s *Store) Categories() models.Store[models.Category] {
	return s.categories
}

// Items returns the items table.
func (s *Store) Items() models.Store[models.Item] {
	return s.items
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
