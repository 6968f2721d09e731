package models

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore is a Store backed by a gorm connection.
type GormStore[T any, P interface {
	*T
	Entity
}] struct {
	db *gorm.DB
}

var (
	_ Store[Category] = (*GormStore[Category, *Category])(nil)
	_ Store[Item]     = (*GormStore[Item, *Item])(nil)
)

func NewGormStore[T any, P interface {
	*T
	Entity
}](db *gorm.DB) *GormStore[T, P] {
	return &GormStore[T, P]{
		db: db,
	}
}

// Open connects gorm through dialector and migrates the catalog tables.
// Every write is a single statement, so gorm's implicit transaction is skipped.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("migrating: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Item{})
}

func (s *GormStore[T, P]) Insert(ctx context.Context, record *T) (string, error) {
	id, err := NewID()
	if err != nil {
		return "", err
	}
	P(record).SetID(id)

	if err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(record).Error; err != nil {
		return "", err
	}
	return id, nil
}

func (s *GormStore[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err // Other DB error
	}
	return &record, nil
}

func (s *GormStore[T, P]) FindMany(ctx context.Context, q Query) ([]T, error) {
	if err := s.checkColumns(q.Where, q.Fields, q.Order); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(new(T))
	if len(q.Fields) > 0 {
		query = query.Select(q.Fields)
	}
	if len(q.Where) > 0 {
		query = query.Where(map[string]any(q.Where))
	}
	if q.Order != "" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Order}})
	}

	records := []T{}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore[T, P]) UpdateByID(ctx context.Context, id string, record *T) (*T, error) {
	P(record).SetID(id)

	// Select("*") writes zero values too, so the stored row is fully replaced.
	res := s.db.WithContext(ctx).
		Model(record).
		Select("*").
		Omit(ColumnID, clause.Associations).
		Updates(record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *GormStore[T, P]) DeleteByID(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(new(T)).Error
}

func (s *GormStore[T, P]) Count(ctx context.Context, where Filter) (int64, error) {
	if err := s.checkColumns(where, nil, ""); err != nil {
		return 0, err
	}

	var total int64
	query := s.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		query = query.Where(map[string]any(where))
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// checkColumns rejects names that are not columns of T before they reach SQL.
func (s *GormStore[T, P]) checkColumns(where Filter, fields []string, order string) error {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(new(T)); err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	names := make([]string, 0, len(where)+len(fields)+1)
	for name := range where {
		names = append(names, name)
	}
	names = append(names, fields...)
	if order != "" {
		names = append(names, order)
	}

	for _, name := range names {
		if field := stmt.Schema.LookUpField(name); field == nil || field.DBName == "" {
			return fmt.Errorf("%s.%s: %w", stmt.Schema.Table, name, ErrInvalidColumn)
		}
	}
	return nil
}
