package models

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

// ErrInvalidColumn is returned when a query names a column the table does not have.
var ErrInvalidColumn = errors.New("invalid column")

// Column names shared by the stores.
const (
	ColumnID            = "id"
	ColumnName          = "name"
	ColumnTitle         = "title"
	ColumnDescription   = "description"
	ColumnCategoryID    = "category_id"
	ColumnPrice         = "price"
	ColumnNumberInStock = "number_in_stock"
)

// Entity is implemented by the pointer types of every stored record.
type Entity interface {
	GetID() string
	SetID(id string)
	URL() string
}

// Filter matches records whose columns equal the given values.
type Filter map[string]any

// Query describes a FindMany call.
// Fields projects the result to the named columns (all columns when empty)
// and Order sorts ascending by a single column.
type Query struct {
	Where  Filter
	Fields []string
	Order  string
}

// Store is the persistence contract for one entity table.
// Implementations must allow concurrent calls.
type Store[T any] interface {
	Insert(ctx context.Context, record *T) (string, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindMany(ctx context.Context, q Query) ([]T, error)
	// UpdateByID replaces every field of the record except its id.
	UpdateByID(ctx context.Context, id string, record *T) (*T, error)
	// DeleteByID does not fail when the record is already gone.
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, where Filter) (int64, error)
}
