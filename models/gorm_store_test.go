package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without connecting to PostgreSQL.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=catalog dbname=catalog sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

type statement struct {
	SQL  string
	Vars []any
}

// recordStatements captures every statement db builds.
func recordStatements(t *testing.T, db *gorm.DB) *[]statement {
	t.Helper()
	var recorded []statement
	record := func(tx *gorm.DB) {
		recorded = append(recorded, statement{SQL: tx.Statement.SQL.String(), Vars: tx.Statement.Vars})
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_update", record))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:record_delete", record))
	return &recorded
}

func TestReferencePaths(t *testing.T) {
	c := &Category{ID: "c1"}
	i := &Item{ID: "i1"}

	assert.Equal(t, "/catalog/category/c1", c.URL())
	assert.Equal(t, "/catalog/item/i1", i.URL())
	assert.Equal(t, "categories", c.TableName())
	assert.Equal(t, "items", i.TableName())
}

func TestNewID(t *testing.T) {
	first, err := NewID()
	require.NoError(t, err)
	second, err := NewID()
	require.NoError(t, err)

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second, "ids are time ordered")
}

func TestGormStoreInsertAssignsID(t *testing.T) {
	store := NewGormStore[Item](dryRunDB(t))
	item := &Item{Title: "Lion", CategoryID: "c1", Description: "d", Price: 1, NumberInStock: 1}

	id, err := store.Insert(context.Background(), item)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, item.ID)
}

func TestGormStoreRejectsUnknownColumns(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore[Item](dryRunDB(t))

	testCases := []struct {
		name  string
		query Query
	}{
		{name: "Filter", query: Query{Where: Filter{"owner": "x"}}},
		{name: "Projection", query: Query{Fields: []string{ColumnID, "secret"}}},
		{name: "Order", query: Query{Order: "title desc"}},
		{name: "Association", query: Query{Fields: []string{"Category"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.FindMany(ctx, tc.query)
			assert.ErrorIs(t, err, ErrInvalidColumn)
		})
	}

	_, err := store.Count(ctx, Filter{"owner": "x"})
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = store.FindMany(ctx, Query{
		Where:  Filter{ColumnCategoryID: "c1"},
		Fields: []string{ColumnID, ColumnTitle, ColumnDescription},
		Order:  ColumnTitle,
	})
	assert.NoError(t, err)
}

func TestGormStoreStatements(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		run         func(store *GormStore[Item, *Item]) error
		expectedErr error
		check       func(t *testing.T, stmt statement)
	}{
		{
			name: "Insert",
			run: func(store *GormStore[Item, *Item]) error {
				_, err := store.Insert(ctx, &Item{Title: "Lion", CategoryID: "c1"})
				return err
			},
			check: func(t *testing.T, stmt statement) {
				assert.Contains(t, stmt.SQL, `INSERT INTO "items"`)
				assert.Contains(t, stmt.SQL, `"number_in_stock"`)
			},
		},
		{
			name: "FindByID",
			run: func(store *GormStore[Item, *Item]) error {
				_, err := store.FindByID(ctx, "i1")
				return err
			},
			check: func(t *testing.T, stmt statement) {
				assert.Contains(t, stmt.SQL, `SELECT * FROM "items" WHERE id = $1`)
				assert.Equal(t, "i1", stmt.Vars[0])
			},
		},
		{
			name: "FindMany",
			run: func(store *GormStore[Item, *Item]) error {
				_, err := store.FindMany(ctx, Query{
					Where:  Filter{ColumnCategoryID: "c1"},
					Fields: []string{ColumnID, ColumnTitle},
					Order:  ColumnTitle,
				})
				return err
			},
			check: func(t *testing.T, stmt statement) {
				assert.Contains(t, stmt.SQL, `SELECT "id","title" FROM "items"`)
				assert.Contains(t, stmt.SQL, `WHERE "category_id" = $1`)
				assert.Contains(t, stmt.SQL, `ORDER BY "title"`)
			},
		},
		{
			name: "UpdateByID writes zero values",
			run: func(store *GormStore[Item, *Item]) error {
				_, err := store.UpdateByID(ctx, "i1", &Item{Title: "Lion", CategoryID: "c2"})
				return err
			},
			// A dry run affects no rows.
			expectedErr: ErrNotFound,
			check: func(t *testing.T, stmt statement) {
				assert.Equal(t, `UPDATE "items" SET "title"=$1,"category_id"=$2,"description"=$3,"price"=$4,"number_in_stock"=$5 WHERE "id" = $6`, stmt.SQL)
				assert.Equal(t, []any{"Lion", "c2", "", int64(0), int64(0), "i1"}, stmt.Vars)
			},
		},
		{
			name: "DeleteByID",
			run: func(store *GormStore[Item, *Item]) error {
				return store.DeleteByID(ctx, "i1")
			},
			check: func(t *testing.T, stmt statement) {
				assert.Equal(t, `DELETE FROM "items" WHERE id = $1`, stmt.SQL)
				assert.Equal(t, []any{"i1"}, stmt.Vars)
			},
		},
		{
			name: "Count",
			run: func(store *GormStore[Item, *Item]) error {
				_, err := store.Count(ctx, Filter{ColumnCategoryID: "c1"})
				return err
			},
			check: func(t *testing.T, stmt statement) {
				assert.Contains(t, stmt.SQL, `SELECT count(*) FROM "items" WHERE "category_id" = $1`)
				assert.Equal(t, []any{"c1"}, stmt.Vars)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			db := dryRunDB(t)
			recorded := recordStatements(t, db)
			store := NewGormStore[Item](db)

			// Act
			err := tc.run(store)

			// Assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			require.NotEmpty(t, *recorded)
			tc.check(t, (*recorded)[0])
		})
	}
}
