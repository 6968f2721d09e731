package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/veo1/inventory-catalog/models"
)

// collection implements the CRUD shape shared by categories and items.
type collection[T any, P interface {
	*T
	models.Entity
}] struct {
	kind     string
	store    models.Store[T]
	order    string
	summary  []string
	validate func(Input) (T, []Violation)
}

// list returns every record projected to the summary columns.
func (c *collection[T, P]) list(ctx context.Context) ([]T, error) {
	return c.store.FindMany(ctx, models.Query{
		Fields: c.summary,
		Order:  c.order,
	})
}

func (c *collection[T, P]) get(ctx context.Context, id string) (*T, error) {
	record, err := c.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", c.kind, id, err)
		}
		return nil, err
	}
	return record, nil
}

// find is get without the not found error: a missing record is nil.
func (c *collection[T, P]) find(ctx context.Context, id string) (*T, error) {
	record, err := c.store.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

// create validates in and inserts the draft. When existing finds a stored
// record equivalent to the draft, that record is returned instead.
func (c *collection[T, P]) create(ctx context.Context, in Input, existing func(context.Context, *T) (*T, error)) (*T, error) {
	draft, violations := c.validate(in)
	if len(violations) > 0 {
		return &draft, &ValidationError{Violations: violations}
	}

	if existing != nil {
		found, err := existing(ctx, &draft)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}

	if _, err := c.store.Insert(ctx, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// update validates in and replaces the stored record wholesale.
func (c *collection[T, P]) update(ctx context.Context, id string, in Input) (*T, error) {
	draft, violations := c.validate(in)
	P(&draft).SetID(id)
	if len(violations) > 0 {
		return &draft, &ValidationError{Violations: violations}
	}

	updated, err := c.store.UpdateByID(ctx, id, &draft)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", c.kind, id, err)
		}
		return nil, err
	}
	return updated, nil
}

func (c *collection[T, P]) remove(ctx context.Context, id string) error {
	return c.store.DeleteByID(ctx, id)
}

func (c *collection[T, P]) count(ctx context.Context) (int64, error) {
	return c.store.Count(ctx, nil)
}
