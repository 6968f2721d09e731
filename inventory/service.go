// Package inventory holds the catalog rules: field validation, the
// category delete guard and the service combining them over the stores.
package inventory

import (
	"context"

	"github.com/veo1/inventory-catalog/models"
	"golang.org/x/sync/errgroup"
)

// Service runs catalog operations for categories and items.
// Reads that combine independent queries issue them concurrently; the first
// failure fails the whole read.
type Service struct {
	categories *collection[models.Category, *models.Category]
	items      *collection[models.Item, *models.Item]
	guard      *Guard
}

// CategoryDetail is a category together with the items filed under it.
type CategoryDetail struct {
	Category *models.Category `json:"category"`
	Items    []models.Item    `json:"items"`
}

// CategoryDeletion is the state of a category delete request.
// Category is nil when the id no longer resolves.
type CategoryDeletion struct {
	Category *models.Category `json:"category"`
	Blocking []models.Item    `json:"blocking_items"`
	Deleted  bool             `json:"deleted"`
}

// Allowed reports whether no item blocks the delete.
func (d *CategoryDeletion) Allowed() bool {
	return len(d.Blocking) == 0
}

// ItemForm is what an item edit form needs: the item and the categories it may move to.
type ItemForm struct {
	Item       *models.Item      `json:"item"`
	Categories []models.Category `json:"categories"`
}

// Summary holds the number of stored records per entity type.
type Summary struct {
	Items      int64 `json:"item_count"`
	Categories int64 `json:"category_count"`
}

func NewService(categories models.Store[models.Category], items models.Store[models.Item]) *Service {
	return &Service{
		categories: &collection[models.Category, *models.Category]{
			kind:     "category",
			store:    categories,
			order:    models.ColumnName,
			summary:  []string{models.ColumnID, models.ColumnName},
			validate: ValidateCategory,
		},
		items: &collection[models.Item, *models.Item]{
			kind:     "item",
			store:    items,
			order:    models.ColumnTitle,
			summary:  []string{models.ColumnID, models.ColumnTitle, models.ColumnCategoryID},
			validate: ValidateItem,
		},
		guard: NewGuard(items),
	}
}

// ListCategories returns all categories ordered by name, with id and name only.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.list(ctx)
}

// CategoryOptions lists the categories an item can be filed under.
func (s *Service) CategoryOptions(ctx context.Context) ([]models.Category, error) {
	return s.categories.list(ctx)
}

// ListItems returns all items ordered by title with their category name resolved.
func (s *Service) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	var categories []models.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.items.list(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.list(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range items {
		items[i].Category = byID[items[i].CategoryID]
	}
	return items, nil
}

// GetCategory returns the category and the items referencing it.
func (s *Service) GetCategory(ctx context.Context, id string) (*CategoryDetail, error) {
	var detail CategoryDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Category, err = s.categories.get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		_, detail.Items, err = s.guard.CanDelete(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetItem returns the item with its category resolved.
func (s *Service) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Category, err = s.categories.find(ctx, item.CategoryID); err != nil {
		return nil, err
	}
	return item, nil
}

// ItemForm returns the item, with its category resolved, and every category.
func (s *Service) ItemForm(ctx context.Context, id string) (*ItemForm, error) {
	var form ItemForm

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		form.Item, err = s.GetItem(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		form.Categories, err = s.categories.list(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateCategory validates in and stores a new category.
//
// On violations it returns the normalized draft with a *ValidationError.
// When a category with the same name exists, that category is returned and
// nothing is inserted. The lookup and the insert are separate round trips, so
// two concurrent creates with the same name may both insert.
func (s *Service) CreateCategory(ctx context.Context, in Input) (*models.Category, error) {
	return s.categories.create(ctx, in, s.categoryNamed)
}

func (s *Service) categoryNamed(ctx context.Context, draft *models.Category) (*models.Category, error) {
	found, err := s.categories.store.FindMany(ctx, models.Query{
		Where: models.Filter{models.ColumnName: draft.Name},
	})
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

// CreateItem validates in and stores a new item.
// On violations it returns the normalized draft with a *ValidationError.
func (s *Service) CreateItem(ctx context.Context, in Input) (*models.Item, error) {
	return s.items.create(ctx, in, nil)
}

// UpdateCategory replaces every field of the category.
// On violations it returns the normalized draft, carrying id, with a *ValidationError.
func (s *Service) UpdateCategory(ctx context.Context, id string, in Input) (*models.Category, error) {
	return s.categories.update(ctx, id, in)
}

// UpdateItem replaces every field of the item.
// On violations it returns the normalized draft, carrying id, with a *ValidationError.
func (s *Service) UpdateItem(ctx context.Context, id string, in Input) (*models.Item, error) {
	return s.items.update(ctx, id, in)
}

// PrepareDeleteCategory loads the category and the items blocking its delete.
func (s *Service) PrepareDeleteCategory(ctx context.Context, id string) (*CategoryDeletion, error) {
	var deletion CategoryDeletion

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deletion.Category, err = s.categories.find(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		_, deletion.Blocking, err = s.guard.CanDelete(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &deletion, nil
}

// ConfirmDeleteCategory deletes the category unless items still reference it,
// in which case the blocking items are returned and Deleted is false.
//
// The guard check and the delete are separate round trips; an item filed
// under the category in between is not detected.
func (s *Service) ConfirmDeleteCategory(ctx context.Context, id string) (*CategoryDeletion, error) {
	deletion, err := s.PrepareDeleteCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deletion.Allowed() {
		return deletion, nil
	}

	if err := s.categories.remove(ctx, id); err != nil {
		return nil, err
	}
	deletion.Deleted = true
	return deletion, nil
}

// PrepareDeleteItem loads the item to delete. A missing item is nil, not an error.
func (s *Service) PrepareDeleteItem(ctx context.Context, id string) (*models.Item, error) {
	return s.items.find(ctx, id)
}

// ConfirmDeleteItem deletes the item. Deleting a missing item succeeds.
func (s *Service) ConfirmDeleteItem(ctx context.Context, id string) error {
	return s.items.remove(ctx, id)
}

func (s *Service) CountCategories(ctx context.Context) (int64, error) {
	return s.categories.count(ctx)
}

func (s *Service) CountItems(ctx context.Context) (int64, error) {
	return s.items.count(ctx)
}

// Summary counts items and categories concurrently.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Items, err = s.items.count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Categories, err = s.categories.count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// EditCategory returns the stored category for an edit form.
func (s *Service) EditCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.get(ctx, id)
}
