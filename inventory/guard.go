package inventory

import (
	"context"

	"github.com/veo1/inventory-catalog/models"
)

// Guard decides whether a category may be removed.
type Guard struct {
	items models.Store[models.Item]
}

func NewGuard(items models.Store[models.Item]) *Guard {
	return &Guard{items: items}
}

// CanDelete reports whether no item references categoryID, returning the
// referencing items otherwise. It never deletes anything.
func (g *Guard) CanDelete(ctx context.Context, categoryID string) (bool, []models.Item, error) {
	blocking, err := g.items.FindMany(ctx, models.Query{
		Where:  models.Filter{models.ColumnCategoryID: categoryID},
		Fields: []string{models.ColumnID, models.ColumnTitle, models.ColumnDescription},
		Order:  models.ColumnTitle,
	})
	if err != nil {
		return false, nil, err
	}
	return len(blocking) == 0, blocking, nil
}
