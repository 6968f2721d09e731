package catalog

import (
	"context"
	"net/http"

	"github.com/veo1/inventory-catalog/app/api"
	"github.com/veo1/inventory-catalog/inventory"
	"github.com/veo1/inventory-catalog/models"
)

const listPath = "/catalog/items"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      *Category `json:"category"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price,omitempty"`
	NumberInStock int64     `json:"number_in_stock,omitempty"`
	URL           string    `json:"url,omitempty"`
}

type FormResponse struct {
	Item       *Item      `json:"item,omitempty"`
	Categories []Category `json:"categories"`
}

type FormErrorResponse struct {
	Item       Item                  `json:"item"`
	Categories []Category            `json:"categories"`
	Errors     []inventory.Violation `json:"errors"`
}

type ItemProvider interface {
	Summary(ctx context.Context) (*inventory.Summary, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CategoryOptions(ctx context.Context) ([]models.Category, error)
	ItemForm(ctx context.Context, id string) (*inventory.ItemForm, error)
	CreateItem(ctx context.Context, in inventory.Input) (*models.Item, error)
	UpdateItem(ctx context.Context, id string, in inventory.Input) (*models.Item, error)
	PrepareDeleteItem(ctx context.Context, id string) (*models.Item, error)
	ConfirmDeleteItem(ctx context.Context, id string) error
}

type CatalogHandler struct {
	svc ItemProvider
}

func NewCatalogHandler(s ItemProvider) *CatalogHandler {
	return &CatalogHandler{
		svc: s,
	}
}

func toCategory(c *models.Category) *Category {
	if c == nil {
		return nil
	}
	return &Category{ID: c.ID, Name: c.Name, URL: c.URL()}
}

func toCategories(categories []models.Category) []Category {
	response := make([]Category, len(categories))
	for i := range categories {
		response[i] = *toCategory(&categories[i])
	}
	return response
}

func toItem(i *models.Item) Item {
	item := Item{
		ID:            i.ID,
		Title:         i.Title,
		Category:      toCategory(i.Category),
		Description:   i.Description,
		Price:         i.Price,
		NumberInStock: i.NumberInStock,
	}
	if i.ID != "" {
		item.URL = i.URL()
	}
	// Unsaved drafts only know the submitted category id.
	if item.Category == nil && i.CategoryID != "" {
		item.Category = &Category{ID: i.CategoryID}
	}
	return item
}

func (h *CatalogHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		api.FailureResponse(w, err, "", "failed to count records")
		return
	}
	api.OKResponse(w, summary)
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListItems(r.Context())
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch items")
		return
	}

	items := make([]Item, len(res))
	for i := range res {
		items[i] = toItem(&res[i])
	}
	api.OKResponse(w, items)
}

func (h *CatalogHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "item not found", "failed to fetch item")
		return
	}
	api.OKResponse(w, toItem(item))
}

func (h *CatalogHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.CategoryOptions(r.Context())
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch categories")
		return
	}
	api.OKResponse(w, FormResponse{Categories: toCategories(categories)})
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := api.DecodeInput(r)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateItem(r.Context(), in)
	if violations, ok := api.AsValidation(err); ok {
		h.formError(w, r, item, violations)
		return
	}
	if err != nil {
		api.FailureResponse(w, err, "", "failed to create item")
		return
	}

	api.SeeOther(w, item.URL())
}

func (h *CatalogHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.ItemForm(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "item not found", "failed to fetch item")
		return
	}

	item := toItem(form.Item)
	api.OKResponse(w, FormResponse{
		Item:       &item,
		Categories: toCategories(form.Categories),
	})
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := api.DecodeInput(r)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), r.PathValue("id"), in)
	if violations, ok := api.AsValidation(err); ok {
		h.formError(w, r, item, violations)
		return
	}
	if err != nil {
		api.FailureResponse(w, err, "item not found", "failed to update item")
		return
	}

	api.SeeOther(w, item.URL())
}

// formError answers a rejected create or update with the draft and the
// categories needed to show the form again.
func (h *CatalogHandler) formError(w http.ResponseWriter, r *http.Request, draft *models.Item, violations []inventory.Violation) {
	categories, err := h.svc.CategoryOptions(r.Context())
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch categories")
		return
	}
	api.WriteJSON(w, http.StatusUnprocessableEntity, FormErrorResponse{
		Item:       toItem(draft),
		Categories: toCategories(categories),
		Errors:     violations,
	})
}

func (h *CatalogHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.PrepareDeleteItem(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch item")
		return
	}
	if item == nil {
		api.SeeOther(w, listPath)
		return
	}
	api.OKResponse(w, toItem(item))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ConfirmDeleteItem(r.Context(), r.PathValue("id")); err != nil {
		api.FailureResponse(w, err, "", "failed to delete item")
		return
	}
	api.SeeOther(w, listPath)
}
