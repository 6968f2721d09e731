package categories

import (
	"context"
	"net/http"

	"github.com/veo1/inventory-catalog/app/api"
	"github.com/veo1/inventory-catalog/inventory"
	"github.com/veo1/inventory-catalog/models"
)

const listPath = "/catalog/categories"

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

type ItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type DetailResponse struct {
	Category CategoryResponse `json:"category"`
	Items    []ItemResponse   `json:"items"`
}

type DeleteResponse struct {
	Category      CategoryResponse `json:"category"`
	BlockingItems []ItemResponse   `json:"blocking_items"`
}

type FormErrorResponse struct {
	Category CategoryResponse      `json:"category"`
	Errors   []inventory.Violation `json:"errors"`
}

type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*inventory.CategoryDetail, error)
	EditCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in inventory.Input) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in inventory.Input) (*models.Category, error)
	PrepareDeleteCategory(ctx context.Context, id string) (*inventory.CategoryDeletion, error)
	ConfirmDeleteCategory(ctx context.Context, id string) (*inventory.CategoryDeletion, error)
}

type CategoryHandler struct {
	svc CategoryProvider
}

func NewCategoryHandler(s CategoryProvider) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

func toCategory(c *models.Category) CategoryResponse {
	if c == nil {
		return CategoryResponse{}
	}
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		URL:         c.URL(),
	}
}

func toItems(items []models.Item) []ItemResponse {
	response := make([]ItemResponse, len(items))
	for i := range items {
		response[i] = ItemResponse{
			ID:          items[i].ID,
			Title:       items[i].Title,
			Description: items[i].Description,
			URL:         items[i].URL(),
		}
	}
	return response
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toCategory(&categories[i])
	}
	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "category not found", "failed to fetch category")
		return
	}

	api.OKResponse(w, DetailResponse{
		Category: toCategory(detail.Category),
		Items:    toItems(detail.Items),
	})
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := api.DecodeInput(r)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), in)
	if violations, ok := api.AsValidation(err); ok {
		api.WriteJSON(w, http.StatusUnprocessableEntity, FormErrorResponse{
			Category: toCategory(category),
			Errors:   violations,
		})
		return
	}
	if err != nil {
		api.FailureResponse(w, err, "", "failed to create category")
		return
	}

	api.SeeOther(w, category.URL())
}

func (h *CategoryHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	category, err := h.svc.EditCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "category not found", "failed to fetch category")
		return
	}
	api.OKResponse(w, toCategory(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := api.DecodeInput(r)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.svc.UpdateCategory(r.Context(), r.PathValue("id"), in)
	if violations, ok := api.AsValidation(err); ok {
		api.WriteJSON(w, http.StatusUnprocessableEntity, FormErrorResponse{
			Category: toCategory(category),
			Errors:   violations,
		})
		return
	}
	if err != nil {
		api.FailureResponse(w, err, "category not found", "failed to update category")
		return
	}

	api.SeeOther(w, category.URL())
}

func (h *CategoryHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	deletion, err := h.svc.PrepareDeleteCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "", "failed to fetch category")
		return
	}
	if deletion.Category == nil {
		api.SeeOther(w, listPath)
		return
	}

	api.OKResponse(w, DeleteResponse{
		Category:      toCategory(deletion.Category),
		BlockingItems: toItems(deletion.Blocking),
	})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deletion, err := h.svc.ConfirmDeleteCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		api.FailureResponse(w, err, "", "failed to delete category")
		return
	}
	if !deletion.Deleted {
		api.WriteJSON(w, http.StatusConflict, DeleteResponse{
			Category:      toCategory(deletion.Category),
			BlockingItems: toItems(deletion.Blocking),
		})
		return
	}

	api.SeeOther(w, listPath)
}
