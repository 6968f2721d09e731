// Package app mounts the catalog handlers on an HTTP mux.
package app

import (
	"net/http"

	"github.com/veo1/inventory-catalog/app/catalog"
	"github.com/veo1/inventory-catalog/app/categories"
	"github.com/veo1/inventory-catalog/inventory"
)

// NewRouter returns the catalog routes served by svc.
func NewRouter(svc *inventory.Service) *http.ServeMux {
	cat := catalog.NewCatalogHandler(svc)
	categoryHandler := categories.NewCategoryHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog/{$}", cat.HandleIndex)

	mux.HandleFunc("GET /catalog/categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /catalog/category/create", categoryHandler.HandleCreate)
	mux.HandleFunc("GET /catalog/category/{id}", categoryHandler.HandleGet)
	mux.HandleFunc("GET /catalog/category/{id}/delete", categoryHandler.HandleDeleteForm)
	mux.HandleFunc("POST /catalog/category/{id}/delete", categoryHandler.HandleDelete)
	mux.HandleFunc("GET /catalog/category/{id}/update", categoryHandler.HandleEdit)
	mux.HandleFunc("POST /catalog/category/{id}/update", categoryHandler.HandleUpdate)

	mux.HandleFunc("GET /catalog/items", cat.HandleGet)
	mux.HandleFunc("GET /catalog/item/create", cat.HandleCreateForm)
	mux.HandleFunc("POST /catalog/item/create", cat.HandleCreate)
	mux.HandleFunc("GET /catalog/item/{id}", cat.HandleGetItem)
	mux.HandleFunc("GET /catalog/item/{id}/delete", cat.HandleDeleteForm)
	mux.HandleFunc("POST /catalog/item/{id}/delete", cat.HandleDelete)
	mux.HandleFunc("GET /catalog/item/{id}/update", cat.HandleEdit)
	mux.HandleFunc("POST /catalog/item/{id}/update", cat.HandleUpdate)

	return mux
}
