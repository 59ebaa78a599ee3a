package httpapi

import (
	"net/http"
	"strings"

	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/product"
)

type listProductsResponse struct {
	Data []*product.Product `json:"data"`
	Meta listMeta           `json:"meta"`
}

type listMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func (a *API) handleProductsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listProducts(w, r)
	case http.MethodPost:
		a.createProduct(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProductResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/products/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getProduct(w, r, id)
	case http.MethodPut:
		a.updateProduct(w, r, id)
	case http.MethodDelete:
		a.deleteProduct(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	if err := a.requirePermission(r.Context(), auth.ActionRead, auth.ResourceProducts); err != nil {
		handleAuthError(w, r, err)
		return
	}

	page, err := parsePositiveInt(r.URL.Query().Get("page"), 1, 1, 1000000)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), 10, 1, 100)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	result, err := a.products.List(r.Context(), page, limit)
	if err != nil {
		handleProductError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listProductsResponse{
		Data: result.Items,
		Meta: listMeta{Page: result.Page, Limit: result.Limit, Total: result.Total},
	})
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.requirePermission(r.Context(), auth.ActionCreate, auth.ResourceProducts); err != nil {
		handleAuthError(w, r, err)
		return
	}

	var req product.CreateParams
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := a.products.Create(r.Context(), req)
	if err != nil {
		handleProductError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.requirePermission(r.Context(), auth.ActionRead, auth.ResourceProducts); err != nil {
		handleAuthError(w, r, err)
		return
	}

	p, err := a.products.Get(r.Context(), id)
	if err != nil {
		handleProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.requirePermission(r.Context(), auth.ActionUpdate, auth.ResourceProducts); err != nil {
		handleAuthError(w, r, err)
		return
	}

	var req product.UpdateParams
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := a.products.Update(r.Context(), id, req)
	if err != nil {
		handleProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.requirePermission(r.Context(), auth.ActionDelete, auth.ResourceProducts); err != nil {
		handleAuthError(w, r, err)
		return
	}

	if err := a.products.Delete(r.Context(), id); err != nil {
		handleProductError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
