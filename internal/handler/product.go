package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/service"
	"github.com/adaa/backoffice-go/internal/validate"
)

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	service *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// HandleList handles GET /products requests with page/page_size query
// parameters.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	pageSize := queryInt(r, "page_size", 10)

	result, err := h.service.Page(r.Context(), page, pageSize)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	apperr.WriteData(w, http.StatusOK, result)
}

// HandleCreate handles POST /products requests.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	if err := validate.Product(req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	apperr.WriteData(w, http.StatusCreated, map[string]int64{"id": id})
}

// HandleUpdate handles PATCH /products/{product_id} requests.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	var update model.ProductUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	updatedID, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	apperr.WriteData(w, http.StatusOK, map[string]int64{"updated_product": updatedID})
}

// HandleDelete handles DELETE /products/{product_id} requests.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	apperr.WriteData(w, http.StatusOK, struct{}{})
}

func productID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(map[string]string{
			"product_id": "Product id must be a positive integer.",
		})
	}
	return id, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
