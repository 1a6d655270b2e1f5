package handler

import (
	"net/http"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/service"
)

// CategoryHandler handles HTTP requests for catalog categories.
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// HandleList handles GET /categories requests.
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	apperr.WriteData(w, http.StatusOK, map[string][]model.Category{"categories": categories})
}
