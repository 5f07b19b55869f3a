package handler

import (
	"net/http"

	"jacomprei/internal/delivery/http/response"
	"jacomprei/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the browsing facets.
type CategoryHandler struct {
	catalog usecase.CatalogUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(catalog usecase.CatalogUsecase) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// ListCategories returns all store categories.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}
