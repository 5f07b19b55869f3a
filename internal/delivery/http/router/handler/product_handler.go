package handler

import (
	"log/slog"
	"net/http"

	"jacomprei/internal/delivery/http/middleware"
	"jacomprei/internal/delivery/http/response"
	"jacomprei/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductHandler holds dependencies for product browsing and management.
type ProductHandler struct {
	catalog usecase.CatalogUsecase
	stores  usecase.StoreUsecase
	logger  *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(catalog usecase.CatalogUsecase, stores usecase.StoreUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		stores:  stores,
		logger:  logger,
	}
}

// ListFeatured returns the featured products across all stores.
func (h *ProductHandler) ListFeatured(c echo.Context) error {
	products, err := h.catalog.ListFeaturedProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Featured products retrieved successfully")
}

// ListByStore returns the products of one store.
func (h *ProductHandler) ListByStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	products, err := h.catalog.ListProducts(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

type createProductRequest struct {
	StoreID     uuid.UUID       `json:"storeId" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Featured    bool            `json:"featured"`
}

// CreateProduct lists a new product in one of the merchant's stores.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	merchantID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	var input createProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.stores.CreateProduct(c.Request().Context(), merchantID, usecase.CreateProductInput{
		StoreID:     input.StoreID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	Featured    *bool            `json:"featured"`
}

// UpdateProduct applies partial updates to a product the merchant owns.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	merchantID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var input updateProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.stores.UpdateProduct(c.Request().Context(), merchantID, productID, usecase.UpdateProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}
