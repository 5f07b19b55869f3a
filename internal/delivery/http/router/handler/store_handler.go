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

// StoreHandler holds dependencies for store browsing and management.
type StoreHandler struct {
	catalog usecase.CatalogUsecase
	stores  usecase.StoreUsecase
	logger  *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(catalog usecase.CatalogUsecase, stores usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		catalog: catalog,
		stores:  stores,
		logger:  logger,
	}
}

// ListStores returns all stores, optionally filtered by category.
func (h *StoreHandler) ListStores(c echo.Context) error {
	stores, err := h.catalog.ListStores(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stores, "Stores retrieved successfully")
}

// GetStore returns a single store by ID.
func (h *StoreHandler) GetStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	store, err := h.catalog.GetStore(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store, "Store retrieved successfully")
}

// MyStores lists the stores owned by the authenticated merchant.
func (h *StoreHandler) MyStores(c echo.Context) error {
	merchantID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	stores, err := h.stores.MyStores(c.Request().Context(), merchantID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stores, "Stores retrieved successfully")
}

type createStoreRequest struct {
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	Category     string           `json:"category" validate:"required"`
	Address      string           `json:"address" validate:"required"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`
	LogoURL      string           `json:"logoUrl"`
	CoverURL     string           `json:"coverUrl"`
	DeliveryTime string           `json:"deliveryTime"`
	Tags         []string         `json:"tags"`
}

// CreateStore opens a new store for the authenticated merchant.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	merchantID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	var input createStoreRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.stores.CreateStore(c.Request().Context(), merchantID, usecase.CreateStoreInput{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		LogoURL:      input.LogoURL,
		CoverURL:     input.CoverURL,
		DeliveryTime: input.DeliveryTime,
		Tags:         input.Tags,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, store, "Store created successfully")
}

type updateStoreRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Address      *string          `json:"address"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`
	LogoURL      *string          `json:"logoUrl"`
	CoverURL     *string          `json:"coverUrl"`
	DeliveryTime *string          `json:"deliveryTime"`
	Tags         []string         `json:"tags"`
}

// UpdateStore applies partial updates to a store owned by the merchant.
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	merchantID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	var input updateStoreRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	store, err := h.stores.UpdateStore(c.Request().Context(), merchantID, storeID, usecase.UpdateStoreInput{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		LogoURL:      input.LogoURL,
		CoverURL:     input.CoverURL,
		DeliveryTime: input.DeliveryTime,
		Tags:         input.Tags,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store, "Store updated successfully")
}

// StoreQRCode renders the PNG share code linking to the store page.
func (h *StoreHandler) StoreQRCode(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	png, err := h.catalog.StoreQRCode(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
