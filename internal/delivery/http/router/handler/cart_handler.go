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

// CartHandler holds dependencies for the consumer cart endpoints.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type cartResponse struct {
	Items    any             `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// GetCart returns the authenticated user's cart with the running subtotal.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK,
		cartResponse{Items: cart.Items, Subtotal: cart.Subtotal},
		"Cart retrieved successfully")
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// AddItem puts a product into the cart, merging with an existing line.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	var input addCartItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.uc.AddItem(c.Request().Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item, "Item added to cart")
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets the absolute quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	var input updateCartItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), userID, itemID, input.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if item == nil {
		return response.Success(c, http.StatusOK, nil, "Item removed from cart")
	}

	return response.Success(c, http.StatusOK, item, "Cart item updated")
}

// RemoveItem deletes one cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	if err := h.uc.RemoveItem(c.Request().Context(), userID, itemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed from cart")
}

// ClearCart removes every line from the user's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	if err := h.uc.ClearCart(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
