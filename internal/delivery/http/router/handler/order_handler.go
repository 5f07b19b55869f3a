package handler

import (
	"log/slog"
	"net/http"

	"jacomprei/internal/delivery/http/middleware"
	"jacomprei/internal/delivery/http/response"
	"jacomprei/internal/domain/entity"
	"jacomprei/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler holds dependencies for the order lifecycle endpoints.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListOrders returns orders scoped to the caller's role: consumers see their
// own orders, merchants the orders of their stores, couriers their assigned
// orders. Couriers can pass ?available=true to list claimable orders instead.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	ctx := c.Request().Context()

	var (
		orders []*entity.Order
		err    error
	)
	switch actor.Role {
	case entity.RoleConsumer:
		orders, err = h.uc.MyOrders(ctx, actor.ID)
	case entity.RoleMerchant:
		orders, err = h.uc.StoreOrders(ctx, actor.ID)
	case entity.RoleDelivery:
		if c.QueryParam("available") == "true" {
			orders, err = h.uc.AvailableOrders(ctx)
		} else {
			orders, err = h.uc.DeliveryOrders(ctx, actor.ID)
		}
	default:
		orders = []*entity.Order{}
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder returns the full order detail for an authorized caller.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	detail, err := h.uc.GetOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, detail, "Order retrieved successfully")
}

type checkoutRequest struct {
	Address        string `json:"address"`
	AddressDetails string `json:"addressDetails"`
	PaymentMethod  string `json:"paymentMethod" validate:"required"`
	PaymentDetails string `json:"paymentDetails"`
}

// Checkout converts the caller's cart into a pending order. Without an
// address in the body the user's profile address is used. Only consumers
// can place orders.
func (h *OrderHandler) Checkout(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	var input checkoutRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	detail, err := h.uc.Checkout(c.Request().Context(), actor, usecase.CheckoutInput{
		Address:        input.Address,
		AddressDetails: input.AddressDetails,
		PaymentMethod:  input.PaymentMethod,
		PaymentDetails: input.PaymentDetails,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, detail, "Order placed successfully")
}

type updateStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description"`
}

// UpdateStatus moves the order along its lifecycle.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var input updateStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), actor, orderID, entity.OrderStatus(input.Status), input.Description)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// AssignDelivery claims a ready order for the authenticated courier.
func (h *OrderHandler) AssignDelivery(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.AssignDelivery(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order assigned for delivery")
}
