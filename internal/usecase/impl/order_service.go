package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"jacomprei/config"
	deliverycontext "jacomprei/internal/delivery/context"
	"jacomprei/internal/domain/authz"
	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/domain/service"
	"jacomprei/internal/usecase"
	"jacomprei/internal/util"
)

// orderService implements the OrderUsecase interface. It owns the order
// lifecycle: checkout, authorized status transitions, delivery claims,
// history records and event fan-out.
type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	storeRepo   repository.StoreRepository
	broadcaster service.Broadcaster
	publisher   service.EventPublisher
	deliveryFee decimal.Decimal
	orderLocks  *util.KeyedMutex
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	StoreRepo   repository.StoreRepository
	Broadcaster service.Broadcaster
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) (usecase.OrderUsecase, error) {
	fee, err := decimal.NewFromString(params.Config.Order.DeliveryFee)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid delivery fee %q", params.Config.Order.DeliveryFee)
	}

	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		storeRepo:   params.StoreRepo,
		broadcaster: params.Broadcaster,
		publisher:   params.Publisher,
		deliveryFee: fee,
		orderLocks:  util.NewKeyedMutex(),
		logger:      params.Logger,
	}, nil
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// emit fans the event out to websocket subscribers and, best effort, to the
// external publisher. Publish failures are logged, never surfaced: the order
// change is already committed.
func (srv *orderService) emit(ctx context.Context, event *service.OrderEvent) {
	srv.broadcaster.Broadcast(event)

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to mirror order event",
			slog.String("type", event.Type),
			slog.String("orderID", event.OrderID.String()),
			slog.Any("error", err),
		)
	}
}

// Checkout converts the consumer's cart into a pending order. A missing
// address falls back to the one on the user's profile.
func (srv *orderService) Checkout(ctx context.Context, actor authz.Actor, input usecase.CheckoutInput) (*entity.OrderDetail, error) {
	if actor.Role != entity.RoleConsumer {
		return nil, domainerrors.ErrForbidden.WrapMessage("only consumers can create orders")
	}
	if input.PaymentMethod == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment method is required")
	}

	userID := actor.ID

	var (
		order   *entity.Order
		items   []*entity.OrderItem
		history *entity.OrderStatusHistory
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()
		orderRepo := repoFactory.NewOrderRepository()

		if input.Address == "" {
			user, err := repoFactory.NewUserRepository().FindByID(ctx, userID)
			if err != nil {
				return errors.Wrap(err, "failed to load user for checkout")
			}
			if user.Address == "" {
				return domainerrors.ErrValidationFailed.WrapMessage("a delivery address is required")
			}
			input.Address = user.Address
			input.AddressDetails = user.AddressDetails
		}

		cartItems, err := cartRepo.FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart for checkout")
		}
		if len(cartItems) == 0 {
			return domainerrors.ErrEmptyCart
		}

		// Freeze unit prices and settle the store in one pass. Orders are
		// single-store; a cart that spans stores must be split by the client.
		var storeID uuid.UUID
		subtotal := decimal.Zero
		pending := make([]*entity.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			product, err := productRepo.FindByID(ctx, cartItem.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WrapMessage("cart references a delisted product")
				}

				return errors.Wrap(err, "failed to load product for checkout")
			}

			if storeID == uuid.Nil {
				storeID = product.StoreID
			} else if storeID != product.StoreID {
				return domainerrors.ErrMixedStoreCart
			}

			if product.Stock < cartItem.Quantity {
				return domainerrors.ErrValidationFailed.WrapMessage("insufficient stock for " + product.Name)
			}

			pending = append(pending, &entity.OrderItem{
				ProductID: product.ID,
				Quantity:  cartItem.Quantity,
				Price:     product.Price,
			})
			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
		}

		order = &entity.Order{
			UserID:         userID,
			StoreID:        storeID,
			Status:         entity.OrderStatusPending,
			Subtotal:       subtotal,
			DeliveryFee:    srv.deliveryFee,
			Total:          subtotal.Add(srv.deliveryFee),
			Address:        input.Address,
			AddressDetails: input.AddressDetails,
			PaymentMethod:  input.PaymentMethod,
			PaymentDetails: input.PaymentDetails,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		for _, item := range pending {
			item.OrderID = order.ID
		}
		if err := orderRepo.CreateItems(ctx, pending); err != nil {
			return errors.Wrap(err, "failed to create order items")
		}
		items = pending

		history = &entity.OrderStatusHistory{
			OrderID:     order.ID,
			Status:      entity.OrderStatusPending,
			Timestamp:   time.Now(),
			Description: "Order created and pending confirmation",
		}
		if err := orderRepo.AppendHistory(ctx, history); err != nil {
			return errors.Wrap(err, "failed to record order creation")
		}

		if err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after checkout")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", order.ID),
		slog.Any("storeID", order.StoreID),
		slog.String("total", order.Total.String()),
	)

	storeID := order.StoreID
	srv.emit(ctx, &service.OrderEvent{
		Type:    service.EventNewOrder,
		OrderID: order.ID,
		StoreID: &storeID,
		Status:  order.Status,
	})

	return &entity.OrderDetail{
		Order:         *order,
		Items:         items,
		StatusHistory: []*entity.OrderStatusHistory{history},
	}, nil
}

// GetOrder loads the full order detail for an authorized actor.
func (srv *orderService) GetOrder(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*entity.OrderDetail, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ownsStore, err := srv.actorOwnsStore(ctx, actor, order.StoreID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewOrder(actor, order, ownsStore) {
		return nil, domainerrors.ErrForbidden.WrapMessage("no access to this order")
	}

	items, err := srv.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}
	history, err := srv.orderRepo.History(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order history")
	}

	return &entity.OrderDetail{
		Order:         *order,
		Items:         items,
		StatusHistory: history,
	}, nil
}

func (srv *orderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *orderService) StoreOrders(ctx context.Context, merchantID uuid.UUID) ([]*entity.Order, error) {
	stores, err := srv.storeRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant stores")
	}

	storeIDs := make([]uuid.UUID, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}

	orders, err := srv.orderRepo.FindByStoreIDs(ctx, storeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store orders")
	}

	return orders, nil
}

func (srv *orderService) DeliveryOrders(ctx context.Context, personID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByDeliveryPerson(ctx, personID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivery orders")
	}

	return orders, nil
}

func (srv *orderService) AvailableOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAvailableForDelivery(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available orders")
	}

	return orders, nil
}

// UpdateStatus moves the order along its lifecycle on behalf of the actor.
// A caller-supplied description is recorded verbatim in the history.
func (srv *orderService) UpdateStatus(ctx context.Context, actor authz.Actor, orderID uuid.UUID, next entity.OrderStatus, description string) (*entity.Order, error) {
	if !next.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}
	if description == "" {
		description = "Order status updated to " + next.String()
	}

	unlock := srv.orderLocks.Lock(orderID.String())
	defer unlock()

	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ownsStore, err := srv.actorOwnsStore(ctx, actor, order.StoreID)
	if err != nil {
		return nil, err
	}
	if !authz.CanSetStatus(actor, order, ownsStore, next) {
		return nil, domainerrors.ErrForbidden.WrapMessage("not allowed to set this order status")
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"cannot move from " + order.Status.String() + " to " + next.String(),
		)
	}

	now := time.Now()
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		if err := orderRepo.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
			switch {
			case errors.Is(err, repository.ErrOrderNotFound):
				return domainerrors.ErrOrderNotFound
			case errors.Is(err, repository.ErrStatusConflict):
				return domainerrors.ErrInvalidTransition.WithDetails("order status changed concurrently")
			default:
				return errors.Wrap(err, "failed to update order status")
			}
		}

		return orderRepo.AppendHistory(ctx, &entity.OrderStatusHistory{
			OrderID:     orderID,
			Status:      next,
			Timestamp:   now,
			Description: description,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	order.UpdatedAt = now

	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", orderID),
		slog.String("status", next.String()),
		slog.Any("actorRole", actor.Role),
	)

	srv.emit(ctx, &service.OrderEvent{
		Type:      service.EventOrderStatusUpdated,
		OrderID:   orderID,
		Status:    next,
		Timestamp: &now,
	})

	return order, nil
}

// AssignDelivery lets a delivery person claim a ready, unassigned order.
// The claim moves the order straight to delivering.
func (srv *orderService) AssignDelivery(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*entity.Order, error) {
	if actor.Role != entity.RoleDelivery {
		return nil, domainerrors.ErrForbidden.WrapMessage("only delivery personnel can accept orders")
	}

	unlock := srv.orderLocks.Lock(orderID.String())
	defer unlock()

	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryPersonID != nil {
		return nil, domainerrors.ErrOrderAlreadyAssigned
	}
	if order.Status != entity.OrderStatusReady {
		return nil, domainerrors.ErrOrderNotReady
	}

	now := time.Now()
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		if err := orderRepo.AssignDelivery(ctx, orderID, actor.ID); err != nil {
			switch {
			case errors.Is(err, repository.ErrOrderNotFound):
				return domainerrors.ErrOrderNotFound
			case errors.Is(err, repository.ErrAlreadyAssigned):
				return domainerrors.ErrOrderAlreadyAssigned
			case errors.Is(err, repository.ErrStatusConflict):
				return domainerrors.ErrOrderNotReady
			default:
				return errors.Wrap(err, "failed to assign delivery person")
			}
		}

		return orderRepo.AppendHistory(ctx, &entity.OrderStatusHistory{
			OrderID:     orderID,
			Status:      entity.OrderStatusDelivering,
			Timestamp:   now,
			Description: "Order assigned to delivery person and out for delivery",
		})
	})
	if err != nil {
		return nil, err
	}

	personID := actor.ID
	order.DeliveryPersonID = &personID
	order.Status = entity.OrderStatusDelivering
	order.UpdatedAt = now

	srv.log(ctx).Info("Order claimed for delivery",
		slog.Any("orderID", orderID),
		slog.Any("deliveryPersonID", actor.ID),
	)

	srv.emit(ctx, &service.OrderEvent{
		Type:             service.EventOrderAssignedDeliver,
		OrderID:          orderID,
		Status:           entity.OrderStatusDelivering,
		DeliveryPersonID: &personID,
	})

	return order, nil
}

func (srv *orderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}

// actorOwnsStore reports whether a merchant actor owns the given store.
// Non-merchant actors never own stores, and a vanished store is not an error
// here; it simply fails the ownership check.
func (srv *orderService) actorOwnsStore(ctx context.Context, actor authz.Actor, storeID uuid.UUID) (bool, error) {
	if actor.Role != entity.RoleMerchant {
		return false, nil
	}

	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check store ownership")
	}

	return store.MerchantID == actor.ID, nil
}
