package postgres

import (
	"context"

	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// FindByID retrieves a single order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUser retrieves all orders placed by the given consumer, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByStoreIDs retrieves all orders placed against any of the given stores, newest first.
func (repo *orderRepository) FindByStoreIDs(ctx context.Context, storeIDs []uuid.UUID) ([]*entity.Order, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}

	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("store_id IN ?", storeIDs).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by stores")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByDeliveryPerson retrieves all orders assigned to the given delivery person, newest first.
func (repo *orderRepository) FindByDeliveryPerson(ctx context.Context, personID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("delivery_person_id = ?", personID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by delivery person")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindAvailableForDelivery retrieves unassigned orders in ready status, oldest first.
func (repo *orderRepository) FindAvailableForDelivery(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND delivery_person_id IS NULL", entity.OrderStatusReady.String()).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find available orders")
	}

	return toOrderDomainSlice(orderModels), nil
}

// Create persists a new order entity to the storage.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or store reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// CreateItems persists the line items of an order.
func (repo *orderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := make([]*model.OrderItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, fromOrderItemDomain(item))
	}

	if err := repo.db.WithContext(ctx).Create(&itemModels).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order items")
	}

	for i, itemM := range itemModels {
		items[i].ID = itemM.ID
	}

	return nil
}

// ListItems retrieves the line items of an order.
func (repo *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	var itemModels []*model.OrderItemModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list order items")
	}

	items := make([]*entity.OrderItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Quantity:  itemM.Quantity,
			Price:     itemM.Price,
		})
	}

	return items, nil
}

// AppendHistory records one status history entry for an order.
func (repo *orderRepository) AppendHistory(ctx context.Context, entry *entity.OrderStatusHistory) error {
	entryM := &model.OrderStatusHistoryModel{
		ID:          entry.ID,
		OrderID:     entry.OrderID,
		Status:      entry.Status.String(),
		Timestamp:   entry.Timestamp,
		Description: entry.Description,
	}

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append order status history")
	}

	entry.ID = entryM.ID

	return nil
}

// History retrieves the status history of an order, oldest first.
func (repo *orderRepository) History(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderStatusHistory, error) {
	var entryModels []*model.OrderStatusHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC").
		Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load order status history")
	}

	entries := make([]*entity.OrderStatusHistory, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, &entity.OrderStatusHistory{
			ID:          entryM.ID,
			OrderID:     entryM.OrderID,
			Status:      entity.OrderStatus(entryM.Status),
			Timestamp:   entryM.Timestamp,
			Description: entryM.Description,
		})
	}

	return entries, nil
}

// UpdateStatus moves an order from the expected status to the next one.
// The WHERE clause on the current status makes the update a compare-and-swap;
// zero affected rows means another writer got there first or the order is gone.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, expected.String()).
		Update("status", next.String())

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.OrderModel{}).
			Where("id = ?", id).
			Count(&count).Error; err == nil && count == 0 {
			return repository.ErrOrderNotFound
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// AssignDelivery claims an order for a delivery person and moves it to
// delivering. The guard requires ready status and no assignee, so two
// couriers cannot both win the claim.
func (repo *orderRepository) AssignDelivery(ctx context.Context, id uuid.UUID, personID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ? AND delivery_person_id IS NULL", id, entity.OrderStatusReady.String()).
		Updates(map[string]interface{}{
			"delivery_person_id": personID,
			"status":             entity.OrderStatusDelivering.String(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to assign delivery person")
	}
	if result.RowsAffected == 0 {
		var orderM model.OrderModel
		if err := repo.db.WithContext(ctx).
			Where("id = ?", id).
			First(&orderM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to inspect order after assign miss")
		}
		if orderM.DeliveryPersonID != nil {
			return repository.ErrAlreadyAssigned
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// toOrderDomain converts a GORM model to a domain entity.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:               orderM.ID,
		UserID:           orderM.UserID,
		StoreID:          orderM.StoreID,
		DeliveryPersonID: orderM.DeliveryPersonID,
		Status:           entity.OrderStatus(orderM.Status),
		Subtotal:         orderM.Subtotal,
		DeliveryFee:      orderM.DeliveryFee,
		Total:            orderM.Total,
		Address:          orderM.Address,
		AddressDetails:   orderM.AddressDetails,
		PaymentMethod:    orderM.PaymentMethod,
		PaymentDetails:   orderM.PaymentDetails,
		CreatedAt:        orderM.CreatedAt,
		UpdatedAt:        orderM.UpdatedAt,
	}
}

func toOrderDomainSlice(orderModels []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain converts a domain entity to a GORM model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:               order.ID,
		UserID:           order.UserID,
		StoreID:          order.StoreID,
		DeliveryPersonID: order.DeliveryPersonID,
		Status:           order.Status.String(),
		Subtotal:         order.Subtotal,
		DeliveryFee:      order.DeliveryFee,
		Total:            order.Total,
		Address:          order.Address,
		AddressDetails:   order.AddressDetails,
		PaymentMethod:    order.PaymentMethod,
		PaymentDetails:   order.PaymentDetails,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// fromOrderItemDomain converts a domain entity to a GORM model.
func fromOrderItemDomain(item *entity.OrderItem) *model.OrderItemModel {
	return &model.OrderItemModel{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
}
