package impl

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/usecase"
	"jacomprei/internal/util"
)

// cartService implements the CartUsecase interface. Mutations are serialized
// per user with a keyed mutex, so two concurrent adds of the same product
// merge into one line instead of racing into two.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userLocks   *util.KeyedMutex
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		userLocks:   util.NewKeyedMutex(),
	}
}

func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	items, err := srv.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	lines := make([]*entity.CartLine, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				// The product was delisted after it entered the cart;
				// keep the line visible without a price contribution.
				lines = append(lines, &entity.CartLine{CartItem: *item})

				continue
			}

			return nil, errors.Wrap(err, "failed to load cart product")
		}

		lines = append(lines, &entity.CartLine{CartItem: *item, Product: product})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &usecase.CartOutput{Items: lines, Subtotal: subtotal}, nil
}

func (srv *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}
	if product.Stock < quantity {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("insufficient stock")
	}

	unlock := srv.userLocks.Lock(userID.String())
	defer unlock()

	existing, err := srv.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		// Merge into the existing line.
		newQuantity := existing.Quantity + quantity
		if err := srv.cartRepo.UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, errors.Wrap(err, "failed to merge cart line")
		}
		existing.Quantity = newQuantity

		return existing, nil

	case errors.Is(err, repository.ErrCartItemNotFound):
		item := &entity.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := srv.cartRepo.Create(ctx, item); err != nil {
			return nil, errors.Wrap(err, "failed to add cart item")
		}

		return item, nil

	default:
		return nil, errors.Wrap(err, "failed to check existing cart line")
	}
}

func (srv *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	unlock := srv.userLocks.Lock(userID.String())
	defer unlock()

	item, err := srv.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, domainerrors.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to load cart item")
	}
	if item.UserID != userID {
		return nil, domainerrors.ErrForbidden.WrapMessage("cart item belongs to another user")
	}

	// Zero or negative quantity removes the line.
	if quantity <= 0 {
		if err := srv.cartRepo.Delete(ctx, itemID); err != nil {
			return nil, errors.Wrap(err, "failed to remove cart item")
		}

		return nil, nil
	}

	if err := srv.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, errors.Wrap(err, "failed to update cart item")
	}
	item.Quantity = quantity

	return item, nil
}

func (srv *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	unlock := srv.userLocks.Lock(userID.String())
	defer unlock()

	item, err := srv.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to load cart item")
	}
	if item.UserID != userID {
		return domainerrors.ErrForbidden.WrapMessage("cart item belongs to another user")
	}

	if err := srv.cartRepo.Delete(ctx, itemID); err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	unlock := srv.userLocks.Lock(userID.String())
	defer unlock()

	if err := srv.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
