package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "jacomprei/internal/delivery/context"
	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/usecase"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo   repository.StoreRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		storeRepo:   params.StoreRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ownedStore loads a store and verifies the merchant owns it.
func (srv *storeService) ownedStore(ctx context.Context, merchantID, storeID uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to load store")
	}
	if store.MerchantID != merchantID {
		return nil, domainerrors.ErrForbidden.WrapMessage("store belongs to another merchant")
	}

	return store, nil
}

func (srv *storeService) CreateStore(ctx context.Context, merchantID uuid.UUID, input usecase.CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		MerchantID:   merchantID,
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
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Info("Store created",
		slog.Any("storeID", store.ID),
		slog.Any("merchantID", merchantID),
	)

	return store, nil
}

func (srv *storeService) UpdateStore(ctx context.Context, merchantID, storeID uuid.UUID, input usecase.UpdateStoreInput) (*entity.Store, error) {
	store, err := srv.ownedStore(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Description != nil {
		store.Description = *input.Description
	}
	if input.Category != nil {
		store.Category = *input.Category
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Latitude != nil {
		store.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		store.Longitude = input.Longitude
	}
	if input.LogoURL != nil {
		store.LogoURL = *input.LogoURL
	}
	if input.CoverURL != nil {
		store.CoverURL = *input.CoverURL
	}
	if input.DeliveryTime != nil {
		store.DeliveryTime = *input.DeliveryTime
	}
	if input.Tags != nil {
		store.Tags = input.Tags
	}

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store")
	}

	return store, nil
}

func (srv *storeService) MyStores(ctx context.Context, merchantID uuid.UUID) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant stores")
	}

	return stores, nil
}

func (srv *storeService) CreateProduct(ctx context.Context, merchantID uuid.UUID, input usecase.CreateProductInput) (*entity.Product, error) {
	if _, err := srv.ownedStore(ctx, merchantID, input.StoreID); err != nil {
		return nil, err
	}

	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	product := &entity.Product{
		StoreID:     input.StoreID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.Any("productID", product.ID),
		slog.Any("storeID", input.StoreID),
	)

	return product, nil
}

func (srv *storeService) UpdateProduct(ctx context.Context, merchantID, productID uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	if _, err := srv.ownedStore(ctx, merchantID, product.StoreID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}
