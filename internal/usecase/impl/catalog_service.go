package impl

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/domain/service"
	"jacomprei/internal/usecase"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	qrService    service.QRCodeService
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	StoreRepo    repository.StoreRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	QRService    service.QRCodeService
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		storeRepo:    params.StoreRepo,
		categoryRepo: params.CategoryRepo,
		productRepo:  params.ProductRepo,
		qrService:    params.QRService,
	}
}

func (srv *catalogService) ListStores(ctx context.Context, category string) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.FindAll(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return stores, nil
}

func (srv *catalogService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to load store")
	}

	return store, nil
}

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *catalogService) ListProducts(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to check store")
	}

	products, err := srv.productRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

func (srv *catalogService) ListFeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindFeatured(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return products, nil
}

func (srv *catalogService) StoreQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.storeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to check store for QR code")
	}

	png, err := srv.qrService.GenerateStoreQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	return png, nil
}
