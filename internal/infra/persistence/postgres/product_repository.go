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

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindByStore retrieves all products that belong to the given store.
func (repo *productRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by store")
	}

	return toProductDomainSlice(productModels), nil
}

// FindFeatured retrieves products flagged for the storefront highlights.
func (repo *productRepository) FindFeatured(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find featured products")
	}

	return toProductDomainSlice(productModels), nil
}

// Create persists a new product entity to the storage.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid store reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt

	return nil
}

// Update modifies an existing product entity in the storage.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        productM.Name,
			"description": productM.Description,
			"price":       productM.Price,
			"image_url":   productM.ImageURL,
			"category":    productM.Category,
			"stock":       productM.Stock,
			"featured":    productM.Featured,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain converts a GORM model to a domain entity.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:          productM.ID,
		StoreID:     productM.StoreID,
		Name:        productM.Name,
		Description: productM.Description,
		Price:       productM.Price,
		ImageURL:    productM.ImageURL,
		Category:    productM.Category,
		Stock:       productM.Stock,
		Rating:      productM.Rating,
		Featured:    productM.Featured,
		CreatedAt:   productM.CreatedAt,
	}
}

func toProductDomainSlice(productModels []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products
}

// fromProductDomain converts a domain entity to a GORM model.
func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Stock:       product.Stock,
		Rating:      product.Rating,
		Featured:    product.Featured,
		CreatedAt:   product.CreatedAt,
	}
}
