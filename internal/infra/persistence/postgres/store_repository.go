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

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&storeM), nil
}

// FindAll retrieves every store, optionally filtered by category name.
func (repo *storeRepository) FindAll(ctx context.Context, category string) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find stores")
	}

	stores := make([]*entity.Store, 0, len(storeModels))
	for _, storeM := range storeModels {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores, nil
}

// FindByMerchant retrieves all stores owned by the given merchant.
func (repo *storeRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find stores by merchant")
	}

	stores := make([]*entity.Store, 0, len(storeModels))
	for _, storeM := range storeModels {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores, nil
}

// Create persists a new store entity to the storage.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid merchant reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt

	return nil
}

// Update modifies an existing store entity in the storage.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]interface{}{
			"name":          storeM.Name,
			"description":   storeM.Description,
			"category":      storeM.Category,
			"address":       storeM.Address,
			"latitude":      storeM.Latitude,
			"longitude":     storeM.Longitude,
			"logo_url":      storeM.LogoURL,
			"cover_url":     storeM.CoverURL,
			"delivery_time": storeM.DeliveryTime,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// toStoreDomain converts a GORM model to a domain entity.
func toStoreDomain(storeM *model.StoreModel) *entity.Store {
	return &entity.Store{
		ID:           storeM.ID,
		MerchantID:   storeM.MerchantID,
		Name:         storeM.Name,
		Description:  storeM.Description,
		Category:     storeM.Category,
		Address:      storeM.Address,
		Latitude:     storeM.Latitude,
		Longitude:    storeM.Longitude,
		LogoURL:      storeM.LogoURL,
		CoverURL:     storeM.CoverURL,
		DeliveryTime: storeM.DeliveryTime,
		Rating:       storeM.Rating,
		Tags:         storeM.Tags,
		CreatedAt:    storeM.CreatedAt,
	}
}

// fromStoreDomain converts a domain entity to a GORM model.
func fromStoreDomain(store *entity.Store) *model.StoreModel {
	return &model.StoreModel{
		ID:           store.ID,
		MerchantID:   store.MerchantID,
		Name:         store.Name,
		Description:  store.Description,
		Category:     store.Category,
		Address:      store.Address,
		Latitude:     store.Latitude,
		Longitude:    store.Longitude,
		LogoURL:      store.LogoURL,
		CoverURL:     store.CoverURL,
		DeliveryTime: store.DeliveryTime,
		Rating:       store.Rating,
		Tags:         store.Tags,
		CreatedAt:    store.CreatedAt,
	}
}

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// FindAll retrieves every category.
func (repo *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, &entity.Category{
			ID:        categoryM.ID,
			Name:      categoryM.Name,
			Icon:      categoryM.Icon,
			Color:     categoryM.Color,
			CreatedAt: categoryM.CreatedAt,
		})
	}

	return categories, nil
}

// Create persists a new category entity to the storage.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := &model.CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("category already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt

	return nil
}
