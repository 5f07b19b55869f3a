package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

type storeRepository struct {
	store *Store
}

// NewStoreRepository is the constructor for the in-memory store repository.
func NewStoreRepository(store *Store) repository.StoreRepository {
	return &storeRepository{store: store}
}

func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	st, ok := repo.store.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}

	return copyStoreEntity(st), nil
}

func (repo *storeRepository) FindAll(ctx context.Context, category string) ([]*entity.Store, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var stores []*entity.Store
	for _, st := range repo.store.stores {
		if category != "" && !strings.EqualFold(st.Category, category) {
			continue
		}
		stores = append(stores, copyStoreEntity(st))
	}

	sortStoresNewestFirst(stores)

	return stores, nil
}

func (repo *storeRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Store, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var stores []*entity.Store
	for _, st := range repo.store.stores {
		if st.MerchantID == merchantID {
			stores = append(stores, copyStoreEntity(st))
		}
	}

	sortStoresNewestFirst(stores)

	return stores, nil
}

func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	store.CreatedAt = time.Now()

	repo.store.stores[store.ID] = copyStoreEntity(store)

	return nil
}

func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	existing, ok := repo.store.stores[store.ID]
	if !ok {
		return repository.ErrStoreNotFound
	}

	existing.Name = store.Name
	existing.Description = store.Description
	existing.Category = store.Category
	existing.Address = store.Address
	existing.Latitude = store.Latitude
	existing.Longitude = store.Longitude
	existing.LogoURL = store.LogoURL
	existing.CoverURL = store.CoverURL
	existing.DeliveryTime = store.DeliveryTime
	if store.Tags != nil {
		existing.Tags = append([]string(nil), store.Tags...)
	}

	return nil
}

func sortStoresNewestFirst(stores []*entity.Store) {
	sort.Slice(stores, func(i, j int) bool {
		return stores[i].CreatedAt.After(stores[j].CreatedAt)
	})
}

type categoryRepository struct {
	store *Store
}

// NewCategoryRepository is the constructor for the in-memory category repository.
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &categoryRepository{store: store}
}

func (repo *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	categories := make([]*entity.Category, 0, len(repo.store.categories))
	for _, category := range repo.store.categories {
		cloned := *category
		categories = append(categories, &cloned)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()

	cloned := *category
	repo.store.categories[category.ID] = &cloned

	return nil
}
