package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

type productRepository struct {
	store *Store
}

// NewProductRepository is the constructor for the in-memory product repository.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	product, ok := repo.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return copyProduct(product), nil
}

func (repo *productRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var products []*entity.Product
	for _, product := range repo.store.products {
		if product.StoreID == storeID {
			products = append(products, copyProduct(product))
		}
	}

	sortProductsNewestFirst(products)

	return products, nil
}

func (repo *productRepository) FindFeatured(ctx context.Context) ([]*entity.Product, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var products []*entity.Product
	for _, product := range repo.store.products {
		if product.Featured {
			products = append(products, copyProduct(product))
		}
	}

	sortProductsNewestFirst(products)

	return products, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()

	repo.store.products[product.ID] = copyProduct(product)

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	existing, ok := repo.store.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.ImageURL = product.ImageURL
	existing.Category = product.Category
	existing.Stock = product.Stock
	existing.Featured = product.Featured

	return nil
}

func sortProductsNewestFirst(products []*entity.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
