package memory

import (
	"context"
	"sync"

	"jacomprei/internal/domain/repository"
)

// memoryTransactionManager implements the domain's TransactionManager on the
// in-memory store. Transactions are serialized by a coarse mutex; there is no
// rollback, so use cases must order their writes so earlier ones are safe to
// keep if a later one fails. The GORM manager provides real atomicity.
type memoryTransactionManager struct {
	mu      sync.Mutex
	factory *Factory
}

// Factory implements repository.RepositoryFactory over a shared Store.
type Factory struct {
	store *Store
}

// NewFactory creates a repository factory bound to the given store.
func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

// NewUserRepository returns the user repository bound to the store.
func (f *Factory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store}
}

// NewStoreRepository returns the store repository bound to the store.
func (f *Factory) NewStoreRepository() repository.StoreRepository {
	return &storeRepository{store: f.store}
}

// NewCategoryRepository returns the category repository bound to the store.
func (f *Factory) NewCategoryRepository() repository.CategoryRepository {
	return &categoryRepository{store: f.store}
}

// NewProductRepository returns the product repository bound to the store.
func (f *Factory) NewProductRepository() repository.ProductRepository {
	return &productRepository{store: f.store}
}

// NewCartRepository returns the cart repository bound to the store.
func (f *Factory) NewCartRepository() repository.CartRepository {
	return &cartRepository{store: f.store}
}

// NewOrderRepository returns the order repository bound to the store.
func (f *Factory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{store: f.store}
}

// NewTransactionManager is the constructor for memoryTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &memoryTransactionManager{factory: NewFactory(store)}
}

// Execute runs the given function while holding the transaction mutex.
func (tm *memoryTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(tm.factory)
}
