package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

type cartRepository struct {
	store *Store
}

// NewCartRepository is the constructor for the in-memory cart repository.
func NewCartRepository(store *Store) repository.CartRepository {
	return &cartRepository{store: store}
}

func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var items []*entity.CartItem
	for _, item := range repo.store.cartItems {
		if item.UserID == userID {
			items = append(items, copyCartItem(item))
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	item, ok := repo.store.cartItems[id]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}

	return copyCartItem(item), nil
}

func (repo *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, item := range repo.store.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			return copyCartItem(item), nil
		}
	}

	return nil, repository.ErrCartItemNotFound
}

func (repo *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()

	repo.store.cartItems[item.ID] = copyCartItem(item)

	return nil
}

func (repo *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	item, ok := repo.store.cartItems[id]
	if !ok {
		return repository.ErrCartItemNotFound
	}

	item.Quantity = quantity

	return nil
}

func (repo *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.cartItems[id]; !ok {
		return repository.ErrCartItemNotFound
	}

	delete(repo.store.cartItems, id)

	return nil
}

func (repo *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for id, item := range repo.store.cartItems {
		if item.UserID == userID {
			delete(repo.store.cartItems, id)
		}
	}

	return nil
}
