// Package memory provides an in-memory implementation of the persistence
// layer. It backs local development when no Postgres is configured and
// doubles as the fixture for use case tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
)

// Store holds all tables in maps guarded by a single RWMutex.
type Store struct {
	mu sync.RWMutex

	users      map[uuid.UUID]*entity.User
	stores     map[uuid.UUID]*entity.Store
	categories map[uuid.UUID]*entity.Category
	products   map[uuid.UUID]*entity.Product
	cartItems  map[uuid.UUID]*entity.CartItem
	orders     map[uuid.UUID]*entity.Order
	orderItems map[uuid.UUID][]*entity.OrderItem
	history    map[uuid.UUID][]*entity.OrderStatusHistory
}

// NewStore creates an empty Store with the default categories seeded.
func NewStore() *Store {
	s := &Store{
		users:      make(map[uuid.UUID]*entity.User),
		stores:     make(map[uuid.UUID]*entity.Store),
		categories: make(map[uuid.UUID]*entity.Category),
		products:   make(map[uuid.UUID]*entity.Product),
		cartItems:  make(map[uuid.UUID]*entity.CartItem),
		orders:     make(map[uuid.UUID]*entity.Order),
		orderItems: make(map[uuid.UUID][]*entity.OrderItem),
		history:    make(map[uuid.UUID][]*entity.OrderStatusHistory),
	}
	s.seedCategories()

	return s
}

func (s *Store) seedCategories() {
	defaults := []struct {
		name  string
		icon  string
		color string
	}{
		{"Mercearia", "shopping-bag", "#FF6B00"},
		{"Padaria", "cake", "#0069FF"},
		{"Feira", "shopping-cart", "#16A34A"},
		{"Presentes", "gift", "#F97316"},
		{"Farmácia", "pill", "#ef4444"},
		{"Restaurante", "utensils", "#f59e0b"},
		{"Bebidas", "wine", "#8b5cf6"},
		{"Pet Shop", "paw-print", "#10b981"},
	}

	now := time.Now()
	for _, d := range defaults {
		id := uuid.New()
		s.categories[id] = &entity.Category{
			ID:        id,
			Name:      d.name,
			Icon:      d.icon,
			Color:     d.color,
			CreatedAt: now,
		}
	}
}

// copyUser returns a copy so callers cannot mutate stored state.
func copyUser(u *entity.User) *entity.User {
	cloned := *u

	return &cloned
}

func copyStoreEntity(st *entity.Store) *entity.Store {
	cloned := *st
	if st.Tags != nil {
		cloned.Tags = append([]string(nil), st.Tags...)
	}

	return &cloned
}

func copyProduct(p *entity.Product) *entity.Product {
	cloned := *p

	return &cloned
}

func copyCartItem(ci *entity.CartItem) *entity.CartItem {
	cloned := *ci

	return &cloned
}

func copyOrder(o *entity.Order) *entity.Order {
	cloned := *o
	if o.DeliveryPersonID != nil {
		id := *o.DeliveryPersonID
		cloned.DeliveryPersonID = &id
	}

	return &cloned
}
