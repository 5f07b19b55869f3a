package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

type userRepository struct {
	store *Store
}

// NewUserRepository is the constructor for the in-memory user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return copyUser(user), nil
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, user := range repo.store.users {
		if strings.EqualFold(user.Username, username) {
			return copyUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, user := range repo.store.users {
		if strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, existing := range repo.store.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return repository.ErrDuplicateUsername
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.store.users[user.ID] = copyUser(user)

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	existing, ok := repo.store.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	existing.Name = user.Name
	existing.Role = user.Role
	existing.Phone = user.Phone
	existing.Address = user.Address
	existing.AddressDetails = user.AddressDetails
	existing.UpdatedAt = time.Now()

	user.UpdatedAt = existing.UpdatedAt

	return nil
}
