package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
)

// InMemoryCategoryRepository is a mutex-guarded map implementation used by
// tests and DB-less runs. It enforces the same per-owner case-insensitive
// name constraint as the Postgres unique index, keyed by the category's
// business key, so the conflict path behaves identically in both stores.
type InMemoryCategoryRepository struct {
	categories map[string]*model.Category
	byNameKey  map[string]string
	items      *InMemoryItemRepository
	mutex      sync.RWMutex
}

func NewInMemoryCategoryRepository(items *InMemoryItemRepository) *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: make(map[string]*model.Category),
		byNameKey:  make(map[string]string),
		items:      items,
	}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, taken := r.byNameKey[category.NameKey()]; taken {
		return repository.ErrConflict
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	stored := *category
	r.categories[stored.ID] = &stored
	r.byNameKey[stored.NameKey()] = stored.ID
	return nil
}

func (r *InMemoryCategoryRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	category, exists := r.categories[id]
	if !exists || category.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return r.withChildCount(category), nil
}

func (r *InMemoryCategoryRepository) ExistsByName(ctx context.Context, ownerID, name string) (bool, error) {
	return r.ExistsByNameExcluding(ctx, ownerID, name, "")
}

func (r *InMemoryCategoryRepository) ExistsByNameExcluding(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	key := ownerID + "/" + strings.ToLower(name)
	id, exists := r.byNameKey[key]
	return exists && id != excludeID, nil
}

func (r *InMemoryCategoryRepository) ListOwned(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := []*model.Category{}
	for _, category := range r.categories {
		if category.OwnerID != ownerID {
			continue
		}
		if category.Archived && !includeArchived {
			continue
		}
		result = append(result, r.withChildCount(category))
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, exists := r.categories[category.ID]
	if !exists {
		return repository.ErrNotFound
	}
	if id, taken := r.byNameKey[category.NameKey()]; taken && id != category.ID {
		return repository.ErrConflict
	}

	delete(r.byNameKey, current.NameKey())
	stored := *category
	r.categories[stored.ID] = &stored
	r.byNameKey[stored.NameKey()] = stored.ID
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, exists := r.categories[category.ID]
	if !exists {
		return nil
	}
	delete(r.byNameKey, current.NameKey())
	delete(r.categories, category.ID)
	return nil
}

func (r *InMemoryCategoryRepository) withChildCount(category *model.Category) *model.Category {
	copied := *category
	if r.items != nil {
		copied.ChildCount = r.items.countActive(category.ID)
	}
	return &copied
}

// Item repository implementation
type InMemoryItemRepository struct {
	items map[string]*model.Item
	mutex sync.RWMutex
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items: make(map[string]*model.Item),
	}
}

func (r *InMemoryItemRepository) Create(ctx context.Context, item *model.Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	stored := *item
	r.items[stored.ID] = &stored
	return nil
}

func (r *InMemoryItemRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.items[id]
	if !exists || item.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *InMemoryItemRepository) FindByCategory(ctx context.Context, categoryID string) ([]*model.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := []*model.Item{}
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			copied := *item
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Title) < strings.ToLower(result[j].Title)
	})
	return result, nil
}

func (r *InMemoryItemRepository) CountActive(ctx context.Context, categoryID string) (int, error) {
	return r.countActive(categoryID), nil
}

func (r *InMemoryItemRepository) countActive(categoryID string) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.CategoryID == categoryID && !item.Archived {
			count++
		}
	}
	return count
}

func (r *InMemoryItemRepository) Update(ctx context.Context, item *model.Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return repository.ErrNotFound
	}
	stored := *item
	r.items[stored.ID] = &stored
	return nil
}

func (r *InMemoryItemRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.items, id)
	return nil
}

// User repository implementation
type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryUserRepository) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.ProviderID == providerID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return repository.ErrNotFound
	}
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.users, id)
	return nil
}
