package repository

import (
	"context"
	"errors"

	"catalog-service/internal/model"
)

// ErrNotFound is returned when the requested row does not exist or is not
// owned by the caller. Repositories never distinguish the two cases, so a
// foreign id is indistinguishable from a missing one.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write trips a uniqueness constraint. The
// service layer re-maps it to a duplicate-resource error; repositories do not
// construct business errors themselves.
var ErrConflict = errors.New("conflict")

// CategoryRepository defines the ownership-scoped category data operations.
type CategoryRepository interface {
	// FindOwned filters on id and owner in a single query and populates
	// ChildCount with the number of non-archived items.
	FindOwned(ctx context.Context, id, ownerID string) (*model.Category, error)
	// ExistsByName is a case-insensitive existence check scoped to one owner.
	ExistsByName(ctx context.Context, ownerID, name string) (bool, error)
	// ExistsByNameExcluding is ExistsByName minus one category, for renames.
	ExistsByNameExcluding(ctx context.Context, ownerID, name, excludeID string) (bool, error)
	// ListOwned returns the owner's categories ordered by name. An empty
	// slice is a valid result, not an error.
	ListOwned(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, category *model.Category) error
}

// ItemRepository defines data operations for the records filed under
// categories.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error)
	FindByCategory(ctx context.Context, categoryID string) ([]*model.Item, error)
	// CountActive counts the category's non-archived items.
	CountActive(ctx context.Context, categoryID string) (int, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByProviderID(ctx context.Context, providerID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}
