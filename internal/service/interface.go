package service

import (
	"context"

	"catalog-service/internal/model"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, providerID, email, name string) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, ownerID, name, description string) (*model.Category, error)
	GetCategory(ctx context.Context, id, ownerID string) (*model.Category, error)
	ListCategories(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id, ownerID string, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id, ownerID string) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID, categoryID, title, note string) (*model.Item, error)
	ListItems(ctx context.Context, ownerID, categoryID string) ([]*model.Item, error)
	SetItemArchived(ctx context.Context, id, ownerID string, archived bool) (*model.Item, error)
	DeleteItem(ctx context.Context, id, ownerID string) error
}
