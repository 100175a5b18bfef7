package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"catalog-service/internal/apperr"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"
)

// categoryService enforces the category invariants: per-owner case-insensitive
// name uniqueness, ownership scoping on every lookup, and the guard that keeps
// a category with active items from being deleted. It is the only layer that
// turns storage signals into typed business errors.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, userRepo repository.UserRepository, logger *slog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, ownerID, name, description string) (*model.Category, error) {
	// The session may reference a user that no longer exists.
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("user %s not found", ownerID)
		}
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Duplicatef("category named %q already exists", name)
	}

	category := model.NewCategory(ownerID, name, description)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		// The pre-check above is advisory; a concurrent create can slip past
		// it and lose to the unique index instead.
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Duplicatef("category named %q already exists", name)
		}
		s.logger.Error("failed to create category", "owner_id", ownerID, "error", err)
		return nil, err
	}

	s.logger.Info("created category", "category_id", category.ID, "owner_id", ownerID)
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id, ownerID string) (*model.Category, error) {
	category, err := s.categoryRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("category %s not found", id)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Category, error) {
	return s.categoryRepo.ListOwned(ctx, ownerID, includeArchived)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id, ownerID string, patch model.CategoryPatch) (*model.Category, error) {
	category, err := s.GetCategory(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && !strings.EqualFold(*patch.Name, category.Name) {
		taken, err := s.categoryRepo.ExistsByNameExcluding(ctx, ownerID, *patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Duplicatef("category named %q already exists", *patch.Name)
		}
	}

	patch.Apply(category)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Duplicatef("category named %q already exists", category.Name)
		}
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("updated category", "category_id", id, "owner_id", ownerID)
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id, ownerID string) error {
	category, err := s.GetCategory(ctx, id, ownerID)
	if err != nil {
		return err
	}

	// Archived items do not block deletion; archiving the category is the
	// escape valve when active items remain.
	if category.ChildCount > 0 {
		return apperr.BusinessRulef("cannot delete category %q: %d active item(s) reference it",
			category.Name, category.ChildCount)
	}

	if err := s.categoryRepo.Delete(ctx, category); err != nil {
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return err
	}

	s.logger.Info("deleted category", "category_id", id, "owner_id", ownerID)
	return nil
}
