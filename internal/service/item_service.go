package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catalog-service/internal/apperr"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"
)

type itemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository, logger *slog.Logger) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ownedCategory resolves the category through the owner-scoped lookup, so a
// foreign category id fails the same way as a missing one.
func (s *itemService) ownedCategory(ctx context.Context, categoryID, ownerID string) (*model.Category, error) {
	category, err := s.categoryRepo.FindOwned(ctx, categoryID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("category %s not found", categoryID)
		}
		return nil, err
	}
	return category, nil
}

func (s *itemService) CreateItem(ctx context.Context, ownerID, categoryID, title, note string) (*model.Item, error) {
	if _, err := s.ownedCategory(ctx, categoryID, ownerID); err != nil {
		return nil, err
	}

	item := model.NewItem(ownerID, categoryID, title, note)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.Error("failed to create item", "category_id", categoryID, "error", err)
		return nil, err
	}

	s.logger.Info("created item", "item_id", item.ID, "category_id", categoryID)
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID, categoryID string) ([]*model.Item, error) {
	if _, err := s.ownedCategory(ctx, categoryID, ownerID); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByCategory(ctx, categoryID)
}

func (s *itemService) SetItemArchived(ctx context.Context, id, ownerID string, archived bool) (*model.Item, error) {
	item, err := s.itemRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("item %s not found", id)
		}
		return nil, err
	}

	if item.Archived == archived {
		return item, nil
	}

	item.Archived = archived
	item.UpdatedAt = time.Now()
	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("failed to update item", "item_id", id, "error", err)
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id, ownerID string) error {
	item, err := s.itemRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("item %s not found", id)
		}
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		s.logger.Error("failed to delete item", "item_id", id, "error", err)
		return err
	}
	return nil
}
