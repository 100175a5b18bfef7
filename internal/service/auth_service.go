package service

import (
	"context"
	"errors"
	"log/slog"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, providerID, email, name string) (*model.User, error) {
	existing, err := s.userRepo.FindByProviderID(ctx, providerID)
	if err == nil {
		if existing.Email != email || existing.Name != name {
			existing.Email = email
			existing.Name = name
			if err := s.userRepo.Update(ctx, existing); err != nil {
				s.logger.Error("failed to update user", "user_id", existing.ID, "error", err)
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := model.NewUser(providerID, email, name)
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "provider_id", providerID, "error", err)
		return nil, err
	}
	s.logger.Info("created user", "user_id", user.ID)
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
