package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account and returns a signed token.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil || req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidUserData
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      false,
		Addresses:    []model.Address{},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed token.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn().Str("email", req.Email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Profile retrieves the caller's account.
func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile updates the caller's account. Empty fields keep their
// current values; a supplied password is re-hashed.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	found, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if !found {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("profile updated")

	return s.authResponse(user)
}

// GetByID retrieves an account for the admin dashboard.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// List retrieves accounts with pagination.
func (s *userService) List(ctx context.Context, page, limit int) (model.Page[model.User], error) {
	result, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return model.Page[model.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return result, nil
}

// Delete removes an account.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !found {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")

	return nil
}

// authResponse signs a token for the user and shapes the auth payload.
func (s *userService) authResponse(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Name, user.IsAdmin)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}
