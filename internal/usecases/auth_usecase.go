package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/domain/repositories"
	"strmly.backend/pkg/crypto"
	"strmly.backend/pkg/jwt"
	"strmly.backend/pkg/utils"
)

// AuthUsecase handles account registration and login
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo, jwtService: jwtService}
}

// Register creates a new account and returns it with a token pair
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	if _, err := u.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, domainerrors.Conflict("USERNAME_TAKEN", "username is already taken")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entities.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("USER_ALREADY_EXISTS", "an account with this email or username already exists")
		}
		return nil, domainerrors.InternalError(err)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login verifies credentials and returns the account with a token pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Me returns the authenticated user's account
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

func invalidCredentials() *domainerrors.AppError {
	e := domainerrors.Unauthorized("invalid email or password")
	e.Code = "INVALID_CREDENTIALS"
	e.Err = domainerrors.ErrInvalidCredentials
	return e
}
