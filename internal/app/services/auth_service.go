package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/auth"
	"github.com/itcommunity/platform/internal/pkg/logger"
	"github.com/itcommunity/platform/internal/pkg/validation"
)

// TokenStore is the refresh token persistence surface the auth service needs
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  TokenStore
	activities *ActivityRecorder
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo TokenStore,
	activities *ActivityRecorder,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		activities: activities,
		jwtService: jwtService,
		logger:     logger.Logger().With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user account and returns an authenticated session.
// The ADMIN role can never be self-assigned here.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewBadRequestError("invalid email format")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewBadRequestError("password must be at least 8 characters and contain a letter and a digit")
	}
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewBadRequestError("name must be between 2 and 100 characters")
	}
	if req.Role == models.RoleAdmin || !models.ValidRole(req.Role) {
		return nil, apperrors.NewBadRequestError("invalid role")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     req.Role,
		Skills:   []string{},
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	user.IsActive = true

	s.logger.Info().Int64("userID", id).Str("role", string(req.Role)).Msg("User registered")
	s.activities.Record(ctx, models.ActivityUserRegistered, &id, "user", &id,
		fmt.Sprintf("%s joined the community", user.Name))

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: *token, User: dto.FromUser(user)}, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password so the response does not leak
			// which emails are registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return &dto.AuthResponse{Token: *token, User: dto.FromUser(user)}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The used
// token is revoked so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout ends every session of the token's user by revoking all their
// refresh tokens. Unknown, revoked or expired tokens still log out cleanly.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) ||
			errors.Is(err, apperrors.ErrTokenRevoked) ||
			errors.Is(err, apperrors.ErrTokenExpired) {
			return nil
		}
		return err
	}

	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, expiry); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}
