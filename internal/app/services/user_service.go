package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/auth"
	"github.com/itcommunity/platform/internal/pkg/filestorage"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
	"github.com/itcommunity/platform/internal/pkg/validation"
)

// UserService handles profile and user directory operations
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
	storage   filestorage.FileStorage
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, storage filestorage.FileStorage) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		storage:   storage,
		logger:    logger.Logger().With().Str("service", "user").Logger(),
	}
}

// GetProfile returns the profile of the given user
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// ListUsers retrieves users for the admin directory
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter, page, size int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.GetAll(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.UserListResponse{
		Users:      dto.FromUsers(users),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdateProfile updates the caller's profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewBadRequestError("name must be between 2 and 100 characters")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Bio = req.Bio
	user.Location = req.Location
	user.Company = req.Company
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	resp := dto.FromUser(user)
	return &resp, nil
}

// UploadAvatar stores a new avatar image and replaces the previous one
func (s *UserService) UploadAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFile(fileHeader, "avatars")
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to store avatar")
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	oldURL := user.AvatarURL
	user.AvatarURL = &url
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if oldURL != nil {
		if err := s.storage.DeleteFile(*oldURL); err != nil {
			s.logger.Warn().Err(err).Str("url", *oldURL).Msg("Failed to delete previous avatar")
		}
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// ChangePassword verifies the current password and sets a new one. All
// refresh tokens are revoked so stolen sessions die with the old password.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if !validation.IsValidPassword(req.NewPassword) {
		return apperrors.NewBadRequestError("password must be at least 8 characters and contain a letter and a digit")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// UpdateNotificationSettings updates the caller's notification preferences
func (s *UserService) UpdateNotificationSettings(ctx context.Context, userID int64, req *dto.NotificationSettingsRequest) error {
	if req.EmailNotifications == nil && req.PushNotifications == nil {
		return apperrors.NewBadRequestError("no settings provided")
	}
	return s.userRepo.UpdateNotificationSettings(ctx, userID, req.EmailNotifications, req.PushNotifications)
}

// SetUserRole changes a user's role, admin only
func (s *UserService) SetUserRole(ctx context.Context, userID int64, role models.RoleType) error {
	if !models.ValidRole(role) {
		return apperrors.NewBadRequestError("invalid role")
	}
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("User role changed")
	return nil
}

// SetUserActive activates or deactivates an account. Deactivation revokes
// all refresh tokens so the user cannot refresh back in.
func (s *UserService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens on deactivation")
		}
	}
	s.logger.Info().Int64("userID", userID).Bool("active", active).Msg("User active state changed")
	return nil
}

// DeleteUser removes a user account, admin only
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("User deleted")
	return nil
}
