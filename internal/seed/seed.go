// Package seed creates the default records a fresh installation needs
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@itcommunity.com"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData creates the default admin account if it does not exist.
// The password must be changed after the first login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    defaultAdminEmail,
		Password: hash,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		Skills:   []string{},
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
