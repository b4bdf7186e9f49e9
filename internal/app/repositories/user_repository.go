package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/dberrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// UserFilter restricts user listing queries
type UserFilter struct {
	Role     *models.RoleType
	IsActive *bool
	Search   string
	SortBy   string
	SortDesc bool
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var userColumns = []string{
	"id", "email", "password", "name", "role", "avatar_url", "bio", "location",
	"company", "skills", "is_active", "email_notifications", "push_notifications",
	"created_at", "updated_at", "last_login_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.AvatarURL, &u.Bio,
		&u.Location, &u.Company, &u.Skills, &u.IsActive, &u.EmailNotifications,
		&u.PushNotifications, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "name", "role", "skills", "is_active",
			"email_notifications", "push_notifications", "created_at", "updated_at").
		Values(user.Email, user.Password, user.Name, user.Role, user.Skills, true,
			true, true, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks whether an email address is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return true, nil
}

// GetAll retrieves users with filtering and pagination
func (r *UserRepository) GetAll(ctx context.Context, filter UserFilter, page, pageSize int) ([]*models.User, int64, error) {
	where := squirrel.And{}
	if filter.Role != nil {
		where = append(where, squirrel.Eq{"role": *filter.Role})
	}
	if filter.IsActive != nil {
		where = append(where, squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("users")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orderBy := userSortColumn(filter.SortBy)
	if filter.SortDesc {
		orderBy += " DESC"
	}

	queryBuilder := r.sb.Select(userColumns...).
		From("users").
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}
	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// userSortColumn maps an API sort field to a whitelisted column
func userSortColumn(field string) string {
	switch field {
	case "name":
		return "name"
	case "email":
		return "email"
	case "role":
		return "role"
	case "lastLoginAt":
		return "last_login_at"
	default:
		return "created_at"
	}
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("name", user.Name).
		Set("bio", user.Bio).
		Set("location", user.Location).
		Set("company", user.Company).
		Set("skills", user.Skills).
		Set("avatar_url", user.AvatarURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword sets a new password hash for the user
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateNotificationSettings updates notification preferences
func (r *UserRepository) UpdateNotificationSettings(ctx context.Context, userID int64, email, push *bool) error {
	builder := r.sb.Update("users").Set("updated_at", time.Now())
	if email != nil {
		builder = builder.Set("email_notifications", *email)
	}
	if push != nil {
		builder = builder.Set("push_notifications", *push)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update notification settings query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating notification settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin records the time of a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update last login time")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// SetRole changes a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID int64, role models.RoleType) error {
	sql, args, err := r.sb.Update("users").
		Set("role", role).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set role query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing set role query")
		return fmt.Errorf("error setting user role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetActive activates or deactivates a user account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing set active query")
		return fmt.Errorf("error setting user active state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete removes a user account
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing delete user query")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// CountAll returns the total number of users
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

// CountActive returns the number of active users
func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, squirrel.Eq{"is_active": true})
}

func (r *UserRepository) countWhere(ctx context.Context, pred interface{}) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("users")
	if pred != nil {
		builder = builder.Where(pred)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
