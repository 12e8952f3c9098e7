package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/pkg/apperrors"
	"github.com/selim/campusfind/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user row. Duplicate email, duplicate identifier and
// invalid role surface as distinct typed errors.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING date_joined
	`

	err := r.db.QueryRow(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
	).Scan(&user.DateJoined)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err, "users_email_key"):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsUniqueViolation(err, "users_pkey"):
			return apperrors.ErrIdentifierExists
		case dberrors.IsCheckViolation(err, "users_role_check"):
			return apperrors.ErrInvalidRole
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier. The row includes the credential
// hash; callers expose users only through their public profile.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getBy(ctx, "user_id", userID)
}

// GetByEmail retrieves a user by email. Used by the auth gate only.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT user_id, name, email, phone, password_hash, role, date_joined
		FROM users
		WHERE %s = $1
	`, column)

	var user models.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// Delete removes a user. Posts owned by the user go with it (cascade) and
// matches they initiated keep their row with matched_by set to NULL.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
