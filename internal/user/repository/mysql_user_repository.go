package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/appsecrets/internal/database"
	apperrors "github.com/allisson/appsecrets/internal/errors"
	"github.com/allisson/appsecrets/internal/user/domain"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID.String(), user.Name, user.Email, user.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, created_at, updated_at
			  FROM users WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, created_at, updated_at
			  FROM users WHERE email = ?`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, password, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
