package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/appsecrets/internal/user/domain"
)

func testUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        uuid.New(),
		Name:      "Admin",
		Email:     "admin@example.com",
		Password:  "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$aGFzaA",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.Password).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLUserRepository(db)
		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.Password).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		repo := NewPostgreSQLUserRepository(db)
		assert.ErrorIs(t, repo.Create(context.Background(), user), domain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepository_GetByEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := testUser()

		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "created_at", "updated_at"}).
			AddRow(user.ID, user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)

		mock.ExpectQuery("SELECT id, name, email, password").
			WithArgs(user.Email).
			WillReturnRows(rows)

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByEmail(context.Background(), user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.Password, got.Password)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name, email, password").
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "created_at", "updated_at"}))

		repo := NewPostgreSQLUserRepository(db)
		_, err = repo.GetByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_UpdatePassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()

		mock.ExpectExec("UPDATE users SET password").
			WithArgs("new-hash", id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLUserRepository(db)
		require.NoError(t, repo.UpdatePassword(context.Background(), id, "new-hash"))
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()

		mock.ExpectExec("UPDATE users SET password").
			WithArgs("new-hash", id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLUserRepository(db)
		assert.ErrorIs(t, repo.UpdatePassword(context.Background(), id, "new-hash"), domain.ErrUserNotFound)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.True(t, isUniqueViolation(errors.New("pq: duplicate key value violates unique constraint")))
	assert.True(t, isUniqueViolation(errors.New("Error 1062: Duplicate entry 'admin@example.com' for key 'email'")))
}
