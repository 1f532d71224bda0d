package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/appsecrets/internal/errors"
)

func TestMySQLSettingRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	setting := testSetting()

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(
			setting.ID.String(),
			setting.Key,
			setting.Value.IV,
			setting.Value.Ciphertext,
			setting.CreatedAt,
			setting.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMySQLSettingRepository(db)
	require.NoError(t, repo.Upsert(context.Background(), setting))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_GetByKey(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		setting := testSetting()

		rows := sqlmock.NewRows([]string{"id", "key", "iv", "ciphertext", "created_at", "updated_at"}).
			AddRow(
				setting.ID.String(),
				setting.Key,
				setting.Value.IV,
				setting.Value.Ciphertext,
				setting.CreatedAt,
				setting.UpdatedAt,
			)

		mock.ExpectQuery("SELECT id, `key`, iv, ciphertext").
			WithArgs(setting.Key).
			WillReturnRows(rows)

		repo := NewMySQLSettingRepository(db)
		got, err := repo.GetByKey(context.Background(), setting.Key)

		require.NoError(t, err)
		assert.Equal(t, setting.ID, got.ID)
		assert.Equal(t, setting.Value, got.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, `key`, iv, ciphertext").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "key", "iv", "ciphertext", "created_at", "updated_at"}))

		repo := NewMySQLSettingRepository(db)
		_, err = repo.GetByKey(context.Background(), "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestMySQLSettingRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM settings").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLSettingRepository(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), apperrors.ErrNotFound)
}
