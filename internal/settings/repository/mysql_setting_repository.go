package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/appsecrets/internal/database"
	apperrors "github.com/allisson/appsecrets/internal/errors"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// MySQLSettingRepository implements Setting persistence for MySQL databases.
type MySQLSettingRepository struct {
	db *sql.DB
}

// NewMySQLSettingRepository creates a new MySQL-backed setting repository.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}

// Upsert inserts a setting or replaces its encrypted value when the key exists.
func (m *MySQLSettingRepository) Upsert(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, m.db)

	query := "INSERT INTO settings (id, `key`, iv, ciphertext, created_at, updated_at) " +
		"VALUES (?, ?, ?, ?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE iv = VALUES(iv), ciphertext = VALUES(ciphertext), updated_at = VALUES(updated_at)"

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.ID.String(),
		setting.Key,
		setting.Value.IV,
		setting.Value.Ciphertext,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert setting")
	}
	return nil
}

// GetByKey retrieves a setting by its key.
func (m *MySQLSettingRepository) GetByKey(
	ctx context.Context,
	key string,
) (*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT id, `key`, iv, ciphertext, created_at, updated_at " +
		"FROM settings WHERE `key` = ? LIMIT 1"

	var setting settingsDomain.Setting
	err := querier.QueryRowContext(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value.IV,
		&setting.Value.Ciphertext,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get setting by key")
	}

	return &setting, nil
}

// ListKeys returns the keys of all stored settings in lexical order.
func (m *MySQLSettingRepository) ListKeys(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT `key` FROM settings ORDER BY `key`"

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list setting keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate setting keys")
	}

	return keys, nil
}

// Delete removes a setting by its key.
func (m *MySQLSettingRepository) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, m.db)

	query := "DELETE FROM settings WHERE `key` = ?"

	result, err := querier.ExecContext(ctx, query, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
