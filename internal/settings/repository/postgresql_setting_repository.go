// Package repository implements data persistence for encrypted application
// settings. Repositories support both PostgreSQL and MySQL; rows carry the
// encrypted value split into its nonce and ciphertext columns.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/appsecrets/internal/database"
	apperrors "github.com/allisson/appsecrets/internal/errors"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// PostgreSQLSettingRepository implements Setting persistence for PostgreSQL databases.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingRepository creates a new PostgreSQL-backed setting repository.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}

// Upsert inserts a setting or replaces its encrypted value when the key exists.
func (p *PostgreSQLSettingRepository) Upsert(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO settings (id, key, iv, ciphertext, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (key) DO UPDATE
			  SET iv = EXCLUDED.iv, ciphertext = EXCLUDED.ciphertext, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.ID,
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
func (p *PostgreSQLSettingRepository) GetByKey(
	ctx context.Context,
	key string,
) (*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, key, iv, ciphertext, created_at, updated_at
			  FROM settings
			  WHERE key = $1
			  LIMIT 1`

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
func (p *PostgreSQLSettingRepository) ListKeys(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key FROM settings ORDER BY key`

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
func (p *PostgreSQLSettingRepository) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM settings WHERE key = $1`

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
