// Package service implements durable storage for the root secrets record.
//
// The record lives in a single JSON file created on first use. Concurrent
// callers, in-process and across processes, converge on the same record:
// in-process loads are coalesced with singleflight and cross-process races
// are resolved with an exclusive file create where the loser re-reads the
// winner's record.
package service

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/allisson/appsecrets/internal/errors"
	keystoreDomain "github.com/allisson/appsecrets/internal/keystore/domain"
)

const (
	dirMode  = 0o700
	fileMode = 0o600

	// rereadAttempts bounds how long a create-race loser waits for the
	// winner to finish writing the record.
	rereadAttempts = 5
	rereadDelay    = 20 * time.Millisecond
)

// FileStore persists the root secrets record as a JSON file.
type FileStore struct {
	path   string
	keeper Keeper
	logger *slog.Logger
	group  singleflight.Group
}

// NewFileStore creates a FileStore writing to the given path.
// The keeper is optional; when set, the record is wrapped by the KMS before
// it touches disk. Pass nil to store plain JSON.
func NewFileStore(path string, keeper Keeper, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		keeper: keeper,
		logger: logger,
	}
}

// Path returns the location of the secrets file.
func (s *FileStore) Path() string {
	return s.path
}

// GetOrCreate returns the persisted root secrets record, creating it on
// first use.
//
// An existing valid record is always returned unchanged, so repeated calls
// and restarts observe identical key material. A record that cannot be
// read, parsed, or validated is logged at warn level, removed, and replaced
// with freshly generated keys. When two processes race to create the file,
// the exclusive create guarantees a single winner; the loser re-reads and
// returns the winner's record.
func (s *FileStore) GetOrCreate(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	result, err, _ := s.group.Do("root-secrets", func() (any, error) {
		return s.getOrCreate(ctx)
	})
	if err != nil {
		return keystoreDomain.RootSecrets{}, err
	}
	return result.(keystoreDomain.RootSecrets), nil
}

func (s *FileStore) getOrCreate(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	secrets, err := s.read(ctx)
	switch {
	case err == nil:
		return secrets, nil
	case os.IsNotExist(err):
		// First use, fall through to create.
	default:
		// An existing record that cannot be read, unwrapped, parsed, or
		// validated is discarded wholesale and regenerated. Only a failed
		// removal is fatal.
		s.logger.Warn("root secrets record is unusable, regenerating",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to remove unusable secrets record")
		}
	}

	return s.create(ctx)
}

// read loads and validates the record from disk.
func (s *FileStore) read(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return keystoreDomain.RootSecrets{}, err
	}

	if s.keeper != nil {
		raw, err = s.keeper.Decrypt(ctx, raw)
		if err != nil {
			return keystoreDomain.RootSecrets{}, apperrors.Wrap(
				keystoreDomain.ErrInvalidSecretsRecord, "failed to unwrap secrets record",
			)
		}
	}

	var secrets keystoreDomain.RootSecrets
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(
			keystoreDomain.ErrInvalidSecretsRecord, "failed to parse secrets record",
		)
	}

	if err := secrets.Validate(); err != nil {
		return keystoreDomain.RootSecrets{}, err
	}

	return secrets, nil
}

// create generates a fresh record and writes it with an exclusive create.
func (s *FileStore) create(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	secrets, err := keystoreDomain.GenerateRootSecrets()
	if err != nil {
		return keystoreDomain.RootSecrets{}, err
	}

	raw, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to encode secrets record")
	}

	if s.keeper != nil {
		raw, err = s.keeper.Encrypt(ctx, raw)
		if err != nil {
			return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to wrap secrets record")
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to create secrets directory")
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		if apperrors.Is(err, fs.ErrExist) {
			// Another process won the create race; adopt its record.
			return s.rereadWinner(ctx)
		}
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to create secrets record")
	}

	if _, err := file.Write(raw); err != nil {
		_ = file.Close()
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to write secrets record")
	}
	if err := file.Close(); err != nil {
		return keystoreDomain.RootSecrets{}, apperrors.Wrap(err, "failed to close secrets record")
	}

	s.logger.Info("generated new root secrets record", slog.String("path", s.path))

	return secrets, nil
}

// rereadWinner reads the record written by the process that won the create
// race, retrying briefly in case the winner has not finished writing.
func (s *FileStore) rereadWinner(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	var lastErr error
	for attempt := 0; attempt < rereadAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return keystoreDomain.RootSecrets{}, ctx.Err()
			case <-time.After(rereadDelay):
			}
		}

		secrets, err := s.read(ctx)
		if err == nil {
			return secrets, nil
		}
		lastErr = err
	}

	return keystoreDomain.RootSecrets{}, apperrors.Wrap(lastErr, "failed to read secrets record after create race")
}
