package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/store"
)

const profileColumns = `id, name, avatar, total_correct_audio, total_correct_hint, created_at`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Avatar,
		&p.TotalCorrectAudio,
		&p.TotalCorrectHint,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// List implements store.ProfileStore.List
func (s *PostgresProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.OpList, uuid.Nil, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, store.NewStoreError(store.OpList, uuid.Nil, "scan failed", MapError(err))
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(store.OpList, uuid.Nil, "iteration failed", MapError(err))
	}

	log.Debug("listed profiles", slog.Int("count", len(profiles)))
	return profiles, nil
}

// Get implements store.ProfileStore.Get
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("profile not found", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, store.NewStoreError(store.OpGet, id, "query failed", mapped)
	}
	return p, nil
}

// Create implements store.ProfileStore.Create
// Returns an error wrapping store.ErrInvalidEntity if the name is invalid.
func (s *PostgresProfileStore) Create(ctx context.Context, name string) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := domain.NewProfile(name)
	if err != nil {
		log.Warn("profile validation failed during create", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns

	created, err := scanProfile(s.db.QueryRowContext(
		ctx,
		query,
		p.ID,
		p.Name,
		p.Avatar,
		p.TotalCorrectAudio,
		p.TotalCorrectHint,
		p.CreatedAt,
	))
	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", p.ID.String()))
		return nil, store.NewStoreError(store.OpCreate, p.ID, "insert failed", MapError(err))
	}

	log.Info("profile created",
		slog.String("profile_id", created.ID.String()),
		slog.String("avatar", created.Avatar))
	return created, nil
}

// Delete implements store.ProfileStore.Delete
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return store.NewStoreError(store.OpDelete, id, "delete failed",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err)))
	}

	if err := CheckRowsAffected(result, store.ErrProfileNotFound); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			log.Debug("profile not found for deletion", slog.String("profile_id", id.String()))
		}
		return err
	}

	log.Info("profile deleted", slog.String("profile_id", id.String()))
	return nil
}

// IncrementProgress implements store.ProfileStore.IncrementProgress
// The counter is bumped by a single UPDATE, so concurrent increments are
// serialised by the database.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) IncrementProgress(
	ctx context.Context,
	id uuid.UUID,
	bucket domain.ProgressBucket,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var query string
	switch bucket {
	case domain.BucketAudio:
		query = `UPDATE profiles SET total_correct_audio = total_correct_audio + 1
			WHERE id = $1 RETURNING ` + profileColumns
	case domain.BucketHint:
		query = `UPDATE profiles SET total_correct_hint = total_correct_hint + 1
			WHERE id = $1 RETURNING ` + profileColumns
	default:
		return nil, fmt.Errorf("%w: %w: %q", store.ErrInvalidEntity, domain.ErrInvalidProgressBucket, bucket)
	}

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Warn("progress increment for unknown profile", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to increment progress",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()),
			slog.String("bucket", string(bucket)))
		return nil, store.NewStoreError(store.OpIncrement, id, "update failed",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, mapped))
	}

	log.Debug("progress incremented",
		slog.String("profile_id", id.String()),
		slog.String("bucket", string(bucket)),
		slog.Int("total_correct_audio", p.TotalCorrectAudio),
		slog.Int("total_correct_hint", p.TotalCorrectHint))
	return p, nil
}
