package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hongminglow/platform-accounts/internal/models"
	"github.com/hongminglow/platform-accounts/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

const uniqueViolation = "23505"

const userColumns = `id, name, email, role, password_hash, created_at,
	whatsapp, linkedin_post, discord, slack, facebook, instagram, twitter, pdf,
	platforms_setup_at`

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore connects to databaseURL and applies pending migrations.
func NewUserStore(ctx context.Context, databaseURL string, log *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	migrator, err := NewMigrator(databaseURL, log)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := migrator.Up(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateUser inserts a new user row. The unique email index is the final word on duplicates.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `INSERT INTO users_auth (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindByEmail fetches a user by exact email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_auth WHERE email = $1`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_auth WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// UpdatePlatforms overwrites the given platform columns in a single statement.
func (s *Store) UpdatePlatforms(ctx context.Context, id int64, fields models.PlatformFields) (models.User, error) {
	args := []any{id}
	sets := make([]string, 0, len(models.Platforms)+1)
	for _, p := range models.Platforms {
		value, ok := fields[p]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", p, len(args)))
	}
	if len(sets) == 0 {
		return models.User{}, errors.New("no platform fields to update")
	}
	// GREATEST skips NULL, so the first write takes the clock and later ones never go backwards.
	sets = append(sets, "platforms_setup_at = GREATEST(platforms_setup_at, clock_timestamp())")

	query := `UPDATE users_auth SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	updated, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("update platforms: %w", err)
	}
	return updated, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt,
		&user.WhatsApp, &user.LinkedInPost, &user.Discord, &user.Slack,
		&user.Facebook, &user.Instagram, &user.Twitter, &user.PDF,
		&user.PlatformsSetupAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
