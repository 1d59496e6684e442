package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/platform-accounts/internal/events"
	"github.com/hongminglow/platform-accounts/internal/models"
	"github.com/hongminglow/platform-accounts/internal/storage"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	VerifyDummy(plain string) bool
}

// TokenIssuer signs bearer tokens for a user.
type TokenIssuer interface {
	Issue(userID int64, role string) (string, error)
}

// ProfileCache stores platform profiles between reads.
type ProfileCache interface {
	Get(ctx context.Context, userID int64) (models.PlatformProfile, bool, error)
	Set(ctx context.Context, userID int64, profile models.PlatformProfile) error
	Invalidate(ctx context.Context, userID int64) error
}

// Service runs the signup, login and platform profile flows.
type Service struct {
	users    storage.UserStore
	hasher   PasswordHasher
	tokens   TokenIssuer
	roles    models.RoleAssigner
	cache    ProfileCache
	events   events.Publisher
	logger   *slog.Logger
	validate *validator.Validate
}

// Option customises a Service.
type Option func(*Service)

// WithCache serves platform reads through c.
func WithCache(c ProfileCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithEvents publishes account changes to p.
func WithEvents(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// New constructs a Service.
func New(users storage.UserStore, hasher PasswordHasher, tokens TokenIssuer, roles models.RoleAssigner, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		roles:    roles,
		events:   events.NopPublisher{},
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupInput is the data needed to open an account.
type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User  models.UserProfile
	Token string
}

// Signup creates an account and returns its public profile.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.UserProfile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return models.UserProfile{}, fromValidator(err)
	}

	// Best effort only; the unique index decides under concurrent signups.
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return models.UserProfile{}, ErrDuplicateEmail
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.UserProfile{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         s.roles.RoleFor(in.Email),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.UserProfile{}, ErrDuplicateEmail
		}
		return models.UserProfile{}, fmt.Errorf("create user: %w", err)
	}

	profile := created.Profile()
	s.logger.Info("user registered", "user_id", created.ID, "role", created.Role)
	s.publish(ctx, events.Event{Type: events.TypeUserCreated, UserID: created.ID, Data: profile})
	return profile, nil
}

// Login checks credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, invalid("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return LoginResult{User: user.Profile(), Token: token}, nil
}

// SetPlatforms overwrites the recognized, non-empty entries of data on the user
// and returns the full updated record.
func (s *Service) SetPlatforms(ctx context.Context, userID int64, data map[string]*string) (models.User, error) {
	if userID <= 0 {
		return models.User{}, invalid("User ID is required")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	fields := models.FilterPlatformData(data)
	if len(fields) == 0 {
		return models.User{}, ErrNoPlatformData
	}

	updated, err := s.users.UpdatePlatforms(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("update platforms: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("invalidate platform cache", "user_id", userID, "error", err)
		}
	}
	s.logger.Info("platforms updated", "user_id", userID, "platforms", platformNames(fields))
	s.publish(ctx, events.Event{
		Type:   events.TypePlatformsUpdated,
		UserID: userID,
		Data:   map[string]any{"platforms": platformNames(fields)},
	})
	return updated, nil
}

// GetPlatforms returns the user's non-empty platform values and setup time.
func (s *Service) GetPlatforms(ctx context.Context, userID int64) (models.PlatformProfile, error) {
	if userID <= 0 {
		return models.PlatformProfile{}, ErrNotFound
	}
	if s.cache != nil {
		profile, ok, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			s.logger.Warn("read platform cache", "user_id", userID, "error", err)
		case ok:
			return profile, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.PlatformProfile{}, ErrNotFound
		}
		return models.PlatformProfile{}, fmt.Errorf("lookup user: %w", err)
	}
	profile := models.PlatformProfile{Platforms: user.Platforms(), SetupAt: user.PlatformsSetupAt}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, profile); err != nil {
			s.logger.Warn("write platform cache", "user_id", userID, "error", err)
		}
	}
	return profile, nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.users.Ping(ctx)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error("publish account event", "event_type", event.Type, "user_id", event.UserID, "error", err)
	}
}

func platformNames(fields models.PlatformFields) []string {
	names := make([]string, 0, len(fields))
	for p := range fields {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
