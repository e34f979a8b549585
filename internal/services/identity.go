package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"coursetrack-backend-go/internal/models"
	"coursetrack-backend-go/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        models.User
}

// AuthService owns registration, login and resolving bearer tokens to users.
type AuthService struct {
	users   UserRepository
	hasher  PasswordHasher
	tokens  TokenService
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenService, timeout time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrValidation("Name, email and password are required")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, WrapError(err, "check email")
	}
	if exists {
		return nil, ErrConflict("Email already registered")
	}
	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, ErrValidation("Password is too long", FieldError{Field: "password", Message: "must be at most 72 bytes"})
	}
	if err != nil {
		return nil, WrapError(err, "hash password")
	}
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrConflict("Email already registered")
		}
		return nil, WrapError(err, "create user")
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthorized("Incorrect email or password")
	}
	if err != nil {
		return nil, WrapError(err, "load user")
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrUnauthorized("Incorrect email or password")
	}
	return s.session(*user)
}

// Resolve maps a bearer token to its user. An invalid token and a token whose user no
// longer exists are indistinguishable to the caller.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized("Could not validate credentials")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, subject)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthorized("Could not validate credentials")
	}
	if err != nil {
		return nil, WrapError(err, "load user")
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) session(user models.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, WrapError(err, "issue token")
	}
	user.PasswordHash = ""
	return &Session{AccessToken: token, ExpiresAt: exp, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
