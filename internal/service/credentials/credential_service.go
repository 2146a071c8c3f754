package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/internal/auth"
	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/metrics"
	"github.com/Domenick1991/turfbooking/internal/repository"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is the longest input bcrypt accepts, in bytes.
	MaxPasswordLength = 72
)

type CredentialUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, claims auth.Claims) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, auth.Claims, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, until time.Time) error
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CredentialService struct {
	users   repository.UserRepository
	hasher  PasswordHasher
	issuer  TokenIssuer
	revoker TokenRevoker
	log     zerolog.Logger
}

type CredentialServiceOption func(*CredentialService)

func WithHasher(h PasswordHasher) CredentialServiceOption {
	return func(s *CredentialService) {
		s.hasher = h
	}
}

func WithRevoker(r TokenRevoker) CredentialServiceOption {
	return func(s *CredentialService) {
		s.revoker = r
	}
}

func NewCredentialService(users repository.UserRepository, issuer TokenIssuer, log zerolog.Logger, opts ...CredentialServiceOption) *CredentialService {
	s := &CredentialService{
		users:  users,
		hasher: BcryptHasher{},
		issuer: issuer,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (in RegisterInput) validate() (RegisterInput, domain.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return in, "", fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if len(in.Password) < MinPasswordLength {
		return in, "", fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, MinPasswordLength)
	}
	if len(in.Password) > MaxPasswordLength {
		return in, "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordLength)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return in, "", err
	}
	return in, role, nil
}

// Register creates an account. A taken email yields domain.ErrEmailTaken and
// writes nothing.
func (s *CredentialService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	in, role, err := input.validate()
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid", "").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("conflict", string(role)).Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created", string(role)).Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Authenticate returns domain.ErrInvalidCredentials for an unknown email and
// for a wrong password alike.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if s.hasher.Compare([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *CredentialService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, _, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the presented token. Without a revocation store it is a no-op
// and the token stays valid until it expires.
func (s *CredentialService) Logout(ctx context.Context, claims auth.Claims) error {
	if s.revoker == nil || claims.TokenID == "" {
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

var _ CredentialUseCase = (*CredentialService)(nil)
