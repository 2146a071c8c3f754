package credentials

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/turfbooking/internal/auth"
	"github.com/Domenick1991/turfbooking/internal/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) RevokeToken(ctx context.Context, jti string, until time.Time) error {
	args := m.Called(ctx, jti, until)
	return args.Error(0)
}

func newService(repo *stubUserRepo, opts ...CredentialServiceOption) *CredentialService {
	opts = append([]CredentialServiceOption{WithHasher(BcryptHasher{Cost: bcrypt.MinCost})}, opts...)
	return NewCredentialService(repo, auth.NewIssuer("secret", time.Hour), zerolog.Nop(), opts...)
}

func validInput() RegisterInput {
	return RegisterInput{Name: "Alice", Email: "alice@example.com", Phone: "555-0101", Password: "s3cret!", Role: "User"}
}

func TestCredentialService_Register_Success(t *testing.T) {
	svc := newService(newStubUserRepo())

	user, err := svc.Register(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))
}

func TestCredentialService_Register_Validation(t *testing.T) {
	svc := newService(newStubUserRepo())

	testCases := []struct {
		name   string
		mutate func(*RegisterInput)
		errMsg string
	}{
		{"empty name", func(in *RegisterInput) { in.Name = "  " }, "all fields are required"},
		{"empty email", func(in *RegisterInput) { in.Email = "" }, "all fields are required"},
		{"empty phone", func(in *RegisterInput) { in.Phone = "" }, "all fields are required"},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, "at least 6 characters"},
		{"long password", func(in *RegisterInput) { in.Password = strings.Repeat("a", 73) }, "at most 72 bytes"},
		{"unknown role", func(in *RegisterInput) { in.Role = "admin" }, "unknown role"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			user, err := svc.Register(context.Background(), in)

			assert.Nil(t, user)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestCredentialService_Register_DuplicateEmailLeavesUsersUnchanged(t *testing.T) {
	repo := newStubUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	before := len(repo.users)

	dup := validInput()
	dup.Name = "Mallory"
	_, err = svc.Register(context.Background(), dup)

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Len(t, repo.users, before)
	assert.Equal(t, "Alice", repo.users["alice@example.com"].Name)
}

func TestCredentialService_Authenticate(t *testing.T) {
	svc := newService(newStubUserRepo())
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, wrongPassword := svc.Authenticate(context.Background(), "alice@example.com", "nope-nope")
	_, unknownEmail := svc.Authenticate(context.Background(), "ghost@example.com", "s3cret!")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCredentialService_Login_IssuesToken(t *testing.T) {
	svc := newService(newStubUserRepo())
	in := validInput()
	in.Role = "owner"
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.NewIssuer("secret", time.Hour).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleOwner, claims.Role)
}

func TestCredentialService_Login_InvalidPassword(t *testing.T) {
	svc := newService(newStubUserRepo())
	_, _ = svc.Register(context.Background(), validInput())

	token, user, err := svc.Login(context.Background(), "alice@example.com", "badpass")

	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCredentialService_Logout(t *testing.T) {
	revoker := &MockRevoker{}
	svc := newService(newStubUserRepo(), WithRevoker(revoker))
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	revoker.On("RevokeToken", ctx, "jti-1", exp).Return(nil).Once()

	assert.NoError(t, svc.Logout(ctx, auth.Claims{UserID: 1, TokenID: "jti-1", ExpiresAt: exp}))
	revoker.AssertExpectations(t)
}

func TestCredentialService_Logout_RevokerError(t *testing.T) {
	revoker := &MockRevoker{}
	svc := newService(newStubUserRepo(), WithRevoker(revoker))
	ctx := context.Background()

	revoker.On("RevokeToken", ctx, "jti-1", mock.Anything).Return(errors.New("redis down")).Once()

	err := svc.Logout(ctx, auth.Claims{TokenID: "jti-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "revoke token")
}

func TestCredentialService_Logout_WithoutRevoker(t *testing.T) {
	svc := newService(newStubUserRepo())
	assert.NoError(t, svc.Logout(context.Background(), auth.Claims{TokenID: "jti-1"}))
}
