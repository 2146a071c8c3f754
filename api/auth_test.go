package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/turfbooking/internal/auth"
	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/credentials"
)

func newAuthRouter(svc *MockCredentialUseCase) http.Handler {
	r, g := newTestRouter()
	NewAuthHandler(svc).Register(g.Group("/auth"), asCaller(9, domain.RoleUser))
	return r
}

func TestAuthHandler_register(t *testing.T) {
	svc := new(MockCredentialUseCase)
	input := credentials.RegisterInput{Name: "Alice", Email: "alice@example.com", Phone: "555", Password: "secret1", Role: "user"}
	svc.On("Register", mock.Anything, input).
		Return(&domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: "555", Role: domain.RoleUser}, nil)

	w := doJSON(newAuthRouter(svc), http.MethodPost, "/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "phone": "555", "password": "secret1", "role": "user",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[userResponse](w)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "user", resp.Role)
	assert.NotContains(t, w.Body.String(), "password")
	svc.AssertExpectations(t)
}

func TestAuthHandler_register_Errors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{fmt.Errorf("%w: all fields are required", domain.ErrValidation), http.StatusBadRequest, "all fields are required"},
		{fmt.Errorf("%w: password must be at least 6 characters long", domain.ErrValidation), http.StatusBadRequest, "password must be at least 6 characters long"},
	}
	for _, tc := range cases {
		svc := new(MockCredentialUseCase)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, tc.err)

		w := doJSON(newAuthRouter(svc), http.MethodPost, "/auth/register", map[string]string{"name": "x"})
		assert.Equal(t, tc.code, w.Code, tc.msg)
		assert.Equal(t, tc.msg, decode[errorResponse](w).Error)
	}
}

func TestAuthHandler_login(t *testing.T) {
	svc := new(MockCredentialUseCase)
	svc.On("Login", mock.Anything, "alice@example.com", "secret1").
		Return("signed.jwt.token", &domain.User{ID: 1, Name: "Alice", Role: domain.RoleOwner}, nil)
	svc.On("Login", mock.Anything, "alice@example.com", "wrong").
		Return("", nil, domain.ErrInvalidCredentials)
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[loginResponse](w)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "owner", resp.User.Role)

	w = doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password is required", decode[errorResponse](w).Error)
}

func TestAuthHandler_logout(t *testing.T) {
	svc := new(MockCredentialUseCase)
	svc.On("Logout", mock.Anything, auth.Claims{UserID: 9, Role: domain.RoleUser, TokenID: "test-jti"}).Return(nil)

	w := doJSON(newAuthRouter(svc), http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
