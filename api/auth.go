package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/internal/service/credentials"
)

type AuthHandler struct {
	service credentials.CredentialUseCase
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func NewAuthHandler(service credentials.CredentialUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register mounts the auth routes. authenticated guards logout.
func (h *AuthHandler) Register(router *gin.RouterGroup, authenticated gin.HandlerFunc) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", authenticated, h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), credentials.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

func (h *AuthHandler) logout(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing authentication claims"})
		return
	}
	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
