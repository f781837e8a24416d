package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/1810649011/my-web-end/internal/auth"
	"github.com/1810649011/my-web-end/internal/dto"
	"github.com/1810649011/my-web-end/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login and logout.
type AuthHandler struct {
	userSvc *service.UserService
	revoked *auth.Store
	secret  string
	ttl     time.Duration
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService, revoked *auth.Store, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, revoked: revoked, secret: secret, ttl: ttl}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := h.userSvc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

// Login godoc
// @Summary      Login, returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	token, err := auth.IssueToken(h.secret, user.ID, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		Code: http.StatusOK,
		Msg:  "ok",
		Data: dto.LoginData{Token: token, UserID: user.ID},
	})
}

// Logout godoc
// @Summary      Logout, revokes the presented token
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	claims, err := auth.ParseToken(h.secret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if h.revoked != nil && claims.ExpiresAt != nil {
		_ = h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time)
	}
	c.Status(http.StatusNoContent)
}
