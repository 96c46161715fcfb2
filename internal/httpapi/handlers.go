package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobboard-platform/internal/auth"
	"jobboard-platform/internal/config"
	"jobboard-platform/internal/identity"
	"jobboard-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handlers groups the auth HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call the auth service, shape the
// response. The refresh token travels only in an http-only cookie; it is
// never part of a JSON body.
type Handlers struct {
	Auth    *auth.Service
	Cookies CookieConfig
}

type CookieConfig struct {
	Name     string
	Domain   string
	MaxAge   int // seconds; matches the refresh TTL
	Insecure bool
}

func NewHandlers(svc *auth.Service, cfg config.AuthConfig) Handlers {
	return Handlers{
		Auth: svc,
		Cookies: CookieConfig{
			Name:   cfg.RefreshCookieName,
			Domain: cfg.CookieDomain,
			MaxAge: int(cfg.RefreshTokenTTL.Seconds()),
		},
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Roles       []auth.Role `json:"roles"`
	AccessToken string      `json:"accessToken"`
}

// Login exchanges credentials for an access token plus a refresh cookie.
//
// POST /auth/token  {username, password} -> {roles, accessToken}
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithAuthError(c, auth.InvalidInput(bindErrorMessage(err)))
		return
	}

	ctx := auth.WithClientIP(c.Request.Context(), c.ClientIP())
	session, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		AbortWithAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusOK, tokenResponse{
		Roles:       session.Roles,
		AccessToken: session.AccessToken,
	})
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=30"`
	Password  string `json:"password" binding:"required,min=5,max=20"`
	FirstName string `json:"firstName" binding:"required,max=30"`
	LastName  string `json:"lastName" binding:"required,max=30"`
	Email     string `json:"email" binding:"required,email"`
}

// Register creates a user and returns an access token for it.
// Any admin flag a caller smuggles into the body is ignored: the request
// type cannot express one, and the identity store forces is_admin=false.
//
// POST /auth/register  {username, password, firstName, lastName, email} -> 201 {token}
func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithAuthError(c, auth.InvalidInput(bindErrorMessage(err)))
		return
	}

	ctx := auth.WithClientIP(c.Request.Context(), c.ClientIP())
	token, _, err := h.Auth.Register(ctx, identity.Profile{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		AbortWithAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Refresh exchanges the refresh cookie for a new access token.
// Per contract the failure responses carry no body: 401 when the cookie is
// absent, 403 when it is present but unknown or invalid.
//
// GET /auth/refresh -> {roles, accessToken}
func (h Handlers) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.Cookies.Name)
	if err != nil || refreshToken == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx := auth.WithClientIP(c.Request.Context(), c.ClientIP())
	rot, err := h.Auth.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshUnknown) || errors.Is(err, auth.ErrRefreshInvalid) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		logger.FromGin(c).Error("refresh failed", "err", err)
		AbortWithAuthError(c, err)
		return
	}

	if rot.RefreshToken != "" {
		h.setRefreshCookie(c, rot.RefreshToken)
	}
	c.JSON(http.StatusOK, tokenResponse{
		Roles:       rot.Roles,
		AccessToken: rot.AccessToken,
	})
}

// Logout clears the refresh cookie and revokes its store binding.
// Idempotent: no cookie means nothing to do, which is a success.
//
// POST /auth/logout -> {success: true} | 204
func (h Handlers) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(h.Cookies.Name)
	if err != nil || refreshToken == "" {
		c.Status(http.StatusNoContent)
		return
	}

	ctx := auth.WithClientIP(c.Request.Context(), c.ClientIP())
	if err := h.Auth.Logout(ctx, refreshToken); err != nil {
		logger.FromGin(c).Error("logout revoke failed", "err", err)
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// The refresh cookie is http-only and cross-site restricted: SameSite=None
// requires Secure, so Insecure exists only for local plain-http testing.
func (h Handlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.Cookies.Name, token, h.Cookies.MaxAge, "/", h.Cookies.Domain, !h.Cookies.Insecure, true)
}

func (h Handlers) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.Cookies.Name, "", -1, "/", h.Cookies.Domain, !h.Cookies.Insecure, true)
}

// bindErrorMessage turns gin binding failures into the caller-visible
// validation error list.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fieldErrorMessage(fe))
		}
		return strings.Join(parts, "; ")
	}
	return "invalid request body"
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
