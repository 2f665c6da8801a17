// Package auth exposes the session-based authentication endpoints: login,
// logout, session check, registration, and password reset. Credential checks
// live in the breeder package; token lifecycle lives in the session package.
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/breeder"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/session"
)

// invalidCredentialsMsg is the single body for every failed login. Unknown
// email and wrong password must be indistinguishable to the client.
const invalidCredentialsMsg = "invalid credentials"

// Handler handles authentication HTTP requests
type Handler struct {
	breeders      breeder.Service
	sessions      session.Manager
	cookieMaxAge  int
	secureCookies bool
}

// NewHandler creates an authentication handler. cookieMaxAge is the session
// lifetime in seconds; secureCookies should be true in production so the
// cookie is only sent over HTTPS.
func NewHandler(breeders breeder.Service, sessions session.Manager, cookieMaxAge int, secureCookies bool) *Handler {
	return &Handler{
		breeders:      breeders,
		sessions:      sessions,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, h.cookieMaxAge, "/", "", h.secureCookies, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.secureCookies, true)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ctx := c.Request.Context()

	breederID, err := h.breeders.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, breeder.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentialsMsg})
			return
		}
		slog.Error("Login failed against account store", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	b, err := h.breeders.GetByID(ctx, breederID)
	if err != nil {
		slog.Error("Failed to load account after login", "breeder_id", breederID, "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	token, err := h.sessions.Create(ctx, breederID)
	if err != nil {
		slog.Error("Failed to create session", "breeder_id", breederID, "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          summarize(b),
	})
}

// Logout handles POST /api/auth/logout. Always succeeds: logging out while
// already logged out is not an error.
func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(SessionCookieName)
	if err == nil && token != "" {
		_ = h.sessions.Destroy(c.Request.Context(), token)
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session handles GET /api/auth/session. It answers 200 with
// authenticated=false for every invalid path, including a degraded session
// store, so the frontend can always render.
func (h *Handler) Session(c *gin.Context) {
	b, token := h.resolve(c)
	if b == nil {
		if token != "" {
			h.clearSessionCookie(c)
		}
		c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          summarize(b),
	})
}

// Register handles POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.breeders.Register(c.Request.Context(), breeder.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		City:            req.City,
		State:           req.State,
		ExperienceYears: req.ExperienceYears,
		Story:           req.Story,
		Phone:           req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, breeder.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "password"})
		case errors.Is(err, breeder.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered", "field": "email"})
		default:
			slog.Error("Registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "breeder registered"})
}

// ResetPassword handles POST /api/auth/reset-password. The route sits behind
// the session middleware, so only an authenticated breeder can overwrite a
// password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.breeders.ResetPassword(c.Request.Context(), req.Email, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, breeder.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "newPassword"})
		case errors.Is(err, breeder.ErrBreederNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "breeder not found"})
		default:
			slog.Error("Password reset failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// resolve maps the request's session cookie to an active breeder account.
// It returns (nil, token) when the token exists but no longer maps to a
// usable account; the caller decides whether to clear the cookie. A session
// whose breeder row is missing or inactive is destroyed on sight.
func (h *Handler) resolve(c *gin.Context) (*breeder.Breeder, string) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return nil, ""
	}

	ctx := c.Request.Context()

	sess, err := h.sessions.Validate(ctx, token)
	if err != nil {
		return nil, token
	}

	b, err := h.breeders.GetByID(ctx, sess.BreederID)
	if err != nil || !b.Active {
		_ = h.sessions.Destroy(ctx, token)
		return nil, token
	}

	return b, token
}

func summarize(b *breeder.Breeder) *UserSummary {
	return &UserSummary{
		ID:        b.ID,
		Email:     b.Email,
		FirstName: b.FirstName,
		IsAdmin:   b.Admin,
	}
}

// RegisterRoutes mounts the authentication endpoints under /api/auth.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	grp := api.Group("/auth")
	{
		grp.POST("/login", h.Login)
		grp.POST("/logout", h.Logout)
		grp.GET("/session", h.Session)
		grp.POST("/register", h.Register)
		grp.POST("/reset-password", h.RequireSession(), h.ResetPassword)
	}
}
