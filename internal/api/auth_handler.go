package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/service"
	"github.com/rs/zerolog"
)

// stateCookie carries the OAuth CSRF state between login and callback
const stateCookie = "lv_oauth_state"

// AuthHandler handles the Google OAuth login flow and session lifecycle
type AuthHandler struct {
	services *service.Services
	sessions *auth.Sessions
	allow    *auth.Allowlist
	provider auth.Provider
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, sessions *auth.Sessions, allow *auth.Allowlist, provider auth.Provider, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		sessions: sessions,
		allow:    allow,
		provider: provider,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles GET /auth/google/login: sets the CSRF state cookie and
// redirects to the Google consent screen
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate OAuth state")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthURL(state))
}

// Callback handles GET /auth/google/callback: verifies the state,
// exchanges the code, checks the allow-list and issues the session
func (h *AuthHandler) Callback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	identity, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Msg("OAuth exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "sign-in failed"})
		return
	}

	if !h.allow.IsAdmin(identity.Email) {
		h.log.Warn().Str("email", identity.Email).Msg("Sign-in attempt by non-admin")
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	if _, err := h.services.User.EnsureProfile(c.Request.Context(), identity); err != nil {
		h.log.Error().Err(err).Str("email", identity.Email).Msg("Profile upsert failed on sign-in")
		respondError(c, err)
		return
	}

	token, err := h.sessions.Issue(identity)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	h.log.Info().Str("email", identity.Email).Msg("Admin signed in")
	c.JSON(http.StatusOK, gin.H{"email": identity.Email, "name": identity.Name})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"signed_out": true})
}

// Me handles GET /auth/me behind RequireAdmin
func (h *AuthHandler) Me(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)
	c.JSON(http.StatusOK, identity)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
