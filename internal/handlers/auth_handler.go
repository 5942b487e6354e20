package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hoangducbinh/duckgoose/internal/auth"
)

type AuthHandler struct {
	provider auth.Provider
	sessions *auth.Sessions
}

func NewAuthHandler(provider auth.Provider, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{provider: provider, sessions: sessions}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	identity, err := h.provider.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token := h.sessions.Issue(identity)
	c.JSON(http.StatusOK, gin.H{"token": token, "identity": identity})
}

// RequireSession rejects requests without a known bearer token.
func RequireSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		identity, ok := sessions.Lookup(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
			return
		}
		c.Set("identity", identity)
		c.Next()
	}
}
