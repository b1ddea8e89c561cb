package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thaliumbank/thalium/internal/server/auth"
)

const clientIDKey = "clientID"

// requireAuth validates the bearer token and stores the client id on the
// request context for the handlers.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	clientID, err := auth.GetClientIDFromToken(token, s.jwtSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Set(clientIDKey, clientID)
	c.Next()
}

// clientID returns the authenticated client id stored by requireAuth.
func clientID(c *gin.Context) int64 {
	return c.GetInt64(clientIDKey)
}
