package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/store"
)

// ctxEmail is the gin context key the decoded token subject lives under.
const ctxEmail = "email"

func (s *Server) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}
	c.Set(ctxEmail, claims.Email)
}

func (s *Server) requireSelf(c *gin.Context) {
	if c.GetString(ctxEmail) != c.Param("email") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func (s *Server) requireSelfOrAdmin(c *gin.Context) {
	email := c.GetString(ctxEmail)
	if email == c.Param("email") {
		return
	}
	admin, err := s.isAdmin(c.Request.Context(), email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !admin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func (s *Server) requireAdmin(c *gin.Context) {
	admin, err := s.isAdmin(c.Request.Context(), c.GetString(ctxEmail))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !admin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// isAdmin re-queries the user document on every check; roles are never
// cached across requests. An unknown email is simply not an admin.
func (s *Server) isAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	role, _ := user["role"].(string)
	return role == "admin", nil
}
