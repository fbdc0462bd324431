package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"pcforge-backend/internal/dto"
	"pcforge-backend/internal/store"
)

// upsertUser is the login/registration path: replace-or-insert the user
// document keyed by email and hand back a fresh one-hour token. No auth
// required, this is how a session starts.
func (s *Server) upsertUser(c *gin.Context) {
	email := c.Param("email")
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, err)
		return
	}
	if doc == nil {
		doc = store.Document{}
	}
	doc["email"] = email
	if pw, ok := doc["password"].(string); ok && pw != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			s.fail(c, err)
			return
		}
		doc["password"] = string(hashed)
	}

	res, err := s.users.Upsert(c.Request.Context(), email, doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	token, err := s.tokens.Issue(email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpsertUserResult{Result: res, Token: token})
}

func (s *Server) listUsers(c *gin.Context) {
	docs, err := s.users.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) getUser(c *gin.Context) {
	doc, err := s.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) promoteAdmin(c *gin.Context) {
	res, err := s.users.SetRole(c.Request.Context(), c.Param("email"), "admin")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// checkAdmin reports whether the target email's user is an admin. An email
// with no user document answers false rather than erroring.
func (s *Server) checkAdmin(c *gin.Context) {
	user, err := s.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, dto.AdminCheck{Admin: false})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	role, _ := user["role"].(string)
	c.JSON(http.StatusOK, dto.AdminCheck{Admin: role == "admin"})
}
