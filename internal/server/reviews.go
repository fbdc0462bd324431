package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/store"
)

func (s *Server) listReviews(c *gin.Context) {
	docs, err := s.reviews.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Reviews are stored verbatim; the schema is the client's business.
func (s *Server) createReview(c *gin.Context) {
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.reviews.Insert(c.Request.Context(), doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
