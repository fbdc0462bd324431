package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/dto"
	"pcforge-backend/internal/store"
)

func (s *Server) listProducts(c *gin.Context) {
	docs, err := s.products.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) createProduct(c *gin.Context) {
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, err)
		return
	}
	if doc == nil {
		badRequest(c, fmt.Errorf("empty product body"))
		return
	}
	if err := normalizeProduct(doc); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.products.Insert(c.Request.Context(), doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// normalizeProduct types the fields the server arithmetic depends on; the
// rest of the document is stored as sent.
func normalizeProduct(doc store.Document) error {
	if v, ok := doc["price"]; ok {
		d, err := coerceDecimal(v)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		dec, err := toDecimal128(d)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		doc["price"] = dec
	}
	for _, k := range []string{"stock", "moq", "sold"} {
		v, ok := doc[k]
		if !ok {
			continue
		}
		n, err := coerceInt(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		doc[k] = n
	}
	if _, ok := doc["sold"]; !ok {
		doc["sold"] = int64(0)
	}
	return nil
}

func (s *Server) deleteProduct(c *gin.Context) {
	res, err := s.products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) patchStock(c *gin.Context) {
	var req dto.PatchStock
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	value, err := coerceInt(req.Value)
	if err != nil {
		badRequest(c, fmt.Errorf("value: %w", err))
		return
	}
	res, err := s.products.SetStock(c.Request.Context(), c.Param("id"), value)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
