package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pcforge-backend/internal/dto"
)

// createPaymentIntent asks the payment provider for an intent covering the
// order price in cents, card only, US dollars. The caller finishes the
// payment out-of-band with the returned client secret.
func (s *Server) createPaymentIntent(c *gin.Context) {
	var req dto.PaymentIntent
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	price, err := coerceDecimal(req.Price)
	if err != nil {
		badRequest(c, fmt.Errorf("price: %w", err))
		return
	}
	amount := price.Mul(decimal.NewFromInt(100)).IntPart()

	secret, err := s.payments.CreateIntent(c.Request.Context(), amount, "usd")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
