package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/dto"
	"pcforge-backend/internal/store"
)

// placeOrder inserts the order form and then overwrites the referenced
// product's stock/sold with the absolute values the client computed. The two
// writes are sequential, not transactional, and the values are written
// verbatim without server-side recomputation.
func (s *Server) placeOrder(c *gin.Context) {
	var req dto.PlaceOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	productID, _ := req.FormData["productID"].(string)
	if productID == "" {
		badRequest(c, fmt.Errorf("formData.productID is required"))
		return
	}
	newStock, err := coerceInt(req.NewStock)
	if err != nil {
		badRequest(c, fmt.Errorf("newStock: %w", err))
		return
	}
	newSold, err := coerceInt(req.NewSold)
	if err != nil {
		badRequest(c, fmt.Errorf("newSold: %w", err))
		return
	}

	ctx := c.Request.Context()
	added, err := s.orders.Insert(ctx, store.Document(req.FormData))
	if err != nil {
		s.fail(c, err)
		return
	}
	updated, err := s.products.SetStockSold(ctx, productID, newStock, newSold)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PlaceOrderResult{AddOrder: added, UpdateProduct: updated})
}

func (s *Server) listOrders(c *gin.Context) {
	docs, err := s.orders.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// getOrder serves the payment page. Only the order's customer or an admin
// may read it.
func (s *Server) getOrder(c *gin.Context) {
	doc, err := s.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	owner, _ := doc["customerEmail"].(string)
	email := c.GetString(ctxEmail)
	if owner != email {
		admin, err := s.isAdmin(c.Request.Context(), email)
		if err != nil {
			s.fail(c, err)
			return
		}
		if !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) confirmPayment(c *gin.Context) {
	var req dto.ConfirmPayment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fields := store.Document{
		"status":        req.Status,
		"paymentStatus": req.PaymentStatus,
		"transactionID": req.TransactionID,
	}
	res, err := s.orders.SetPayment(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req dto.UpdateStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.orders.SetStatus(c.Request.Context(), c.Param("id"), req.NewStatus)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listUserOrders(c *gin.Context) {
	docs, err := s.orders.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// cancelOrder deletes the order and restores the product's stock/sold to the
// client-supplied values, mirroring placeOrder's trust boundary.
func (s *Server) cancelOrder(c *gin.Context) {
	var req dto.CancelOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ItemID == "" {
		badRequest(c, fmt.Errorf("itemID is required"))
		return
	}
	adjStock, err := coerceInt(req.AdjustStock)
	if err != nil {
		badRequest(c, fmt.Errorf("adjustStock: %w", err))
		return
	}
	adjSold, err := coerceInt(req.AdjustSold)
	if err != nil {
		badRequest(c, fmt.Errorf("adjustSold: %w", err))
		return
	}

	ctx := c.Request.Context()
	deleted, err := s.orders.Delete(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	adjusted, err := s.products.SetStockSold(ctx, req.ItemID, adjStock, adjSold)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CancelOrderResult{DeleteOrder: deleted, AdjustItem: adjusted})
}
