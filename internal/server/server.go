package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/auth"
	"pcforge-backend/internal/payment"
	"pcforge-backend/internal/store"
)

type Deps struct {
	Stores   store.Stores
	Tokens   *auth.Manager
	Payments payment.IntentCreator
	// Origins restricts CORS; empty allows every origin.
	Origins []string
}

type Server struct {
	products store.ProductStore
	reviews  store.ReviewStore
	users    store.UserStore
	orders   store.OrderStore
	tokens   *auth.Manager
	payments payment.IntentCreator
	origins  []string
}

func New(d Deps) *Server {
	return &Server{
		products: d.Stores.Products,
		reviews:  d.Stores.Reviews,
		users:    d.Stores.Users,
		orders:   d.Stores.Orders,
		tokens:   d.Tokens,
		payments: d.Payments,
		origins:  d.Origins,
	}
}

// authLevel is the access requirement a route declares. The dispatcher maps
// it to the matching gate chain, so no handler carries its own authz
// boilerplate.
type authLevel int

const (
	authPublic authLevel = iota
	authToken
	authSelf        // token whose email must equal the :email parameter
	authSelfOrAdmin // self, or any admin
	authAdmin
)

type route struct {
	method  string
	path    string
	auth    authLevel
	handler gin.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/products", authPublic, s.listProducts},
		{http.MethodPost, "/product", authAdmin, s.createProduct},
		{http.MethodDelete, "/product/:id", authAdmin, s.deleteProduct},
		{http.MethodPatch, "/product/:id", authAdmin, s.patchStock},

		{http.MethodGet, "/reviews", authPublic, s.listReviews},
		{http.MethodPost, "/review", authToken, s.createReview},

		{http.MethodPut, "/user/:email", authPublic, s.upsertUser},
		{http.MethodGet, "/users", authAdmin, s.listUsers},
		{http.MethodGet, "/user/:email", authSelf, s.getUser},
		{http.MethodPatch, "/user/admin/:email", authAdmin, s.promoteAdmin},
		{http.MethodGet, "/user/admin/:email", authToken, s.checkAdmin},

		{http.MethodPost, "/order", authToken, s.placeOrder},
		{http.MethodPost, "/create-payment-intent", authToken, s.createPaymentIntent},
		{http.MethodPut, "/payment/order/:id", authToken, s.confirmPayment},
		{http.MethodGet, "/payment/order/:id", authToken, s.getOrder},
		{http.MethodGet, "/orders", authAdmin, s.listOrders},
		{http.MethodPatch, "/order/:id", authAdmin, s.updateOrderStatus},
		{http.MethodGet, "/orders/:email", authSelfOrAdmin, s.listUserOrders},
		{http.MethodDelete, "/orders/:id", authToken, s.cancelOrder},
	}
}

func (s *Server) gates(level authLevel) []gin.HandlerFunc {
	switch level {
	case authToken:
		return []gin.HandlerFunc{s.requireToken}
	case authSelf:
		return []gin.HandlerFunc{s.requireToken, s.requireSelf}
	case authSelfOrAdmin:
		return []gin.HandlerFunc{s.requireToken, s.requireSelfOrAdmin}
	case authAdmin:
		return []gin.HandlerFunc{s.requireToken, s.requireAdmin}
	}
	return nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(s.corsConfig()))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "PC component server is running...")
	})

	for _, rt := range s.routes() {
		r.Handle(rt.method, rt.path, append(s.gates(rt.auth), rt.handler)...)
	}
	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if len(s.origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.origins
		cfg.AllowCredentials = true
	}
	return cfg
}
