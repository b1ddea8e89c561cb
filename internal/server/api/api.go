// Package api exposes the banking operations over a JSON HTTP interface.
// Handlers are thin: bind, call a service, map the service error onto a
// status code. All money amounts cross the wire as decimal strings.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/services"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	auth        *services.AuthService
	banking     *services.BankingService
	investments *services.InvestmentService
	pix         *services.PixService
	loans       *services.LoanService
	log         logging.Logger
	jwtSecret   []byte
}

// NewServer constructs a Server.
func NewServer(auth *services.AuthService, banking *services.BankingService,
	investments *services.InvestmentService, pix *services.PixService,
	loans *services.LoanService, cfg *config.Config, log logging.Logger) *Server {
	return &Server{
		auth:        auth,
		banking:     banking,
		investments: investments,
		pix:         pix,
		loans:       loans,
		log:         log,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

// Router builds the route table. Everything under /api except the auth
// endpoints requires a bearer token.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	pub := r.Group("/api")
	{
		pub.POST("/register", s.register)
		pub.POST("/activate", s.activate)
		pub.POST("/login", s.login)
		pub.POST("/password-reset/request", s.requestPasswordReset)
		pub.POST("/password-reset/confirm", s.confirmPasswordReset)
	}

	priv := r.Group("/api", s.requireAuth)
	{
		priv.GET("/balance", s.balance)
		priv.GET("/statement", s.statement)
		priv.POST("/deposit", s.deposit)
		priv.POST("/withdraw", s.withdraw)
		priv.POST("/transfer", s.transfer)
		priv.POST("/bills/pay", s.payBill)
		priv.POST("/cards/:id/invoice/pay", s.payCardInvoice)
		priv.POST("/pin", s.setPIN)

		priv.GET("/investments", s.listInvestments)
		priv.POST("/investments", s.subscribeInvestment)
		priv.POST("/investments/:id/redeem", s.redeemInvestment)

		priv.GET("/loans", s.listLoans)
		priv.POST("/loans", s.requestLoan)

		priv.GET("/pix/keys", s.listPixKeys)
		priv.POST("/pix/keys", s.registerPixKey)
		priv.DELETE("/pix/keys/:id", s.deletePixKey)
	}

	return r
}
